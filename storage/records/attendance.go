package recordrepos

import (
	"context"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
)

var attendanceFields = []string{
	core.FieldName,
	core.FieldStudentRef,
	core.FieldDate,
	core.FieldStatus,
	core.FieldNotes,
}

type attendanceRepository struct {
	store core.RecordStore
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(store core.RecordStore) attendance.Repository {
	return &attendanceRepository{store: store}
}

func (repo *attendanceRepository) fetch(ctx context.Context, where ...core.Where) ([]attendance.Record, error) {
	res, err := repo.store.Fetch(ctx, core.AttendanceCollection, core.RecordQuery{Fields: attendanceFields, Where: where})
	if err := checkFetch(core.AttendanceCollection, res, err); err != nil {
		return nil, err
	}
	records := make([]attendance.Record, 0, len(res.Data))
	for _, rec := range res.Data {
		r, err := attendance.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (repo *attendanceRepository) QueryAllRecords(ctx context.Context) ([]attendance.Record, error) {
	return repo.fetch(ctx)
}

// QueryRecordsByDate matches on the ISO day prefix; date fields may carry a
// time-of-day portion on records written by other clients.
func (repo *attendanceRepository) QueryRecordsByDate(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	return repo.fetch(ctx, core.StartsWith(core.FieldDate, core.FormatDay(day)))
}

func (repo *attendanceRepository) QueryRecordsByStudent(ctx context.Context, studentID int) ([]attendance.Record, error) {
	return repo.fetch(ctx, core.Equal(core.FieldStudentRef, studentID))
}

func (repo *attendanceRepository) CreateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	res, err := repo.store.Create(ctx, core.AttendanceCollection, r.StoreRecord())
	rec, err := firstResult(core.AttendanceCollection, res, err)
	if err != nil {
		return attendance.Record{}, err
	}
	return attendance.FromRecord(rec)
}

func (repo *attendanceRepository) UpdateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	res, err := repo.store.Update(ctx, core.AttendanceCollection, r.StoreRecord())
	rec, err := firstResult(core.AttendanceCollection, res, err)
	if err != nil {
		return attendance.Record{}, err
	}
	return attendance.FromRecord(rec)
}

func (repo *attendanceRepository) DeleteRecordsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := repo.store.Delete(ctx, core.AttendanceCollection, ids...)
	return checkDelete(core.AttendanceCollection, res, err)
}
