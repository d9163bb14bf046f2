package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("attendance record not found")
)

type (
	Repository interface {
		QueryAllRecords(ctx context.Context) ([]Record, error)
		QueryRecordsByDate(ctx context.Context, day time.Time) ([]Record, error)
		QueryRecordsByStudent(ctx context.Context, studentID int) ([]Record, error)
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		DeleteRecordsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		mailSvc  core.EmailService
		logger   core.Logger
	}
)

func NewService(repo Repository, students student.Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		students: students,
		mailSvc:  mailSvc,
		logger:   logger,
	}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Record, error) {
	return svc.repo.QueryAllRecords(ctx)
}

func (svc *Service) QueryByDate(ctx context.Context, day time.Time) ([]Record, error) {
	return svc.repo.QueryRecordsByDate(ctx, core.DayUTC(day))
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Record, error) {
	return svc.repo.QueryRecordsByStudent(ctx, studentID)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteRecordsByID(ctx, ids...)
}

// DailyView assembles the attendance view of the whole roster for targetDate.
func (svc *Service) DailyView(ctx context.Context, targetDate time.Time) ([]StudentDayStatus, error) {
	roster, err := svc.students.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	records, err := svc.QueryByDate(ctx, targetDate)
	if err != nil {
		return nil, err
	}
	return ComputeDailyView(roster, records, targetDate), nil
}

// Mark records a status for (studentID, date) with find-or-create-or-update
// semantics: an existing record for the pair is updated, otherwise one is
// created. Exactly one store mutation is issued per call.
// studentID may arrive in any of the loose reference shapes accepted by
// core.AsID.
func (svc *Service) Mark(ctx context.Context, studentID interface{}, date time.Time, status, notes string) (Record, error) {
	id, err := core.AsID(studentID)
	if err != nil {
		return Record{}, err
	}
	if !ValidStatus(status) {
		return Record{}, core.NewValidationError(
			fmt.Errorf("invalid attendance status %q", status),
			core.FieldError{Field: "status", Error: statusText},
		)
	}

	day := core.DayUTC(date)
	existing, err := svc.repo.QueryRecordsByDate(ctx, day)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		StudentID: id,
		Date:      day,
		Status:    status,
		Notes:     notes,
	}
	if found, ok := findForDay(existing, id, day); ok {
		rec.ID = found.ID
		rec, err = svc.repo.UpdateRecord(ctx, rec)
	} else {
		rec, err = svc.repo.CreateRecord(ctx, rec)
	}
	if err != nil {
		return Record{}, err
	}

	if status == StatusAbsent {
		svc.notifyAbsence(ctx, rec)
	}
	return rec, nil
}

// BulkMark applies Mark sequentially for each student id against the same
// date and status. A failure for one student never aborts the rest; successes
// and failures are accumulated independently and both returned.
func (svc *Service) BulkMark(ctx context.Context, studentIDs []interface{}, date time.Time, status string) ([]Record, []BulkFailure) {
	successes := make([]Record, 0, len(studentIDs))
	var failures []BulkFailure
	for _, sid := range studentIDs {
		rec, err := svc.Mark(ctx, sid, date, status, "")
		if err != nil {
			failures = append(failures, BulkFailure{StudentID: sid, Reason: err.Error()})
			continue
		}
		successes = append(successes, rec)
	}
	return successes, failures
}

// notifyAbsence emails the student's contact address about the absence.
// Best effort: a failed lookup is logged and never fails the mark.
func (svc *Service) notifyAbsence(ctx context.Context, rec Record) {
	if svc.mailSvc == nil {
		return
	}
	stu, err := svc.students.GetStudentByID(ctx, rec.StudentID)
	if err != nil {
		if svc.logger != nil {
			svc.logger.Warn(fmt.Sprintf("absence notification: looking up student %d: %v", rec.StudentID, err))
		}
		return
	}
	if stu.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: stu.FullName(), Address: stu.Email}},
		Subject: "Absence recorded on " + core.FormatDay(rec.Date),
		TextContent: fmt.Sprintf(
			"Hello %s,\n\nAn absence was recorded for you on %s. "+
				"If you believe this is an error, please contact the school office.\n",
			stu.FirstName, core.FormatDay(rec.Date),
		),
	})
}
