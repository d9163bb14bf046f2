package recordrepos

import (
	"context"
	"strings"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

var studentFields = []string{
	core.FieldName,
	core.FieldFirstName,
	core.FieldLastName,
	core.FieldStudentCode,
	core.FieldEmail,
	core.FieldPhone,
	core.FieldEnrollmentDate,
	core.FieldGradeLevel,
	core.FieldSection,
	core.FieldStatus,
}

type studentRepository struct {
	store core.RecordStore
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(store core.RecordStore) student.Repository {
	return &studentRepository{store: store}
}

func (repo *studentRepository) fetch(ctx context.Context, where ...core.Where) ([]student.Student, error) {
	res, err := repo.store.Fetch(ctx, core.StudentsCollection, core.RecordQuery{Fields: studentFields, Where: where})
	if err := checkFetch(core.StudentsCollection, res, err); err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(res.Data))
	for _, rec := range res.Data {
		s, err := student.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	res, err := repo.store.Create(ctx, core.StudentsCollection, s.Record())
	rec, err := firstResult(core.StudentsCollection, res, err)
	if err != nil {
		return student.Student{}, err
	}
	return student.FromRecord(rec)
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return repo.fetch(ctx)
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	res, err := repo.store.GetByID(ctx, core.StudentsCollection, id, core.RecordQuery{Fields: studentFields})
	if err != nil {
		return student.Student{}, core.NewPersistenceError(core.StudentsCollection, "", err)
	}
	if !res.Success || res.Data == nil {
		return student.Student{}, student.ErrNotFound
	}
	return student.FromRecord(res.Data)
}

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	// exact fields filter on the store; the search keyword filters in memory
	var where []core.Where
	if filter.GradeLevel != "" {
		where = append(where, core.Equal(core.FieldGradeLevel, filter.GradeLevel))
	}
	if filter.Section != "" {
		where = append(where, core.Equal(core.FieldSection, filter.Section))
	}
	if filter.Status != "" {
		where = append(where, core.Equal(core.FieldStatus, filter.Status))
	}

	students, err := repo.fetch(ctx, where...)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return students, nil
	}

	search := strings.ToLower(filter.Search)
	filtered := make([]student.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.FirstName), search) ||
			strings.Contains(strings.ToLower(s.LastName), search) ||
			strings.Contains(strings.ToLower(s.StudentCode), search) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	res, err := repo.store.Update(ctx, core.StudentsCollection, s.Record())
	rec, err := firstResult(core.StudentsCollection, res, err)
	if err != nil {
		return student.Student{}, err
	}
	return student.FromRecord(rec)
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := repo.store.Delete(ctx, core.StudentsCollection, ids...)
	return checkDelete(core.StudentsCollection, res, err)
}
