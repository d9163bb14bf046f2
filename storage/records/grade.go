package recordrepos

import (
	"context"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/grade"
)

var gradeFields = []string{
	core.FieldName,
	core.FieldStudentRef,
	core.FieldSubject,
	core.FieldScore,
	core.FieldMaxScore,
	core.FieldDate,
	core.FieldType,
	core.FieldTerm,
}

type gradeRepository struct {
	store core.RecordStore
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(store core.RecordStore) grade.Repository {
	return &gradeRepository{store: store}
}

func (repo *gradeRepository) fetch(ctx context.Context, where ...core.Where) ([]grade.Grade, error) {
	res, err := repo.store.Fetch(ctx, core.GradesCollection, core.RecordQuery{Fields: gradeFields, Where: where})
	if err := checkFetch(core.GradesCollection, res, err); err != nil {
		return nil, err
	}
	grades := make([]grade.Grade, 0, len(res.Data))
	for _, rec := range res.Data {
		g, err := grade.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func (repo *gradeRepository) QueryAllGrades(ctx context.Context) ([]grade.Grade, error) {
	return repo.fetch(ctx)
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	res, err := repo.store.GetByID(ctx, core.GradesCollection, id, core.RecordQuery{Fields: gradeFields})
	if err != nil {
		return grade.Grade{}, core.NewPersistenceError(core.GradesCollection, "", err)
	}
	if !res.Success || res.Data == nil {
		return grade.Grade{}, grade.ErrNotFound
	}
	return grade.FromRecord(res.Data)
}

func (repo *gradeRepository) QueryGradesByStudent(ctx context.Context, studentID int) ([]grade.Grade, error) {
	return repo.fetch(ctx, core.Equal(core.FieldStudentRef, studentID))
}

func (repo *gradeRepository) QueryGradesBySubject(ctx context.Context, subject string) ([]grade.Grade, error) {
	return repo.fetch(ctx, core.Equal(core.FieldSubject, subject))
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	res, err := repo.store.Create(ctx, core.GradesCollection, g.StoreRecord())
	rec, err := firstResult(core.GradesCollection, res, err)
	if err != nil {
		return grade.Grade{}, err
	}
	return grade.FromRecord(rec)
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	res, err := repo.store.Update(ctx, core.GradesCollection, g.StoreRecord())
	rec, err := firstResult(core.GradesCollection, res, err)
	if err != nil {
		return grade.Grade{}, err
	}
	return grade.FromRecord(rec)
}

func (repo *gradeRepository) DeleteGradesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := repo.store.Delete(ctx, core.GradesCollection, ids...)
	return checkDelete(core.GradesCollection, res, err)
}
