package grade

import (
	"context"
	"errors"

	"github.com/trezcool/classtrack/core"
)

var (
	// errors
	ErrNotFound = errors.New("grade not found")
)

type (
	Repository interface {
		QueryAllGrades(ctx context.Context) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		QueryGradesByStudent(ctx context.Context, studentID int) ([]Grade, error)
		QueryGradesBySubject(ctx context.Context, subject string) ([]Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGradesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	studentID, err := core.AsID(ng.StudentID)
	if err != nil {
		return Grade{}, err
	}
	g := Grade{
		StudentID: studentID,
		Subject:   ng.Subject,
		Score:     ng.Score,
		MaxScore:  ng.MaxScore,
		Type:      ng.Type,
		Term:      ng.Term,
	}
	if ng.Date != "" {
		if day, err := core.ParseDay(ng.Date); err == nil {
			g.Date = day
		}
	}
	return svc.repo.CreateGrade(ctx, g)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAllGrades(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.repo.QueryGradesByStudent(ctx, studentID)
}

func (svc *Service) QueryBySubject(ctx context.Context, subject string) ([]Grade, error) {
	return svc.repo.QueryGradesBySubject(ctx, subject)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	orig, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	if ug.Subject != "" {
		orig.Subject = ug.Subject
	}
	if ug.Score != nil {
		orig.Score = *ug.Score
	}
	if ug.MaxScore != nil {
		orig.MaxScore = *ug.MaxScore
	}
	if ug.Date != "" {
		if day, err := core.ParseDay(ug.Date); err == nil {
			orig.Date = day
		}
	}
	if ug.Type != "" {
		orig.Type = ug.Type
	}
	if ug.Term != "" {
		orig.Term = ug.Term
	}
	return svc.repo.UpdateGrade(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteGradesByID(ctx, ids...)
}

// SummarizeStudent computes the GPA summary of one student's grades,
// optionally restricted to a term.
func (svc *Service) SummarizeStudent(ctx context.Context, studentID interface{}, term string) (Summary, error) {
	id, err := core.AsID(studentID)
	if err != nil {
		return Summary{}, err
	}
	grades, err := svc.repo.QueryGradesByStudent(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(grades, term)
}
