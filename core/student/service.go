package student

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound   = errors.New("student not found")
	ErrCodeExists = errors.New("a student with this student code already exists")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// Student.FirstName, Student.LastName or Student.StudentCode.
		FilterStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if taken, err := svc.codeTaken(ctx, ns.StudentCode, 0); err != nil {
		return Student{}, err
	} else if taken {
		return Student{}, ErrCodeExists
	}

	s := Student{
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		StudentCode: ns.StudentCode,
		GradeLevel:  ns.GradeLevel,
		Section:     ns.Section,
		Email:       ns.Email,
		Phone:       ns.Phone,
		Status:      ns.Status,
	}
	if ns.EnrollmentDate != "" {
		day, err := time.Parse("2006-01-02", ns.EnrollmentDate)
		if err == nil {
			s.EnrollmentDate = day
		}
	}
	return svc.repo.CreateStudent(ctx, s)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Student, error) {
	if filter.IsEmpty() {
		return svc.repo.QueryAllStudents(ctx)
	}
	return svc.repo.FilterStudents(ctx, filter)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	orig.FirstName = us.FirstName
	orig.LastName = us.LastName
	orig.Email = us.Email
	if us.GradeLevel != "" {
		orig.GradeLevel = us.GradeLevel
	}
	if us.Section != "" {
		orig.Section = us.Section
	}
	if us.Phone != "" {
		orig.Phone = us.Phone
	}
	if us.Status != "" {
		orig.Status = us.Status
	}
	return svc.repo.UpdateStudent(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

// codeTaken reports whether another student already carries the code.
// The search filter is a contains-match, so results are re-checked for
// exact equality.
func (svc *Service) codeTaken(ctx context.Context, code string, selfID int) (bool, error) {
	if code == "" {
		return false, nil
	}
	matches, err := svc.repo.FilterStudents(ctx, QueryFilter{Search: code})
	if err != nil {
		return false, err
	}
	for _, s := range matches {
		if s.StudentCode == code && s.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}
