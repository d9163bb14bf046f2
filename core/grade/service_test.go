package grade_test

import (
	"context"
	"testing"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/grade"
	dummystore "github.com/trezcool/classtrack/storage/dummy"
	recordrepos "github.com/trezcool/classtrack/storage/records"
)

func setup(t *testing.T) (*grade.Service, *dummystore.Store) {
	t.Helper()

	db, err := dummystore.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return grade.NewService(recordrepos.NewGradeRepository(db)), db
}

func createGrade(t *testing.T, svc *grade.Service, studentID interface{}, subject string, score, max float64, term string) grade.Grade {
	t.Helper()
	g, err := svc.Create(context.Background(), grade.NewGrade{
		StudentID: studentID,
		Subject:   subject,
		Score:     score,
		MaxScore:  max,
		Type:      grade.TypeExam,
		Term:      term,
	})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return g
}

func TestServiceCRUD(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	// the student reference may arrive as a numeric string
	g := createGrade(t, svc, "1", "Mathematics", 85, 100, "Term 1")
	if g.ID == 0 {
		t.Fatal("Create() returned a grade without an id")
	}
	if g.StudentID != 1 {
		t.Errorf("Create() student id = %d, want 1", g.StudentID)
	}

	got, err := svc.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got != g {
		t.Errorf("GetByID() = %+v, want %+v", got, g)
	}

	if _, err := svc.GetByID(ctx, 999); err != grade.ErrNotFound {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}

	newScore := 90.0
	updated, err := svc.Update(ctx, g.ID, grade.UpdateGrade{Score: &newScore})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Score != newScore {
		t.Errorf("Update() score = %v, want %v", updated.Score, newScore)
	}
	if updated.Subject != g.Subject {
		t.Errorf("Update() subject = %q, want untouched %q", updated.Subject, g.Subject)
	}

	if err := svc.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, g.ID); err != grade.ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestServiceSummarizeStudent(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	createGrade(t, svc, 1, "Mathematics", 95, 100, "Term 1") // 4.0
	createGrade(t, svc, 1, "English", 85, 100, "Term 1")     // 3.0
	createGrade(t, svc, 1, "Physics", 50, 100, "Term 2")     // 0.0
	createGrade(t, svc, 2, "Mathematics", 50, 100, "Term 1") // other student

	tests := []struct {
		name      string
		studentID interface{}
		term      string
		want      grade.Summary
	}{
		{name: "all terms", studentID: 1, want: grade.Summary{GPA: 2.33, TotalGrades: 3}},
		{name: "single term", studentID: 1, term: "Term 1", want: grade.Summary{GPA: 3.5, TotalGrades: 2}},
		{name: "loose string reference", studentID: "1", term: "Term 1", want: grade.Summary{GPA: 3.5, TotalGrades: 2}},
		{name: "unknown term", studentID: 1, term: "Term 9", want: grade.Summary{}},
		{name: "student without grades", studentID: 3, want: grade.Summary{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.SummarizeStudent(ctx, tt.studentID, tt.term)
			if err != nil {
				t.Fatalf("SummarizeStudent() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SummarizeStudent() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := svc.SummarizeStudent(ctx, "abc", ""); err == nil {
		t.Error("SummarizeStudent() with a bad reference succeeded, want error")
	}
}

func TestServiceSummarizeStudentZeroMaxScore(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	// bad data written by another client; our validation rejects it on the way in
	res, err := db.Create(ctx, core.GradesCollection, core.Record{
		core.FieldStudentRef: 1,
		core.FieldSubject:    "Physics",
		core.FieldScore:      float64(10),
		core.FieldMaxScore:   float64(0),
		core.FieldType:       grade.TypeQuiz,
		core.FieldTerm:       "Term 1",
	})
	if err != nil || !res.Success {
		t.Fatalf("seeding bad grade failed: %v / %+v", err, res)
	}

	if _, err := svc.SummarizeStudent(ctx, 1, ""); err != core.ErrZeroMaxScore {
		t.Errorf("SummarizeStudent() error = %v, want ErrZeroMaxScore", err)
	}
}
