package grade

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
)

// Grade types
const (
	TypeExam       = "exam"
	TypeQuiz       = "quiz"
	TypeAssignment = "assignment"
)

// Grade is a single scored piece of work for a student.
type Grade struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Subject   string    `json:"subject"`
	Score     float64   `json:"score"`
	MaxScore  float64   `json:"max_score"`
	Date      time.Time `json:"date"` // UTC calendar day
	Type      string    `json:"type"`
	Term      string    `json:"term"`
}

// StoreRecord maps the grade onto its store representation.
func (g Grade) StoreRecord() core.Record {
	rec := core.Record{
		core.FieldName:       g.Subject + " - " + g.Type,
		core.FieldStudentRef: g.StudentID,
		core.FieldSubject:    g.Subject,
		core.FieldScore:      g.Score,
		core.FieldMaxScore:   g.MaxScore,
		core.FieldType:       g.Type,
		core.FieldTerm:       g.Term,
	}
	if !g.Date.IsZero() {
		rec[core.FieldDate] = core.FormatDay(g.Date)
	}
	if g.ID != 0 {
		rec[core.FieldID] = g.ID
	}
	return rec
}

// FromRecord builds a Grade out of a store record.
func FromRecord(rec core.Record) (Grade, error) {
	id, err := rec.ID()
	if err != nil {
		return Grade{}, err
	}
	studentID, err := core.AsID(rec[core.FieldStudentRef])
	if err != nil {
		return Grade{}, err
	}
	g := Grade{
		ID:        id,
		StudentID: studentID,
		Subject:   rec.Str(core.FieldSubject),
		Score:     rec.Float(core.FieldScore),
		MaxScore:  rec.Float(core.FieldMaxScore),
		Type:      rec.Str(core.FieldType),
		Term:      rec.Str(core.FieldTerm),
	}
	if raw := rec.Str(core.FieldDate); raw != "" {
		if day, err := core.ParseDay(raw); err == nil {
			g.Date = day
		}
	}
	return g, nil
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID interface{} `json:"student_id" validate:"required"`
	Subject   string      `json:"subject" validate:"required,notblank"`
	Score     float64     `json:"score" validate:"gte=0"`
	MaxScore  float64     `json:"max_score" validate:"required,gt=0"`
	Date      string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type      string      `json:"type" validate:"required,oneof=exam quiz assignment"`
	Term      string      `json:"term" validate:"required,notblank"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.Term = core.CleanString(ng.Term)
	ng.Type = core.CleanString(ng.Type, true /* lower */)
	return validate.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	Subject  string   `json:"subject" validate:"omitempty,notblank"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	MaxScore *float64 `json:"max_score" validate:"omitempty,gt=0"`
	Date     string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type     string   `json:"type" validate:"omitempty,oneof=exam quiz assignment"`
	Term     string   `json:"term" validate:"omitempty,notblank"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	ug.Subject = core.CleanString(ug.Subject)
	ug.Term = core.CleanString(ug.Term)
	ug.Type = core.CleanString(ug.Type, true /* lower */)
	return validate.Struct(ug)
}

// Summary is the grade-point-average view of a set of grades.
type Summary struct {
	GPA         float64 `json:"gpa"`
	TotalGrades int     `json:"total_grades"`
}
