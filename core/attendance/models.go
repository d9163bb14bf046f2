package attendance

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

var AllStatuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

var (
	statusTag  = "attstatus"
	statusText = "status must be one of: present, absent, late, excused"
)

// InitValidators registers the attendance-level custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return ValidStatus(status)
}

func ValidStatus(status string) bool {
	for _, s := range AllStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Record is a single attendance mark for a student on a calendar day.
type Record struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      time.Time `json:"date"` // UTC calendar day
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
}

// StoreRecord maps the attendance record onto its store representation.
func (r Record) StoreRecord() core.Record {
	rec := core.Record{
		core.FieldName:       "Attendance - " + core.FormatDay(r.Date),
		core.FieldStudentRef: r.StudentID,
		core.FieldDate:       core.FormatDay(r.Date),
		core.FieldStatus:     r.Status,
		core.FieldNotes:      r.Notes,
	}
	if r.ID != 0 {
		rec[core.FieldID] = r.ID
	}
	return rec
}

// FromRecord builds a Record out of a store record.
// The student reference is normalized through core.AsID: depending on the
// query shape it arrives either flattened or as an embedded object.
func FromRecord(rec core.Record) (Record, error) {
	id, err := rec.ID()
	if err != nil {
		return Record{}, err
	}
	studentID, err := core.AsID(rec[core.FieldStudentRef])
	if err != nil {
		return Record{}, err
	}
	day, err := core.ParseDay(rec.Str(core.FieldDate))
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:        id,
		StudentID: studentID,
		Date:      day,
		Status:    rec.Str(core.FieldStatus),
		Notes:     rec.Str(core.FieldNotes),
	}, nil
}

// StudentDayStatus is one roster row of the daily attendance view.
// Status and RecordID are nil when the student has no record on that day.
type StudentDayStatus struct {
	student.Student
	AttendanceStatus   *string `json:"attendance_status"`
	AttendanceRecordID *int    `json:"attendance_record_id"`
}

// BulkFailure reports the reason a single student's mark failed
// within a bulk operation.
type BulkFailure struct {
	StudentID interface{} `json:"student_id"`
	Reason    string      `json:"reason"`
}
