package student

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
)

// Enrollment statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusGraduated = "graduated"
)

var AllStatuses = []string{StatusActive, StatusInactive, StatusSuspended, StatusGraduated}

var (
	statusTag  = "studentstatus"
	statusText = "status must be one of: active, inactive, suspended, graduated"
)

// InitValidators registers the student-level custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, s := range AllStatuses {
		if status == s {
			return true
		}
	}
	return false
}

type Student struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	StudentCode    string    `json:"student_code"` // school-assigned identifier
	GradeLevel     string    `json:"grade_level"`
	Section        string    `json:"section"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	EnrollmentDate time.Time `json:"enrollment_date"` // UTC calendar day
	Status         string    `json:"status"`
}

func (s Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

func (s Student) IsActive() bool { return s.Status == StatusActive }

// Record maps the student onto its store representation.
func (s Student) Record() core.Record {
	rec := core.Record{
		core.FieldName:        s.FullName(),
		core.FieldFirstName:   s.FirstName,
		core.FieldLastName:    s.LastName,
		core.FieldStudentCode: s.StudentCode,
		core.FieldEmail:       s.Email,
		core.FieldPhone:       s.Phone,
		core.FieldGradeLevel:  s.GradeLevel,
		core.FieldSection:     s.Section,
		core.FieldStatus:      s.Status,
	}
	if !s.EnrollmentDate.IsZero() {
		rec[core.FieldEnrollmentDate] = core.FormatDay(s.EnrollmentDate)
	}
	if s.ID != 0 {
		rec[core.FieldID] = s.ID
	}
	return rec
}

// FromRecord builds a Student out of a store record.
func FromRecord(rec core.Record) (Student, error) {
	id, err := rec.ID()
	if err != nil {
		return Student{}, err
	}
	s := Student{
		ID:          id,
		FirstName:   rec.Str(core.FieldFirstName),
		LastName:    rec.Str(core.FieldLastName),
		StudentCode: rec.Str(core.FieldStudentCode),
		Email:       rec.Str(core.FieldEmail),
		Phone:       rec.Str(core.FieldPhone),
		GradeLevel:  rec.Str(core.FieldGradeLevel),
		Section:     rec.Str(core.FieldSection),
		Status:      rec.Str(core.FieldStatus),
	}
	if raw := rec.Str(core.FieldEnrollmentDate); raw != "" {
		if day, err := core.ParseDay(raw); err == nil {
			s.EnrollmentDate = day
		}
	}
	return s, nil
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FirstName      string `json:"first_name" validate:"required,notblank"`
	LastName       string `json:"last_name" validate:"required,notblank"`
	StudentCode    string `json:"student_code" validate:"required,notblank"`
	GradeLevel     string `json:"grade_level" validate:"required"`
	Section        string `json:"section" validate:"omitempty"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty"`
	EnrollmentDate string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	Status         string `json:"status" validate:"omitempty,studentstatus"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.StudentCode = core.CleanString(ns.StudentCode)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	FirstName  string `json:"first_name" validate:"omitempty,notblank"`
	LastName   string `json:"last_name" validate:"omitempty,notblank"`
	GradeLevel string `json:"grade_level"`
	Section    string `json:"section"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Status     string `json:"status" validate:"omitempty,studentstatus"`
}

func (us *UpdateStudent) Validate(orig Student, validate *validator.Validate) error {
	if fn := core.CleanString(us.FirstName); fn != "" {
		us.FirstName = fn
	} else {
		us.FirstName = orig.FirstName
	}
	if ln := core.CleanString(us.LastName); ln != "" {
		us.LastName = ln
	} else {
		us.LastName = orig.LastName
	}
	us.Email = core.CleanString(us.Email, true /* lower */)
	if us.Email == "" {
		us.Email = orig.Email
	}
	return validate.Struct(us)
}

type QueryFilter struct {
	Search     string `query:"search"`
	GradeLevel string `query:"grade_level"`
	Section    string `query:"section"`
	Status     string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.GradeLevel == "" && qf.Section == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}
