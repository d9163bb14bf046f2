package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Collections of the hosted record store.
const (
	StudentsCollection   = "students_c"
	AttendanceCollection = "attendance_c"
	GradesCollection     = "grades_c"
)

// Record field names. The platform appends "_c" to custom fields and
// reserves "Id" and "Name" for system fields.
const (
	FieldID   = "Id"
	FieldName = "Name"

	FieldFirstName      = "first_name_c"
	FieldLastName       = "last_name_c"
	FieldStudentCode    = "student_id_c"
	FieldEmail          = "email_c"
	FieldPhone          = "phone_c"
	FieldEnrollmentDate = "enrollment_date_c"
	FieldGradeLevel     = "grade_level_c"
	FieldSection        = "section_c"
	FieldStatus         = "status_c"

	FieldStudentRef = "student_id_c"
	FieldDate       = "date_c"
	FieldNotes      = "notes_c"

	FieldSubject  = "subject_c"
	FieldScore    = "score_c"
	FieldMaxScore = "max_score_c"
	FieldType     = "type_c"
	FieldTerm     = "term_c"
)

type (
	// Record is a single row of a record store collection.
	// Field values are loosely typed; relationship fields may arrive
	// either flattened (bare id) or expanded (embedded object).
	Record map[string]interface{}

	// Where is a single query filter condition.
	// Operator is one of "EqualTo" or "StartsWith".
	Where struct {
		FieldName string
		Operator  string
		Values    []interface{}
	}

	// RecordQuery selects fields and filters records on a Fetch.
	RecordQuery struct {
		Fields []string
		Where  []Where
	}

	// FieldIssue is a per-field error reported by the store on a write.
	FieldIssue struct {
		FieldLabel string `json:"fieldLabel"`
		Message    string `json:"message"`
	}

	FetchResult struct {
		Success bool     `json:"success"`
		Data    []Record `json:"data"`
		Message string   `json:"message,omitempty"`
	}

	GetResult struct {
		Success bool   `json:"success"`
		Data    Record `json:"data"`
		Message string `json:"message,omitempty"`
	}

	// RecordResult is the outcome of a single record in a bulk write.
	RecordResult struct {
		Success bool         `json:"success"`
		Data    Record       `json:"data,omitempty"`
		Errors  []FieldIssue `json:"errors,omitempty"`
		Message string       `json:"message,omitempty"`
	}

	WriteResult struct {
		Success bool           `json:"success"`
		Results []RecordResult `json:"results,omitempty"`
		Message string         `json:"message,omitempty"`
	}

	DeleteResult struct {
		Success bool           `json:"success"`
		Results []RecordResult `json:"results,omitempty"`
		Message string         `json:"message,omitempty"`
	}

	// RecordStore is the external collaborator owning all persistence.
	// A failed operation is reported via Success=false + Message on the
	// result envelope; only connectivity failures are returned as errors.
	RecordStore interface {
		Fetch(ctx context.Context, collection string, q RecordQuery) (FetchResult, error)
		GetByID(ctx context.Context, collection string, id int, q RecordQuery) (GetResult, error)
		Create(ctx context.Context, collection string, records ...Record) (WriteResult, error)
		Update(ctx context.Context, collection string, records ...Record) (WriteResult, error)
		Delete(ctx context.Context, collection string, ids ...int) (DeleteResult, error)
	}
)

// Equal matches records on a field with "EqualTo".
func Equal(field string, value interface{}) Where {
	return Where{FieldName: field, Operator: "EqualTo", Values: []interface{}{value}}
}

// StartsWith matches records on a string field prefix.
func StartsWith(field string, value string) Where {
	return Where{FieldName: field, Operator: "StartsWith", Values: []interface{}{value}}
}

// Matches reports whether rec satisfies every where-condition of the query.
// EqualTo compares ids numerically when both sides normalize through AsID,
// and falls back to string comparison otherwise.
func (q RecordQuery) Matches(rec Record) bool {
	for _, w := range q.Where {
		if !matchesWhere(rec, w) {
			return false
		}
	}
	return true
}

func matchesWhere(rec Record, w Where) bool {
	val := rec[w.FieldName]
	for _, want := range w.Values {
		switch w.Operator {
		case "EqualTo":
			if valID, err := AsID(val); err == nil {
				if wantID, err := AsID(want); err == nil {
					if valID == wantID {
						return true
					}
					continue
				}
			}
			if fmt.Sprint(val) == fmt.Sprint(want) {
				return true
			}
		case "StartsWith":
			prefix, ok := want.(string)
			if ok && strings.HasPrefix(rec.Str(w.FieldName), prefix) {
				return true
			}
		}
	}
	return len(w.Values) == 0
}

// AsID normalizes a relationship reference to an integer id.
// Depending on the query shape the store returns either a bare number,
// a numeric string, or an embedded object carrying an "Id" field.
// Raw values must never be compared directly; everything goes through here.
func AsID(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case json.Number:
		id, err := val.Int64()
		if err != nil {
			return 0, NewValidationError(fmt.Errorf("invalid id %q", val.String()))
		}
		return int(id), nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, NewValidationError(fmt.Errorf("invalid id %q", val))
		}
		return id, nil
	case Record:
		return embeddedID(val)
	case map[string]interface{}:
		return embeddedID(val)
	case nil:
		return 0, NewValidationError(fmt.Errorf("missing id"))
	}
	return 0, NewValidationError(fmt.Errorf("invalid id %v", v))
}

func embeddedID(obj map[string]interface{}) (int, error) {
	if id, ok := obj[FieldID]; ok {
		return AsID(id)
	}
	if id, ok := obj["id"]; ok {
		return AsID(id)
	}
	return 0, NewValidationError(fmt.Errorf("object reference carries no id"))
}

// ID returns the record's system id.
func (r Record) ID() (int, error) {
	return AsID(r[FieldID])
}

// Str returns a string field; missing or non-string values yield "".
func (r Record) Str(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Float returns a numeric field; JSON decoding hands numbers over as float64.
func (r Record) Float(field string) float64 {
	switch val := r[field].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	}
	return 0
}
