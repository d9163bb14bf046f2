package core

import (
	"encoding/json"
	"testing"
)

func TestAsID(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    int
		wantErr bool
	}{
		{name: "int", in: 42, want: 42},
		{name: "int64", in: int64(7), want: 7},
		{name: "float64", in: float64(13), want: 13},
		{name: "json number", in: json.Number("99"), want: 99},
		{name: "bad json number", in: json.Number("9.9.9"), wantErr: true},
		{name: "numeric string", in: "42", want: 42},
		{name: "padded numeric string", in: " 7 ", want: 7},
		{name: "non-numeric string", in: "abc", wantErr: true},
		{name: "embedded record", in: Record{FieldID: 5}, want: 5},
		{name: "embedded map with Id", in: map[string]interface{}{FieldID: float64(8)}, want: 8},
		{name: "embedded map with lowercase id", in: map[string]interface{}{"id": "12"}, want: 12},
		{name: "embedded map without id", in: map[string]interface{}{"Name": "x"}, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
		{name: "bool", in: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AsID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AsID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*ValidationError); !ok {
					t.Errorf("AsID() error type = %T, want *ValidationError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("AsID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordQueryMatches(t *testing.T) {
	rec := Record{
		FieldID:         float64(3),
		FieldStudentRef: "7", // loose reference shape
		FieldDate:       "2024-03-01T10:00:00Z",
		FieldStatus:     "present",
	}

	tests := []struct {
		name  string
		query RecordQuery
		want  bool
	}{
		{name: "no conditions", query: RecordQuery{}, want: true},
		{name: "equal id across types", query: RecordQuery{Where: []Where{Equal(FieldStudentRef, 7)}}, want: true},
		{name: "equal id as string", query: RecordQuery{Where: []Where{Equal(FieldStudentRef, "7")}}, want: true},
		{name: "equal id mismatch", query: RecordQuery{Where: []Where{Equal(FieldStudentRef, 8)}}, want: false},
		{name: "equal string fallback", query: RecordQuery{Where: []Where{Equal(FieldStatus, "present")}}, want: true},
		{name: "equal string mismatch", query: RecordQuery{Where: []Where{Equal(FieldStatus, "absent")}}, want: false},
		{name: "starts with", query: RecordQuery{Where: []Where{StartsWith(FieldDate, "2024-03-01")}}, want: true},
		{name: "starts with mismatch", query: RecordQuery{Where: []Where{StartsWith(FieldDate, "2024-03-02")}}, want: false},
		{
			name: "all conditions must hold",
			query: RecordQuery{Where: []Where{
				Equal(FieldStudentRef, 7),
				StartsWith(FieldDate, "2024-03-02"),
			}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		FieldID:       float64(11),
		FieldStatus:   "late",
		FieldScore:    float64(17.5),
		FieldMaxScore: 20,
	}

	id, err := rec.ID()
	if err != nil {
		t.Fatalf("ID(): %v", err)
	}
	if id != 11 {
		t.Errorf("ID() = %v, want 11", id)
	}
	if got := rec.Str(FieldStatus); got != "late" {
		t.Errorf("Str() = %q, want %q", got, "late")
	}
	if got := rec.Str(FieldNotes); got != "" {
		t.Errorf("Str() on missing field = %q, want empty", got)
	}
	if got := rec.Float(FieldScore); got != 17.5 {
		t.Errorf("Float() = %v, want 17.5", got)
	}
	if got := rec.Float(FieldMaxScore); got != 20 {
		t.Errorf("Float() on int = %v, want 20", got)
	}
	if got := rec.Float(FieldNotes); got != 0 {
		t.Errorf("Float() on missing field = %v, want 0", got)
	}
}
