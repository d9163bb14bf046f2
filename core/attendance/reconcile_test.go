package attendance

import (
	"testing"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

func TestComputeDailyView(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newYork := time.FixedZone("EST", -5*60*60)

	roster := []student.Student{
		{ID: 1, FirstName: "Amina", LastName: "Diallo"},
		{ID: 2, FirstName: "Ben", LastName: "Okafor"},
		{ID: 3, FirstName: "Chipo", LastName: "Moyo"},
	}
	records := []Record{
		// zoned timestamp; 2024-02-29T23:30-05:00 is 2024-03-01T04:30Z
		{ID: 10, StudentID: 1, Date: time.Date(2024, 2, 29, 23, 30, 0, 0, newYork), Status: StatusPresent},
		// duplicate for the same (student, day) pair; the first record wins
		{ID: 11, StudentID: 1, Date: day, Status: StatusAbsent},
		// previous day, must not bleed into the view
		{ID: 12, StudentID: 2, Date: day.AddDate(0, 0, -1), Status: StatusLate},
		// unknown student, ignored
		{ID: 13, StudentID: 99, Date: day, Status: StatusPresent},
	}

	view := ComputeDailyView(roster, records, day)

	if len(view) != len(roster) {
		t.Fatalf("len(view) = %d, want %d", len(view), len(roster))
	}
	for i, row := range view {
		if row.ID != roster[i].ID {
			t.Errorf("view[%d].ID = %d, want roster order %d", i, row.ID, roster[i].ID)
		}
	}

	// student 1: marked via the zoned record, first match wins
	if view[0].AttendanceStatus == nil || *view[0].AttendanceStatus != StatusPresent {
		t.Errorf("view[0].AttendanceStatus = %v, want %q", view[0].AttendanceStatus, StatusPresent)
	}
	if view[0].AttendanceRecordID == nil || *view[0].AttendanceRecordID != 10 {
		t.Errorf("view[0].AttendanceRecordID = %v, want 10", view[0].AttendanceRecordID)
	}

	// student 2: only record is on another day
	if view[1].AttendanceStatus != nil {
		t.Errorf("view[1].AttendanceStatus = %v, want nil", *view[1].AttendanceStatus)
	}
	if view[1].AttendanceRecordID != nil {
		t.Errorf("view[1].AttendanceRecordID = %v, want nil", *view[1].AttendanceRecordID)
	}

	// student 3: no record at all
	if view[2].AttendanceStatus != nil || view[2].AttendanceRecordID != nil {
		t.Errorf("view[2] = %+v, want nil status and record id", view[2])
	}
}

func TestComputeDailyViewEmptyInputs(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if view := ComputeDailyView(nil, nil, day); len(view) != 0 {
		t.Errorf("empty roster: len(view) = %d, want 0", len(view))
	}

	roster := []student.Student{{ID: 1}, {ID: 2}}
	view := ComputeDailyView(roster, nil, day)
	if len(view) != 2 {
		t.Fatalf("len(view) = %d, want 2", len(view))
	}
	for i, row := range view {
		if row.AttendanceStatus != nil || row.AttendanceRecordID != nil {
			t.Errorf("view[%d] = %+v, want nil status and record id", i, row)
		}
	}
}

func TestComputeDailyViewTargetDateNormalized(t *testing.T) {
	// a zoned target date selects records of its UTC day
	nairobi := time.FixedZone("EAT", 3*60*60)
	target := time.Date(2024, 3, 2, 1, 0, 0, 0, nairobi) // 2024-03-01T22:00Z

	roster := []student.Student{{ID: 1}}
	records := []Record{
		{ID: 10, StudentID: 1, Date: core.DayUTC(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), Status: StatusLate},
	}

	view := ComputeDailyView(roster, records, target)
	if view[0].AttendanceStatus == nil || *view[0].AttendanceStatus != StatusLate {
		t.Errorf("view[0].AttendanceStatus = %v, want %q", view[0].AttendanceStatus, StatusLate)
	}
}
