package attendance

import (
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

// ComputeDailyView produces the per-student attendance view for targetDate.
// The result always has one row per roster entry, in roster order; students
// without a record on that day carry nil status and nil record id.
// Day equality is evaluated on the UTC calendar day. If duplicate records
// exist for a (student, day) pair the first one in iteration order wins;
// that is a documented policy, not a correctness guarantee under
// concurrent writers.
func ComputeDailyView(roster []student.Student, records []Record, targetDate time.Time) []StudentDayStatus {
	day := core.DayUTC(targetDate)

	forDay := make([]Record, 0, len(records))
	for _, rec := range records {
		if core.SameDayUTC(rec.Date, day) {
			forDay = append(forDay, rec)
		}
	}

	view := make([]StudentDayStatus, 0, len(roster))
	for _, stu := range roster {
		row := StudentDayStatus{Student: stu}
		if rec, ok := findForStudent(forDay, stu.ID); ok {
			status := rec.Status
			recID := rec.ID
			row.AttendanceStatus = &status
			row.AttendanceRecordID = &recID
		}
		view = append(view, row)
	}
	return view
}

func findForStudent(records []Record, studentID int) (Record, bool) {
	for _, rec := range records {
		if rec.StudentID == studentID {
			return rec, true
		}
	}
	return Record{}, false
}

// findForDay matches on both the student and the UTC calendar day; by-date
// store queries are prefix matches and may over-fetch records written with
// zoned timestamps near midnight.
func findForDay(records []Record, studentID int, day time.Time) (Record, bool) {
	for _, rec := range records {
		if rec.StudentID == studentID && core.SameDayUTC(rec.Date, day) {
			return rec, true
		}
	}
	return Record{}, false
}
