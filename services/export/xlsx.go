// Package exportsvc renders attendance sheets and grade reports as xlsx
// workbooks, and reads roster imports back in.
package exportsvc

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
)

const sheetName = "Sheet1"

// AttendanceSheet renders the daily attendance view as a workbook.
func AttendanceSheet(view []attendance.StudentDayStatus, day time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Student Code", "Name", "Grade Level", "Section", "Status (" + core.FormatDay(day) + ")"},
	}
	for _, row := range view {
		status := ""
		if row.AttendanceStatus != nil {
			status = *row.AttendanceStatus
		}
		rows = append(rows, []interface{}{row.StudentCode, row.FullName(), row.GradeLevel, row.Section, status})
	}
	return writeRows(f, rows)
}

// GradeReport renders one student's grades and GPA summary as a workbook.
func GradeReport(stu student.Student, grades []grade.Grade, summary grade.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Student", stu.FullName(), "Code", stu.StudentCode},
		{"GPA", summary.GPA, "Total Grades", summary.TotalGrades},
		{},
		{"Subject", "Type", "Term", "Score", "Max Score", "Date"},
	}
	for _, g := range grades {
		date := ""
		if !g.Date.IsZero() {
			date = core.FormatDay(g.Date)
		}
		rows = append(rows, []interface{}{g.Subject, g.Type, g.Term, g.Score, g.MaxScore, date})
	}
	return writeRows(f, rows)
}

func writeRows(f *excelize.File, rows [][]interface{}) (*bytes.Buffer, error) {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, errors.Wrap(err, "computing cell name")
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, errors.Wrap(err, "writing sheet row")
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf, nil
}

// ImportRoster reads students out of an uploaded workbook. The first row is
// a header; columns are student code, first name, last name, grade level,
// section and email. Rows missing a code or a name are skipped.
func ImportRoster(r io.Reader) ([]student.NewStudent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, errors.New("workbook contains no sheets")
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", name)
	}

	col := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var students []student.NewStudent
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		ns := student.NewStudent{
			StudentCode: col(row, 0),
			FirstName:   col(row, 1),
			LastName:    col(row, 2),
			GradeLevel:  col(row, 3),
			Section:     col(row, 4),
			Email:       col(row, 5),
			Status:      student.StatusActive,
		}
		if ns.StudentCode == "" || (ns.FirstName == "" && ns.LastName == "") {
			continue
		}
		students = append(students, ns)
	}
	if len(students) == 0 {
		return nil, errors.New("workbook contains no student rows")
	}
	return students, nil
}

// Filename builds a dated workbook filename like "attendance-2024-03-01.xlsx".
func Filename(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, core.FormatDay(day))
}
