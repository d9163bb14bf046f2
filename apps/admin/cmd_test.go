package main

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
	dummystore "github.com/trezcool/classtrack/storage/dummy"
	recordrepos "github.com/trezcool/classtrack/storage/records"
)

func setup(t *testing.T) (*commandLine, student.Repository) {
	t.Helper()

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	db, err := dummystore.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	stuRepo := recordrepos.NewStudentRepository(db)
	cli := &commandLine{
		stuSvc: student.NewService(stuRepo),
		attSvc: attendance.NewService(recordrepos.NewAttendanceRepository(db), stuRepo, nil, nil),
		grdSvc: grade.NewService(recordrepos.NewGradeRepository(db)),
	}
	return cli, stuRepo
}

func Test_commandLine_run(t *testing.T) {
	cli, _ := setup(t)

	tests := []struct {
		name    string
		args    []string // without program name
		wantErr error
	}{
		{name: "no args", wantErr: errHelp},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: errHelp},
		{name: "importroster without file", args: []string{"importroster"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"admin"}, tt.args...)
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli, stuRepo := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	students, err := stuRepo.QueryAllStudents(context.Background())
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	if len(students) != 3 {
		t.Errorf("student count = %d, want 3", len(students))
	}

	view, err := cli.attSvc.DailyView(context.Background(), core.DayUTC(time.Now()))
	if err != nil {
		t.Fatalf("DailyView() failed: %v", err)
	}
	for _, row := range view {
		if row.AttendanceStatus == nil || *row.AttendanceStatus != attendance.StatusPresent {
			t.Errorf("student %s not marked present", row.StudentCode)
		}
	}

	sum, err := cli.grdSvc.SummarizeStudent(context.Background(), students[0].ID, "Term 1")
	if err != nil {
		t.Fatalf("SummarizeStudent() failed: %v", err)
	}
	if sum.TotalGrades != 2 {
		t.Errorf("total grades = %d, want 2", sum.TotalGrades)
	}
}
