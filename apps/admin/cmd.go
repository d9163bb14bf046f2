package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
	exportsvc "github.com/trezcool/classtrack/services/export"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	stuSvc *student.Service
	attSvc *attendance.Service
	grdSvc *grade.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed                       - load a demo roster with grades and attendance")
	fmt.Println("  importroster -file FILE    - enroll students out of an xlsx workbook")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importRosterCmd := flag.NewFlagSet("importroster", flag.ExitOnError)
	importRosterFile := importRosterCmd.String("file", "", "Path to the xlsx roster workbook.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "importroster":
		if err := importRosterCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importRosterFile == "" {
			importRosterCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importRosterFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) importRoster(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := exportsvc.ImportRoster(f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var created int
	for _, ns := range rows {
		if _, err := cli.stuSvc.Create(ctx, ns); err != nil {
			logger.Printf("skipping %s: %v", ns.StudentCode, err)
			continue
		}
		created++
	}
	logger.Printf("enrolled %d of %d students", created, len(rows))
	return nil
}

func (cli *commandLine) seed() error {
	ctx := context.Background()
	today := core.DayUTC(time.Now())

	demo := []student.NewStudent{
		{FirstName: "Amina", LastName: "Diallo", StudentCode: "STU001", GradeLevel: "10", Section: "A", Email: "amina.diallo@example.com"},
		{FirstName: "Ben", LastName: "Okafor", StudentCode: "STU002", GradeLevel: "10", Section: "A", Email: "ben.okafor@example.com"},
		{FirstName: "Chipo", LastName: "Moyo", StudentCode: "STU003", GradeLevel: "11", Section: "B", Email: "chipo.moyo@example.com"},
	}

	var ids []interface{}
	for _, ns := range demo {
		ns.Status = student.StatusActive
		stu, err := cli.stuSvc.Create(ctx, ns)
		if err != nil {
			return err
		}
		ids = append(ids, stu.ID)

		for _, ng := range []grade.NewGrade{
			{StudentID: stu.ID, Subject: "Mathematics", Score: 85, MaxScore: 100, Type: grade.TypeExam, Term: "Term 1", Date: core.FormatDay(today)},
			{StudentID: stu.ID, Subject: "English", Score: 17, MaxScore: 20, Type: grade.TypeQuiz, Term: "Term 1", Date: core.FormatDay(today)},
		} {
			if _, err := cli.grdSvc.Create(ctx, ng); err != nil {
				return err
			}
		}
	}

	marked, failures := cli.attSvc.BulkMark(ctx, ids, today, attendance.StatusPresent)
	for _, f := range failures {
		logger.Printf("marking %v: %s", f.StudentID, f.Reason)
	}
	logger.Printf("seeded %d students, %d attendance records", len(ids), len(marked))
	return nil
}
