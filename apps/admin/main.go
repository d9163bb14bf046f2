package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/attendance"
	"github.com/trezcool/classtrack/core/grade"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/storage/apper"
	dummystore "github.com/trezcool/classtrack/storage/dummy"
	recordrepos "github.com/trezcool/classtrack/storage/records"
	"github.com/trezcool/classtrack/storage/redisstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	store, err := openStore(conf)
	errAndDie(err)

	stuRepo := recordrepos.NewStudentRepository(store)

	// start CLI
	cli := commandLine{
		stuSvc: student.NewService(stuRepo),
		attSvc: attendance.NewService(recordrepos.NewAttendanceRepository(store), stuRepo, nil, nil),
		grdSvc: grade.NewService(recordrepos.NewGradeRepository(store)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openStore(conf *core.Config) (core.RecordStore, error) {
	switch conf.Store.Backend {
	case "apper":
		return apper.NewClient(conf), nil
	case "redis":
		return redisstore.Open(conf)
	case "dummy":
		return dummystore.Open()
	default:
		return nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
