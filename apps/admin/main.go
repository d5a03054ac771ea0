package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/roster"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	dbx := sqlx.NewDb(db, conf.Database.Engine)

	rosterRepo := sqlxrepos.NewRosterRepository(dbx)
	attRepo := sqlxrepos.NewAttendanceRepository(dbx)
	gradeRepo := sqlxrepos.NewGradeRepository(dbx)

	calSvc := calendar.NewService(sqlxrepos.NewCalendarRepository(dbx))
	rosterSvc := roster.NewService(rosterRepo, attRepo, gradeRepo)

	// start CLI
	cli := commandLine{
		db:        db,
		rosterSvc: rosterSvc,
		calSvc:    calSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
