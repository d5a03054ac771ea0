package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/roster"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sql.DB
	rosterSvc *roster.Service
	calSvc    *calendar.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a database migration command (up, down, status, ...)")
	fmt.Println("  seedperiods -file FILE - replace the academic periods from a JSON file")
	fmt.Println("  importroster -file FILE - import students from a CSV file (name[,code] per line)")
	fmt.Println("  nextcode - print the next available student code")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedPeriodsCmd := flag.NewFlagSet("seedperiods", flag.ExitOnError)
	seedPeriodsFile := seedPeriodsCmd.String("file", "", "Path to a JSON file holding the four academic periods.")

	importRosterCmd := flag.NewFlagSet("importroster", flag.ExitOnError)
	importRosterFile := importRosterCmd.String("file", "", "Path to a CSV file with one student per line: name[,code].")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedperiods":
		if err := seedPeriodsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedPeriodsFile == "" {
			seedPeriodsCmd.Usage()
			return errHelp
		}
		return cli.seedPeriods(*seedPeriodsFile)
	case "importroster":
		if err := importRosterCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importRosterFile == "" {
			importRosterCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importRosterFile)
	case "nextcode":
		code, err := cli.rosterSvc.NextStudentCode()
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
