package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/roster"
)

// importRoster enrolls students from a CSV file, one per line: name[,code].
// Codes left blank are allocated from the roster. Bad lines are reported
// without aborting the rest of the import.
func (cli *commandLine) importRoster(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // name alone or name,code
	lines, err := reader.ReadAll()
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	entries := make([]roster.NewStudent, 0, len(lines))
	for _, line := range lines {
		ns := roster.NewStudent{Name: line[0]}
		if len(line) > 1 {
			ns.Code = line[1]
		}
		entries = append(entries, ns)
	}

	res := cli.rosterSvc.ImportStudents(entries)
	fmt.Printf("imported %d students, %d failed\n", res.Created, res.Failed)
	for _, impErr := range res.Errors {
		fmt.Printf("  line %d (%s): %s\n", impErr.Index+1, impErr.Name, impErr.Error)
	}
	return nil
}
