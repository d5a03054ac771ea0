package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/calendar"
)

// periodSeed is one period entry in the seed file, dates as YYYY-MM-DD.
type periodSeed struct {
	Ordinal int    `json:"ordinal"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// seedPeriods replaces the academic calendar with the periods in a JSON
// file: an array of {"ordinal": 1, "start": "2025-01-20", "end": "2025-03-28"}.
func (cli *commandLine) seedPeriods(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	var seeds []periodSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	periods := make([]calendar.Period, 0, len(seeds))
	for _, s := range seeds {
		start, err := calendar.ParseDate(s.Start)
		if err != nil {
			return errors.Wrapf(err, "period %d start", s.Ordinal)
		}
		end, err := calendar.ParseDate(s.End)
		if err != nil {
			return errors.Wrapf(err, "period %d end", s.Ordinal)
		}
		periods = append(periods, calendar.Period{Ordinal: s.Ordinal, Start: start, End: end})
	}

	if _, err := cli.calSvc.Replace(periods); err != nil {
		return err
	}
	fmt.Printf("seeded %d academic periods\n", len(periods))
	return nil
}
