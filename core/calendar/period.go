// Package calendar holds the academic calendar: the four fixed grading
// periods every attendance and grade record is bucketed into, and the
// weekday vocabulary used by subject schedules.
package calendar

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// PeriodCount is the number of academic periods in a school year.
const PeriodCount = 4

// DateFormat is the canonical key format for calendar dates.
const DateFormat = "2006-01-02"

var (
	ErrPeriodNotFound = errors.New("academic period not found")
	ErrNoPeriods      = errors.New("no academic periods configured")
)

type (
	// Period is one of the four fixed academic date ranges. Both Start and
	// End are inclusive. Periods are application-wide, not per-student.
	Period struct {
		Ordinal int       `json:"ordinal" db:"ordinal" validate:"min=1,max=4"`
		Start   time.Time `json:"start" db:"start_date" validate:"required"`
		End     time.Time `json:"end" db:"end_date" validate:"required"`
	}

	Repository interface {
		QueryAllPeriods() ([]Period, error)
		ReplacePeriods(periods []Period) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Contains reports whether date falls within the period's inclusive range.
// Only the calendar day matters; time-of-day is discarded.
func (p Period) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(p.Start)) && !d.After(DateOf(p.End))
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, core.CleanString(s))
	if err != nil {
		return time.Time{}, core.NewValidationError(
			errors.New("invalid date"),
			core.FieldError{Field: "date", Error: "must be a valid YYYY-MM-DD date"},
		)
	}
	return t, nil
}

// Classify returns the ordinal of the period containing date.
// A date preceding all periods (or falling in a gap between two periods)
// classifies as the next period to start; this mirrors how teachers file
// records logged during holidays. A date past the last period's end clamps
// to the last period. With no periods configured it returns 1.
func Classify(periods []Period, date time.Time) int {
	if len(periods) == 0 {
		return 1
	}

	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	d := DateOf(date)
	for _, p := range sorted {
		if p.Contains(d) {
			return p.Ordinal
		}
	}
	for _, p := range sorted {
		if DateOf(p.Start).After(d) {
			return p.Ordinal
		}
	}
	return sorted[len(sorted)-1].Ordinal
}

// FilterDates keeps the dates falling within the period.
func FilterDates(p Period, dates []time.Time) []time.Time {
	kept := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if p.Contains(d) {
			kept = append(kept, d)
		}
	}
	return kept
}

func (svc *Service) QueryAll() ([]Period, error) {
	periods, err := svc.repo.QueryAllPeriods()
	if err != nil {
		return nil, errors.Wrap(err, "querying periods")
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Ordinal < periods[j].Ordinal })
	return periods, nil
}

func (svc *Service) GetByOrdinal(ordinal int) (Period, error) {
	periods, err := svc.repo.QueryAllPeriods()
	if err != nil {
		return Period{}, errors.Wrap(err, "querying periods")
	}
	for _, p := range periods {
		if p.Ordinal == ordinal {
			return p, nil
		}
	}
	return Period{}, ErrPeriodNotFound
}

// Replace swaps in a full new set of periods after validating it.
func (svc *Service) Replace(periods []Period) ([]Period, error) {
	if len(periods) != PeriodCount {
		return nil, core.NewValidationError(
			errors.Errorf("exactly %d academic periods are required", PeriodCount),
		)
	}

	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ordinal < sorted[j].Ordinal })

	for i, p := range sorted {
		if p.Ordinal != i+1 {
			return nil, core.NewValidationError(
				errors.New("period ordinals must be 1 through 4"),
				core.FieldError{Field: "ordinal", Error: "ordinals must be 1 through 4 without duplicates"},
			)
		}
		if DateOf(p.End).Before(DateOf(p.Start)) {
			return nil, core.NewValidationError(
				errors.Errorf("period %d ends before it starts", p.Ordinal),
				core.FieldError{Field: "end", Error: "must not precede the start date"},
			)
		}
		if i > 0 && !DateOf(p.Start).After(DateOf(sorted[i-1].End)) {
			return nil, core.NewValidationError(
				errors.Errorf("period %d overlaps period %d", p.Ordinal, i),
				core.FieldError{Field: "start", Error: "must follow the previous period's end date"},
			)
		}
	}

	if err := svc.repo.ReplacePeriods(sorted); err != nil {
		return nil, errors.Wrap(err, "replacing periods")
	}
	return sorted, nil
}

// ClassifyDate is Classify against the stored period set.
func (svc *Service) ClassifyDate(date time.Time) (int, error) {
	periods, err := svc.repo.QueryAllPeriods()
	if err != nil {
		return 0, errors.Wrap(err, "querying periods")
	}
	return Classify(periods, date), nil
}
