package grades

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

var (
	// errors
	ErrTypeNotFound  = errors.New("assessment type not found")
	ErrEntryNotFound = errors.New("grade entry not found")

	errGradeOutOfRange = errors.New("grade must be greater than 0 and at most 5")
	errGradeNotNumeric = errors.New("grade must be a number")
)

type (
	// Repository persists assessment types and grade entries as keyed rows;
	// every mutation targets a single (subject, student, period, type) key.
	Repository interface {
		QueryTypes(subjectID string, period int) ([]AssessmentType, error) // ordered by position
		GetTypeByID(id string) (AssessmentType, error)
		CreateType(at AssessmentType) (AssessmentType, error)
		// DeleteType removes the type and every entry keyed to it.
		DeleteType(id string) error

		QueryEntries(subjectID, studentID string, period int) ([]Entry, error)
		QueryEntriesBySubject(subjectID string, period int) ([]Entry, error)
		UpsertEntry(e Entry) error
		DeleteEntry(subjectID, studentID string, period int, typeID string) error

		DeleteForStudent(studentID string) error
		DeleteForSubject(subjectID string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddAssessmentType appends a new type to the (subject, period) list;
// append order is display order.
func (svc *Service) AddAssessmentType(nt NewAssessmentType) (AssessmentType, error) {
	existing, err := svc.repo.QueryTypes(nt.SubjectID, nt.Period)
	if err != nil {
		return AssessmentType{}, errors.Wrap(err, "querying assessment types")
	}

	position := 1
	for _, at := range existing {
		if at.Position >= position {
			position = at.Position + 1
		}
	}

	at := AssessmentType{
		ID:          uuid.New().String(),
		SubjectID:   nt.SubjectID,
		Period:      nt.Period,
		Title:       nt.Title,
		Description: nt.Description,
		Position:    position,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateType(at)
}

// QueryAssessmentTypes returns the (subject, period) types in display order.
func (svc *Service) QueryAssessmentTypes(subjectID string, period int) ([]AssessmentType, error) {
	return svc.repo.QueryTypes(subjectID, period)
}

// RemoveAssessmentType deletes the type and every grade entry keyed to it,
// scoped to the given subject and period only.
func (svc *Service) RemoveAssessmentType(subjectID string, period int, typeID string) error {
	at, err := svc.repo.GetTypeByID(typeID)
	if err != nil {
		return err
	}
	if at.SubjectID != subjectID || at.Period != period {
		return ErrTypeNotFound
	}
	return svc.repo.DeleteType(typeID)
}

// SetGrade upserts the entry at (subject, student, period, type) from a raw
// input value. An empty raw value deletes the entry instead of storing a
// placeholder. A value that does not parse as a number, or that falls
// outside (0, 5], is rejected and the prior entry is left unchanged.
func (svc *Service) SetGrade(subjectID, studentID string, period int, typeID, raw string) (*Entry, error) {
	at, err := svc.repo.GetTypeByID(typeID)
	if err != nil {
		return nil, err
	}
	if at.SubjectID != subjectID || at.Period != period {
		return nil, ErrTypeNotFound
	}

	raw = core.CleanString(raw)
	if raw == "" {
		err := svc.repo.DeleteEntry(subjectID, studentID, period, typeID)
		if err != nil && errors.Cause(err) != ErrEntryNotFound {
			return nil, errors.Wrap(err, "deleting grade entry")
		}
		return nil, nil
	}

	value, err := parseGrade(raw)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		SubjectID: subjectID,
		StudentID: studentID,
		Period:    period,
		TypeID:    typeID,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if err = svc.repo.UpsertEntry(entry); err != nil {
		return nil, errors.Wrap(err, "upserting grade entry")
	}
	return &entry, nil
}

// parseGrade parses a raw grade, accepting a decimal comma ("3,5").
func parseGrade(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, core.NewValidationError(errGradeNotNumeric,
			core.FieldError{Field: "value", Error: errGradeNotNumeric.Error()})
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= GradeMin || value > GradeMax {
		return 0, core.NewValidationError(errGradeOutOfRange,
			core.FieldError{Field: "value", Error: errGradeOutOfRange.Error()})
	}
	return value, nil
}

// QueryEntries returns the student's entries for (subject, period).
func (svc *Service) QueryEntries(subjectID, studentID string, period int) ([]Entry, error) {
	return svc.repo.QueryEntries(subjectID, studentID, period)
}

// QueryEntriesBySubject returns every entry for (subject, period).
func (svc *Service) QueryEntriesBySubject(subjectID string, period int) ([]Entry, error) {
	return svc.repo.QueryEntriesBySubject(subjectID, period)
}

// PeriodAverage is the arithmetic mean of the student's entries at
// (subject, period), rounded to 2 decimals. It returns 0 when no entries
// exist, indistinguishable from a true 0 average; callers needing the
// distinction must check the entry count.
func (svc *Service) PeriodAverage(subjectID, studentID string, period int) (float64, error) {
	entries, err := svc.repo.QueryEntries(subjectID, studentID, period)
	if err != nil {
		return 0, errors.Wrap(err, "querying grade entries")
	}
	return average(entries), nil
}

// OverallAverage is the mean of the four period averages. A period with no
// entries contributes exactly 0, pulling the overall average down; that is
// the long-standing grading policy, not an accident.
func (svc *Service) OverallAverage(subjectID, studentID string) (float64, error) {
	var sum float64
	for period := 1; period <= calendar.PeriodCount; period++ {
		avg, err := svc.PeriodAverage(subjectID, studentID, period)
		if err != nil {
			return 0, err
		}
		sum += avg
	}
	return round2(sum / calendar.PeriodCount), nil
}

// Classify buckets an average: >=3.5 approved, >=3.0 sufficient,
// else failing.
func Classify(avg float64) Classification {
	switch {
	case avg >= 3.5:
		return ClassificationApproved
	case avg >= 3.0:
		return ClassificationSufficient
	default:
		return ClassificationFailing
	}
}

func average(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	return round2(sum / float64(len(entries)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
