package attendance

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/roster"
)

type (
	Repository interface {
		QueryAllRecords() ([]Record, error)
		QueryRecordsByDate(date string) ([]Record, error)
		// ReplaceForStudentDate deletes every record for the (student, date)
		// pair, then inserts the given records.
		ReplaceForStudentDate(studentID, date string, records []Record) error
		DeleteForStudent(studentID string) error
		DeleteForSubject(subjectID string) error
	}

	// Directory is the slice of the roster the ledger needs.
	// Satisfied by roster.Repository.
	Directory interface {
		GetStudentByID(id string) (roster.Student, error)
		QueryAllStudents() ([]roster.Student, error)
		QueryAllSubjects() ([]roster.Subject, error)
	}

	Service struct {
		repo   Repository
		roster Directory
		calSvc *calendar.Service
	}
)

func NewService(repo Repository, rosterDir Directory, calSvc *calendar.Service) *Service {
	return &Service{repo: repo, roster: rosterDir, calSvc: calSvc}
}

// RecordDay writes the student's mark for a day: one record per subject in
// session that weekday, replacing whatever the day held before. It is a
// full overwrite, not a merge, so re-marking a day after a schedule change
// can change the number of records written. Returns the records written.
func (svc *Service) RecordDay(studentID string, date time.Time, state State) ([]Record, error) {
	if !state.Valid() {
		return nil, core.NewValidationError(
			errors.Errorf("unknown attendance state %q", state),
			core.FieldError{Field: "state", Error: "must be either \"present\" or \"absent\""},
		)
	}
	if _, err := svc.roster.GetStudentByID(studentID); err != nil {
		return nil, err
	}

	subjects, err := svc.roster.QueryAllSubjects()
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}

	day := calendar.DateOf(date).Format(calendar.DateFormat)
	now := time.Now().UTC()
	records := make([]Record, 0)
	for _, sub := range roster.ScheduledOn(date, subjects) {
		records = append(records, Record{
			StudentID: studentID,
			SubjectID: sub.ID,
			Date:      day,
			State:     state,
			CreatedAt: now,
		})
	}

	if err = svc.repo.ReplaceForStudentDate(studentID, day, records); err != nil {
		return nil, errors.Wrap(err, "replacing attendance records")
	}
	return records, nil
}

// Records returns every stored attendance record.
func (svc *Service) Records() ([]Record, error) {
	return svc.repo.QueryAllRecords()
}

// Day returns the records stored for a date.
func (svc *Service) Day(date time.Time) ([]Record, error) {
	return svc.repo.QueryRecordsByDate(calendar.DateOf(date).Format(calendar.DateFormat))
}

// FaultsByPeriod tallies faults for every student over a period.
//
// For each distinct date the student was marked absent, the fault counter
// of EVERY subject scheduled that weekday is incremented: the teacher
// marks absence once per day, but the effect is "missed every class held
// that day". TotalFaultDays counts the distinct dates.
func (svc *Service) FaultsByPeriod(ordinal int) (map[string]FaultSummary, error) {
	period, err := svc.calSvc.GetByOrdinal(ordinal)
	if err != nil {
		return nil, err
	}

	students, err := svc.roster.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	subjects, err := svc.roster.QueryAllSubjects()
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	records, err := svc.repo.QueryAllRecords()
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}

	// distinct absent dates per student, within the period
	absentDates := make(map[string]map[string]time.Time) // studentID -> date key -> date
	for _, rec := range records {
		if rec.State != StateAbsent {
			continue
		}
		date, err := time.Parse(calendar.DateFormat, rec.Date)
		if err != nil || !period.Contains(date) {
			continue
		}
		if absentDates[rec.StudentID] == nil {
			absentDates[rec.StudentID] = make(map[string]time.Time)
		}
		absentDates[rec.StudentID][rec.Date] = date
	}

	faults := make(map[string]FaultSummary, len(students))
	for _, st := range students {
		summary := FaultSummary{FaultsBySubject: make(map[string]int)}
		for _, date := range absentDates[st.ID] {
			summary.TotalFaultDays++
			for _, sub := range roster.ScheduledOn(date, subjects) {
				summary.FaultsBySubject[sub.ID]++
			}
		}
		faults[st.ID] = summary
	}
	return faults, nil
}
