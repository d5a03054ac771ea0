// Package report flattens ledgers into presentation-ready matrices that
// any spreadsheet or CSV serializer can consume. Visual metadata (column
// widths, styling) is the consumer's business.
package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

// cell markers
const (
	markPresent = "X"
	markAbsent  = "F"
)

// Matrix is a headers-plus-rows table.
type Matrix struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type Service struct {
	rosterSvc *roster.Service
	calSvc    *calendar.Service
	attSvc    *attendance.Service
	gradeSvc  *grades.Service
}

func NewService(rosterSvc *roster.Service, calSvc *calendar.Service, attSvc *attendance.Service, gradeSvc *grades.Service) *Service {
	return &Service{rosterSvc: rosterSvc, calSvc: calSvc, attSvc: attSvc, gradeSvc: gradeSvc}
}

// AttendanceMatrix lays out a period's attendance: one column per distinct
// in-period date holding at least one record (ascending), one row per
// student, cells marked X (present) / F (absent) / blank (no record), and
// a trailing per-row fault total.
func (svc *Service) AttendanceMatrix(periodOrdinal int) (Matrix, error) {
	period, err := svc.calSvc.GetByOrdinal(periodOrdinal)
	if err != nil {
		return Matrix{}, err
	}

	students, err := svc.rosterSvc.QueryAllStudents()
	if err != nil {
		return Matrix{}, errors.Wrap(err, "querying students")
	}
	records, err := svc.attSvc.Records()
	if err != nil {
		return Matrix{}, errors.Wrap(err, "querying attendance records")
	}

	// distinct in-period dates having at least one record
	dateSet := make(map[string]bool)
	// collapsed per-day state; a day's records share a state by
	// construction, any absent record marks the day absent
	states := make(map[string]map[string]attendance.State) // studentID -> date -> state
	for _, rec := range records {
		date, err := time.Parse(calendar.DateFormat, rec.Date)
		if err != nil || !period.Contains(date) {
			continue
		}
		dateSet[rec.Date] = true
		if states[rec.StudentID] == nil {
			states[rec.StudentID] = make(map[string]attendance.State)
		}
		if states[rec.StudentID][rec.Date] != attendance.StateAbsent {
			states[rec.StudentID][rec.Date] = rec.State
		}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	headers := append([]string{"Code", "Student"}, dates...)
	headers = append(headers, "Faults")

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		row := make([]string, 0, len(headers))
		row = append(row, st.Code, st.Name)
		var faults int
		for _, d := range dates {
			switch states[st.ID][d] {
			case attendance.StatePresent:
				row = append(row, markPresent)
			case attendance.StateAbsent:
				row = append(row, markAbsent)
				faults++
			default:
				row = append(row, "")
			}
		}
		row = append(row, strconv.Itoa(faults))
		rows = append(rows, row)
	}

	return Matrix{
		Title:   "Attendance - Period " + strconv.Itoa(periodOrdinal),
		Headers: headers,
		Rows:    rows,
	}, nil
}

// GradeMatrix lays out a subject's grades for a period: one column per
// assessment type plus a trailing period average. When the (subject,
// period) has no types it falls back to the four period averages plus the
// overall average.
func (svc *Service) GradeMatrix(subjectID string, periodOrdinal int) (Matrix, error) {
	subject, err := svc.rosterSvc.GetSubjectByID(subjectID)
	if err != nil {
		return Matrix{}, err
	}
	students, err := svc.rosterSvc.QueryAllStudents()
	if err != nil {
		return Matrix{}, errors.Wrap(err, "querying students")
	}
	types, err := svc.gradeSvc.QueryAssessmentTypes(subjectID, periodOrdinal)
	if err != nil {
		return Matrix{}, errors.Wrap(err, "querying assessment types")
	}

	title := subject.Name + " - Period " + strconv.Itoa(periodOrdinal)
	if len(types) == 0 {
		return svc.overallGradeMatrix(subject, students, title)
	}

	entries, err := svc.gradeSvc.QueryEntriesBySubject(subjectID, periodOrdinal)
	if err != nil {
		return Matrix{}, errors.Wrap(err, "querying grade entries")
	}
	values := make(map[string]map[string]float64) // studentID -> typeID -> value
	for _, e := range entries {
		if values[e.StudentID] == nil {
			values[e.StudentID] = make(map[string]float64)
		}
		values[e.StudentID][e.TypeID] = e.Value
	}

	headers := append([]string{"Code", "Student"}, typeTitles(types)...)
	headers = append(headers, "Average")

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		row := make([]string, 0, len(headers))
		row = append(row, st.Code, st.Name)
		for _, at := range types {
			if v, ok := values[st.ID][at.ID]; ok {
				row = append(row, formatGrade(v))
			} else {
				row = append(row, "")
			}
		}
		avg, err := svc.gradeSvc.PeriodAverage(subjectID, st.ID, periodOrdinal)
		if err != nil {
			return Matrix{}, err
		}
		row = append(row, formatAverage(avg))
		rows = append(rows, row)
	}

	return Matrix{Title: title, Headers: headers, Rows: rows}, nil
}

// overallGradeMatrix is the fallback layout: the four period averages and
// the overall average per student.
func (svc *Service) overallGradeMatrix(subject roster.Subject, students []roster.Student, title string) (Matrix, error) {
	headers := []string{"Code", "Student", "P1", "P2", "P3", "P4", "Overall"}

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		row := make([]string, 0, len(headers))
		row = append(row, st.Code, st.Name)
		for period := 1; period <= calendar.PeriodCount; period++ {
			avg, err := svc.gradeSvc.PeriodAverage(subject.ID, st.ID, period)
			if err != nil {
				return Matrix{}, err
			}
			row = append(row, formatAverage(avg))
		}
		overall, err := svc.gradeSvc.OverallAverage(subject.ID, st.ID)
		if err != nil {
			return Matrix{}, err
		}
		row = append(row, formatAverage(overall))
		rows = append(rows, row)
	}

	return Matrix{Title: title, Headers: headers, Rows: rows}, nil
}

func typeTitles(types []grades.AssessmentType) []string {
	titles := make([]string, 0, len(types))
	for _, at := range types {
		titles = append(titles, at.Title)
	}
	return titles
}

func formatGrade(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
