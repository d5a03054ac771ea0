// Package attendance records daily marks and tallies per-period faults.
// A teacher marks a student once per day; the mark is expanded into one
// record per subject in session that weekday.
package attendance

import "time"

// State is a daily attendance mark.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// Valid returns true when the state is a supported value.
func (s State) Valid() bool {
	switch s {
	case StatePresent, StateAbsent:
		return true
	default:
		return false
	}
}

// Record is the attendance mark of one student for one subject on one day.
// At most one record exists per (student, subject, date); rewriting a day
// replaces every record for the (student, date) pair.
type Record struct {
	StudentID string    `json:"student_id" db:"student_id"`
	SubjectID string    `json:"subject_id" db:"subject_id"`
	Date      string    `json:"date" db:"date"` // YYYY-MM-DD
	State     State     `json:"state" db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// FaultSummary tallies one student's absences within a period.
type FaultSummary struct {
	// FaultsBySubject counts, per subject id, the days the student missed
	// a session of that subject.
	FaultsBySubject map[string]int `json:"faults_by_subject"`

	// TotalFaultDays counts the distinct absent dates, never the sum
	// across subjects.
	TotalFaultDays int `json:"total_fault_days"`
}
