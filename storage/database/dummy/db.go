// Package dummydb is an in-memory implementation of the repositories,
// used as the fake store in tests.
package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

type (
	DB struct {
		student *studentTable
		subject *subjectTable
		period  *periodTable
		att     *attendanceTable
		grade   *gradeTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*roster.Student
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*roster.Subject
	}

	periodTable struct {
		sync.RWMutex
		table map[int]*calendar.Period
	}

	attendanceTable struct {
		sync.RWMutex
		table map[recordKey]*attendance.Record
	}

	gradeTable struct {
		sync.RWMutex
		types   map[string]*grades.AssessmentType
		entries map[entryKey]*grades.Entry
	}

	recordKey struct {
		studentID, subjectID, date string
	}

	entryKey struct {
		subjectID, studentID string
		period               int
		typeID               string
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[string]*roster.Student)},
		subject: &subjectTable{table: make(map[string]*roster.Subject)},
		period:  &periodTable{table: make(map[int]*calendar.Period)},
		att:     &attendanceTable{table: make(map[recordKey]*attendance.Record)},
		grade: &gradeTable{
			types:   make(map[string]*grades.AssessmentType),
			entries: make(map[entryKey]*grades.Entry),
		},
	}
	return db, nil
}
