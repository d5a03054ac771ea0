// Package roster manages the students and subjects under a teacher's care.
package roster

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

type Student struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"` // unique, sortable; allocated when blank
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Subject struct {
	ID         string      `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Code       string      `json:"code" db:"code"`
	GradeLevel string      `json:"grade_level" db:"grade_level"`
	Schedule   string      `json:"schedule" db:"schedule"` // free text naming the weekdays
	Color      null.String `json:"color" db:"color"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// Days returns the weekday set parsed from the subject's schedule text.
func (s Subject) Days() calendar.DaySet {
	return calendar.ParseSchedule(s.Schedule)
}

// ScheduledOn returns the subjects in session on the given date.
func ScheduledOn(date time.Time, subjects []Subject) []Subject {
	day := calendar.WeekdayOf(date)
	scheduled := make([]Subject, 0, len(subjects))
	for _, sub := range subjects {
		if sub.Days().Has(day) {
			scheduled = append(scheduled, sub)
		}
	}
	return scheduled
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"omitempty,rostercode"` // allocated from the roster when blank
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	return validate.Struct(ns)
}

// UpdateStudent contains information needed to update a Student.
type UpdateStudent struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,rostercode"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Code = core.CleanString(us.Code)
	return validate.Struct(us)
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name       string      `json:"name" validate:"required"`
	Code       string      `json:"code" validate:"required,rostercode"`
	GradeLevel string      `json:"grade_level"`
	Schedule   string      `json:"schedule" validate:"required,weekdays"`
	Color      null.String `json:"color"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	ns.Schedule = core.CleanString(ns.Schedule)
	return validate.Struct(ns)
}

// UpdateSubject contains information needed to update a Subject.
type UpdateSubject struct {
	Name       string      `json:"name" validate:"required"`
	Code       string      `json:"code" validate:"required,rostercode"`
	GradeLevel string      `json:"grade_level"`
	Schedule   string      `json:"schedule" validate:"required,weekdays"`
	Color      null.String `json:"color"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Code = core.CleanString(us.Code)
	us.GradeLevel = core.CleanString(us.GradeLevel)
	us.Schedule = core.CleanString(us.Schedule)
	return validate.Struct(us)
}
