// Package grades manages per-subject assessment types and grade entries,
// and derives period/overall averages with pass-fail classification.
package grades

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Grades live on a 1.0–5.0 scale; anything in (0, 5] is storable.
const (
	GradeMin = 0.0 // exclusive
	GradeMax = 5.0 // inclusive
)

// Classification buckets an average against the fixed thresholds.
type Classification string

const (
	ClassificationApproved   Classification = "approved"   // >= 3.5
	ClassificationSufficient Classification = "sufficient" // >= 3.0
	ClassificationFailing    Classification = "failing"
)

// AssessmentType is a named gradable activity scoped to one subject and
// one period. Two subjects may hold identically-titled, distinct types.
type AssessmentType struct {
	ID          string      `json:"id" db:"id"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	Period      int         `json:"period" db:"period"`
	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	Position    int         `json:"position" db:"position"` // display order, append order
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
}

// Entry is one grade. At most one exists per
// (subject, student, period, type); clearing a value deletes the entry.
type Entry struct {
	SubjectID string    `json:"subject_id" db:"subject_id"`
	StudentID string    `json:"student_id" db:"student_id"`
	Period    int       `json:"period" db:"period"`
	TypeID    string    `json:"type_id" db:"type_id"`
	Value     float64   `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewAssessmentType contains information needed to create an AssessmentType.
type NewAssessmentType struct {
	SubjectID   string      `json:"subject_id" validate:"required"`
	Period      int         `json:"period" validate:"min=1,max=4"`
	Title       string      `json:"title" validate:"required"`
	Description null.String `json:"description"`
}

func (nt *NewAssessmentType) Validate(validate *validator.Validate) error {
	nt.SubjectID = core.CleanString(nt.SubjectID)
	nt.Title = core.CleanString(nt.Title)
	return validate.Struct(nt)
}
