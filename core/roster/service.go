package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrCodeExists      = errors.New("this code is already in use")
)

// defaultStudentCode seeds allocation on an empty roster.
const defaultStudentCode = "A001"

type (
	Repository interface {
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error) // ordered by code
		GetStudentByID(id string) (Student, error)
		UpdateStudent(st Student) (Student, error)
		DeleteStudent(id string) error

		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error) // ordered by code
		GetSubjectByID(id string) (Subject, error)
		UpdateSubject(sub Subject) (Subject, error)
		DeleteSubject(id string) error
	}

	// DependentRemover cascades roster deletions into a dependent record set
	// (attendance records, grades). Implemented by the dependent repositories.
	DependentRemover interface {
		DeleteForStudent(studentID string) error
		DeleteForSubject(subjectID string) error
	}

	Service struct {
		repo       Repository
		dependents []DependentRemover
	}
)

func NewService(repo Repository, dependents ...DependentRemover) *Service {
	return &Service{repo: repo, dependents: dependents}
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	existing, err := svc.repo.QueryAllStudents()
	if err != nil {
		return Student{}, errors.Wrap(err, "querying students")
	}

	code := ns.Code
	if code == "" {
		if code, err = svc.nextStudentCode(existing); err != nil {
			return Student{}, err
		}
	} else if err = checkCodeFree(code, studentCodes(existing)); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	st := Student{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(st)
}

// NextStudentCode previews the code the next enrollment would be allocated.
// It is stable: repeated calls without an intervening enrollment return the
// same code.
func (svc *Service) NextStudentCode() (string, error) {
	existing, err := svc.repo.QueryAllStudents()
	if err != nil {
		return "", errors.Wrap(err, "querying students")
	}
	return svc.nextStudentCode(existing)
}

func (svc *Service) nextStudentCode(existing []Student) (string, error) {
	base := defaultStudentCode
	if len(existing) > 0 {
		base = existing[0].Code
	}
	code, err := NextCode(base, studentCodes(existing))
	if err != nil {
		return "", errors.Wrapf(err, "allocating code from %q", base)
	}
	return code, nil
}

func (svc *Service) QueryAllStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}

	if us.Code != st.Code {
		existing, err := svc.repo.QueryAllStudents()
		if err != nil {
			return Student{}, errors.Wrap(err, "querying students")
		}
		if err = checkCodeFree(us.Code, studentCodes(existing)); err != nil {
			return Student{}, err
		}
	}

	st.Name = us.Name
	st.Code = us.Code
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(st)
}

// DeleteStudent removes the student along with their attendance records
// and grades.
func (svc *Service) DeleteStudent(id string) error {
	if _, err := svc.repo.GetStudentByID(id); err != nil {
		return err
	}
	for _, dep := range svc.dependents {
		if err := dep.DeleteForStudent(id); err != nil {
			return errors.Wrap(err, "cascading student deletion")
		}
	}
	return svc.repo.DeleteStudent(id)
}

// ImportError reports a single failed item of a bulk import.
type ImportError struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportResult tallies a bulk import. Items are written independently;
// a failed item does not roll back the ones already created.
type ImportResult struct {
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// ImportStudents enrolls each entry independently and reports partial
// success rather than rolling back.
func (svc *Service) ImportStudents(entries []NewStudent) ImportResult {
	var res ImportResult
	for i, ns := range entries {
		if _, err := svc.CreateStudent(ns); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, ImportError{Index: i, Name: ns.Name, Error: err.Error()})
			continue
		}
		res.Created++
	}
	return res
}

func (svc *Service) CreateSubject(ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		ID:         uuid.New().String(),
		Name:       ns.Name,
		Code:       ns.Code,
		GradeLevel: ns.GradeLevel,
		Schedule:   ns.Schedule,
		Color:      ns.Color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateSubject(sub)
}

func (svc *Service) QueryAllSubjects() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) GetSubjectByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) UpdateSubject(id string, us UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Subject{}, err
	}

	sub.Name = us.Name
	sub.Code = us.Code
	sub.GradeLevel = us.GradeLevel
	sub.Schedule = us.Schedule
	sub.Color = us.Color
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubject(sub)
}

// DeleteSubject removes the subject along with its attendance records,
// assessment types and grades.
func (svc *Service) DeleteSubject(id string) error {
	if _, err := svc.repo.GetSubjectByID(id); err != nil {
		return err
	}
	for _, dep := range svc.dependents {
		if err := dep.DeleteForSubject(id); err != nil {
			return errors.Wrap(err, "cascading subject deletion")
		}
	}
	return svc.repo.DeleteSubject(id)
}

func studentCodes(students []Student) []string {
	codes := make([]string, 0, len(students))
	for _, st := range students {
		codes = append(codes, st.Code)
	}
	return codes
}

func checkCodeFree(code string, existing []string) error {
	for _, c := range existing {
		if c == code {
			return core.NewValidationError(ErrCodeExists, core.FieldError{Field: "code", Error: ErrCodeExists.Error()})
		}
	}
	return nil
}
