// Package sqlxrepos implements the repositories against PostgreSQL.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/roster"
)

type rosterRepository struct {
	db *sqlx.DB
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *sqlx.DB) roster.Repository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) CreateStudent(st roster.Student) (roster.Student, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO student (id, name, code, created_at, updated_at)
		 VALUES (:id, :name, :code, :created_at, :updated_at)`, st)
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo *rosterRepository) QueryAllStudents() ([]roster.Student, error) {
	students := make([]roster.Student, 0)
	if err := repo.db.Select(&students, `SELECT * FROM student ORDER BY code`); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo *rosterRepository) GetStudentByID(id string) (roster.Student, error) {
	var st roster.Student
	err := repo.db.Get(&st, `SELECT * FROM student WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "selecting student")
	}
	return st, nil
}

func (repo *rosterRepository) UpdateStudent(st roster.Student) (roster.Student, error) {
	res, err := repo.db.NamedExec(
		`UPDATE student SET name = :name, code = :code, updated_at = :updated_at WHERE id = :id`, st)
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	return st, nil
}

func (repo *rosterRepository) DeleteStudent(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM student WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return nil
}

func (repo *rosterRepository) CreateSubject(sub roster.Subject) (roster.Subject, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO subject (id, name, code, grade_level, schedule, color, created_at, updated_at)
		 VALUES (:id, :name, :code, :grade_level, :schedule, :color, :created_at, :updated_at)`, sub)
	if err != nil {
		return roster.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo *rosterRepository) QueryAllSubjects() ([]roster.Subject, error) {
	subjects := make([]roster.Subject, 0)
	if err := repo.db.Select(&subjects, `SELECT * FROM subject ORDER BY code`); err != nil {
		return nil, errors.Wrap(err, "selecting subjects")
	}
	return subjects, nil
}

func (repo *rosterRepository) GetSubjectByID(id string) (roster.Subject, error) {
	var sub roster.Subject
	err := repo.db.Get(&sub, `SELECT * FROM subject WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	if err != nil {
		return roster.Subject{}, errors.Wrap(err, "selecting subject")
	}
	return sub, nil
}

func (repo *rosterRepository) UpdateSubject(sub roster.Subject) (roster.Subject, error) {
	res, err := repo.db.NamedExec(
		`UPDATE subject
		 SET name = :name, code = :code, grade_level = :grade_level,
		     schedule = :schedule, color = :color, updated_at = :updated_at
		 WHERE id = :id`, sub)
	if err != nil {
		return roster.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	return sub, nil
}

func (repo *rosterRepository) DeleteSubject(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM subject WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return nil
}
