package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

type gradeRepository struct {
	db *sqlx.DB
}

var (
	_ grades.Repository       = (*gradeRepository)(nil) // interface compliance check
	_ roster.DependentRemover = (*gradeRepository)(nil)
)

func NewGradeRepository(db *sqlx.DB) grades.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryTypes(subjectID string, period int) ([]grades.AssessmentType, error) {
	types := make([]grades.AssessmentType, 0)
	err := repo.db.Select(&types,
		`SELECT * FROM assessment_type WHERE subject_id = $1 AND period = $2 ORDER BY position`,
		subjectID, period)
	if err != nil {
		return nil, errors.Wrap(err, "selecting assessment types")
	}
	return types, nil
}

func (repo *gradeRepository) GetTypeByID(id string) (grades.AssessmentType, error) {
	var at grades.AssessmentType
	err := repo.db.Get(&at, `SELECT * FROM assessment_type WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return grades.AssessmentType{}, grades.ErrTypeNotFound
	}
	if err != nil {
		return grades.AssessmentType{}, errors.Wrap(err, "selecting assessment type")
	}
	return at, nil
}

func (repo *gradeRepository) CreateType(at grades.AssessmentType) (grades.AssessmentType, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO assessment_type (id, subject_id, period, title, description, position, created_at)
		 VALUES (:id, :subject_id, :period, :title, :description, :position, :created_at)`, at)
	if err != nil {
		return grades.AssessmentType{}, errors.Wrap(err, "inserting assessment type")
	}
	return at, nil
}

func (repo *gradeRepository) DeleteType(id string) error {
	// grade_entry rows cascade via FK
	if _, err := repo.db.Exec(`DELETE FROM assessment_type WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting assessment type")
	}
	return nil
}

func (repo *gradeRepository) QueryEntries(subjectID, studentID string, period int) ([]grades.Entry, error) {
	entries := make([]grades.Entry, 0)
	err := repo.db.Select(&entries,
		`SELECT * FROM grade_entry
		 WHERE subject_id = $1 AND student_id = $2 AND period = $3
		 ORDER BY type_id`,
		subjectID, studentID, period)
	if err != nil {
		return nil, errors.Wrap(err, "selecting grade entries")
	}
	return entries, nil
}

func (repo *gradeRepository) QueryEntriesBySubject(subjectID string, period int) ([]grades.Entry, error) {
	entries := make([]grades.Entry, 0)
	err := repo.db.Select(&entries,
		`SELECT * FROM grade_entry
		 WHERE subject_id = $1 AND period = $2
		 ORDER BY student_id, type_id`,
		subjectID, period)
	if err != nil {
		return nil, errors.Wrap(err, "selecting grade entries")
	}
	return entries, nil
}

func (repo *gradeRepository) UpsertEntry(e grades.Entry) error {
	_, err := repo.db.NamedExec(
		`INSERT INTO grade_entry (subject_id, student_id, period, type_id, value, updated_at)
		 VALUES (:subject_id, :student_id, :period, :type_id, :value, :updated_at)
		 ON CONFLICT (subject_id, student_id, period, type_id)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, e)
	return errors.Wrap(err, "upserting grade entry")
}

func (repo *gradeRepository) DeleteEntry(subjectID, studentID string, period int, typeID string) error {
	res, err := repo.db.Exec(
		`DELETE FROM grade_entry
		 WHERE subject_id = $1 AND student_id = $2 AND period = $3 AND type_id = $4`,
		subjectID, studentID, period, typeID)
	if err != nil {
		return errors.Wrap(err, "deleting grade entry")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grades.ErrEntryNotFound
	}
	return nil
}

func (repo *gradeRepository) DeleteForStudent(studentID string) error {
	_, err := repo.db.Exec(`DELETE FROM grade_entry WHERE student_id = $1`, studentID)
	return errors.Wrap(err, "deleting grade entries")
}

func (repo *gradeRepository) DeleteForSubject(subjectID string) error {
	// deleting the types cascades their entries via FK
	if _, err := repo.db.Exec(`DELETE FROM assessment_type WHERE subject_id = $1`, subjectID); err != nil {
		return errors.Wrap(err, "deleting assessment types")
	}
	_, err := repo.db.Exec(`DELETE FROM grade_entry WHERE subject_id = $1`, subjectID)
	return errors.Wrap(err, "deleting grade entries")
}
