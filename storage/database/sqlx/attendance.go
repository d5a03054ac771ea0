package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/roster"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var (
	_ attendance.Repository   = (*attendanceRepository)(nil) // interface compliance check
	_ roster.DependentRemover = (*attendanceRepository)(nil)
)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryAllRecords() ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	err := repo.db.Select(&records, `SELECT * FROM attendance_record ORDER BY date, student_id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return records, nil
}

func (repo *attendanceRepository) QueryRecordsByDate(date string) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	err := repo.db.Select(&records,
		`SELECT * FROM attendance_record WHERE date = $1 ORDER BY student_id`, date)
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return records, nil
}

func (repo *attendanceRepository) ReplaceForStudentDate(studentID, date string, records []attendance.Record) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM attendance_record WHERE student_id = $1 AND date = $2`, studentID, date)
	if err != nil {
		return errors.Wrap(err, "clearing attendance records")
	}
	for _, rec := range records {
		_, err = tx.NamedExec(
			`INSERT INTO attendance_record (student_id, subject_id, date, state, created_at)
			 VALUES (:student_id, :subject_id, :date, :state, :created_at)`, rec)
		if err != nil {
			return errors.Wrap(err, "inserting attendance record")
		}
	}
	return errors.Wrap(tx.Commit(), "committing attendance records")
}

func (repo *attendanceRepository) DeleteForStudent(studentID string) error {
	_, err := repo.db.Exec(`DELETE FROM attendance_record WHERE student_id = $1`, studentID)
	return errors.Wrap(err, "deleting attendance records")
}

func (repo *attendanceRepository) DeleteForSubject(subjectID string) error {
	_, err := repo.db.Exec(`DELETE FROM attendance_record WHERE subject_id = $1`, subjectID)
	return errors.Wrap(err, "deleting attendance records")
}
