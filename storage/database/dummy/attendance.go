package dummydb

import (
	"sort"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/roster"
)

type attendanceRepository struct {
	db *attendanceTable
}

var (
	_ attendance.Repository   = (*attendanceRepository)(nil) // interface compliance check
	_ roster.DependentRemover = (*attendanceRepository)(nil)
)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.att}
}

func (repo *attendanceRepository) query() []attendance.Record {
	records := make([]attendance.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records
}

func (repo *attendanceRepository) QueryAllRecords() ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *attendanceRepository) QueryRecordsByDate(date string) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Record, 0)
	for _, rec := range repo.query() {
		if rec.Date == date {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (repo *attendanceRepository) ReplaceForStudentDate(studentID, date string, records []attendance.Record) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for key := range repo.db.table {
		if key.studentID == studentID && key.date == date {
			delete(repo.db.table, key)
		}
	}
	for i := range records {
		rec := records[i]
		repo.db.table[recordKey{rec.StudentID, rec.SubjectID, rec.Date}] = &rec
	}
	return nil
}

func (repo *attendanceRepository) DeleteForStudent(studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for key := range repo.db.table {
		if key.studentID == studentID {
			delete(repo.db.table, key)
		}
	}
	return nil
}

func (repo *attendanceRepository) DeleteForSubject(subjectID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for key := range repo.db.table {
		if key.subjectID == subjectID {
			delete(repo.db.table, key)
		}
	}
	return nil
}
