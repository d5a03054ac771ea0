package dummydb

import (
	"sort"

	"github.com/trezcool/darasa/core/roster"
)

type rosterRepository struct {
	students *studentTable
	subjects *subjectTable
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *DB) roster.Repository {
	return &rosterRepository{students: db.student, subjects: db.subject}
}

func (repo *rosterRepository) CreateStudent(st roster.Student) (roster.Student, error) {
	repo.students.Lock()
	defer repo.students.Unlock()

	repo.students.table[st.ID] = &st
	return st, nil
}

func (repo *rosterRepository) QueryAllStudents() ([]roster.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	students := make([]roster.Student, 0, len(repo.students.table))
	for _, st := range repo.students.table {
		students = append(students, *st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Code < students[j].Code })
	return students, nil
}

func (repo *rosterRepository) GetStudentByID(id string) (roster.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	if st, ok := repo.students.table[id]; ok {
		return *st, nil
	}
	return roster.Student{}, roster.ErrStudentNotFound
}

func (repo *rosterRepository) UpdateStudent(st roster.Student) (roster.Student, error) {
	repo.students.Lock()
	defer repo.students.Unlock()

	if _, ok := repo.students.table[st.ID]; !ok {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	repo.students.table[st.ID] = &st
	return st, nil
}

func (repo *rosterRepository) DeleteStudent(id string) error {
	repo.students.Lock()
	defer repo.students.Unlock()

	delete(repo.students.table, id)
	return nil
}

func (repo *rosterRepository) CreateSubject(sub roster.Subject) (roster.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *rosterRepository) QueryAllSubjects() ([]roster.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	subjects := make([]roster.Subject, 0, len(repo.subjects.table))
	for _, sub := range repo.subjects.table {
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}

func (repo *rosterRepository) GetSubjectByID(id string) (roster.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if sub, ok := repo.subjects.table[id]; ok {
		return *sub, nil
	}
	return roster.Subject{}, roster.ErrSubjectNotFound
}

func (repo *rosterRepository) UpdateSubject(sub roster.Subject) (roster.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	if _, ok := repo.subjects.table[sub.ID]; !ok {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *rosterRepository) DeleteSubject(id string) error {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	delete(repo.subjects.table, id)
	return nil
}
