package dummydb

import (
	"sort"

	"github.com/trezcool/darasa/core/grades"
	"github.com/trezcool/darasa/core/roster"
)

type gradeRepository struct {
	db *gradeTable
}

var (
	_ grades.Repository       = (*gradeRepository)(nil) // interface compliance check
	_ roster.DependentRemover = (*gradeRepository)(nil)
)

func NewGradeRepository(db *DB) grades.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) QueryTypes(subjectID string, period int) ([]grades.AssessmentType, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	types := make([]grades.AssessmentType, 0)
	for _, at := range repo.db.types {
		if at.SubjectID == subjectID && at.Period == period {
			types = append(types, *at)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Position < types[j].Position })
	return types, nil
}

func (repo *gradeRepository) GetTypeByID(id string) (grades.AssessmentType, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if at, ok := repo.db.types[id]; ok {
		return *at, nil
	}
	return grades.AssessmentType{}, grades.ErrTypeNotFound
}

func (repo *gradeRepository) CreateType(at grades.AssessmentType) (grades.AssessmentType, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.types[at.ID] = &at
	return at, nil
}

func (repo *gradeRepository) DeleteType(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.types, id)
	for key := range repo.db.entries {
		if key.typeID == id {
			delete(repo.db.entries, key)
		}
	}
	return nil
}

func (repo *gradeRepository) queryEntries(filter func(entryKey) bool) []grades.Entry {
	entries := make([]grades.Entry, 0)
	for key, e := range repo.db.entries {
		if filter(key) {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StudentID != entries[j].StudentID {
			return entries[i].StudentID < entries[j].StudentID
		}
		return entries[i].TypeID < entries[j].TypeID
	})
	return entries
}

func (repo *gradeRepository) QueryEntries(subjectID, studentID string, period int) ([]grades.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return repo.queryEntries(func(key entryKey) bool {
		return key.subjectID == subjectID && key.studentID == studentID && key.period == period
	}), nil
}

func (repo *gradeRepository) QueryEntriesBySubject(subjectID string, period int) ([]grades.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return repo.queryEntries(func(key entryKey) bool {
		return key.subjectID == subjectID && key.period == period
	}), nil
}

func (repo *gradeRepository) UpsertEntry(e grades.Entry) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.entries[entryKey{e.SubjectID, e.StudentID, e.Period, e.TypeID}] = &e
	return nil
}

func (repo *gradeRepository) DeleteEntry(subjectID, studentID string, period int, typeID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := entryKey{subjectID, studentID, period, typeID}
	if _, ok := repo.db.entries[key]; !ok {
		return grades.ErrEntryNotFound
	}
	delete(repo.db.entries, key)
	return nil
}

func (repo *gradeRepository) DeleteForStudent(studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for key := range repo.db.entries {
		if key.studentID == studentID {
			delete(repo.db.entries, key)
		}
	}
	return nil
}

func (repo *gradeRepository) DeleteForSubject(subjectID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, at := range repo.db.types {
		if at.SubjectID == subjectID {
			delete(repo.db.types, id)
		}
	}
	for key := range repo.db.entries {
		if key.subjectID == subjectID {
			delete(repo.db.entries, key)
		}
	}
	return nil
}
