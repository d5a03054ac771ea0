package dummydb

import (
	"github.com/trezcool/darasa/core/calendar"
)

type calendarRepository struct {
	db *periodTable
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

func NewCalendarRepository(db *DB) calendar.Repository {
	return &calendarRepository{db: db.period}
}

func (repo *calendarRepository) QueryAllPeriods() ([]calendar.Period, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	periods := make([]calendar.Period, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		periods = append(periods, *p)
	}
	return periods, nil
}

func (repo *calendarRepository) ReplacePeriods(periods []calendar.Period) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table = make(map[int]*calendar.Period, len(periods))
	for i := range periods {
		p := periods[i]
		repo.db.table[p.Ordinal] = &p
	}
	return nil
}
