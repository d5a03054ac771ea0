package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/calendar"
)

type calendarRepository struct {
	db *sqlx.DB
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

func NewCalendarRepository(db *sqlx.DB) calendar.Repository {
	return &calendarRepository{db: db}
}

func (repo *calendarRepository) QueryAllPeriods() ([]calendar.Period, error) {
	periods := make([]calendar.Period, 0, calendar.PeriodCount)
	if err := repo.db.Select(&periods, `SELECT * FROM academic_period ORDER BY ordinal`); err != nil {
		return nil, errors.Wrap(err, "selecting periods")
	}
	return periods, nil
}

func (repo *calendarRepository) ReplacePeriods(periods []calendar.Period) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM academic_period`); err != nil {
		return errors.Wrap(err, "clearing periods")
	}
	for _, p := range periods {
		_, err = tx.NamedExec(
			`INSERT INTO academic_period (ordinal, start_date, end_date)
			 VALUES (:ordinal, :start_date, :end_date)`, p)
		if err != nil {
			return errors.Wrapf(err, "inserting period %d", p.Ordinal)
		}
	}
	return errors.Wrap(tx.Commit(), "committing periods")
}
