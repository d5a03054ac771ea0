package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func yearPeriods() []Period {
	return []Period{
		{Ordinal: 1, Start: date(2025, 1, 20), End: date(2025, 3, 28)},
		{Ordinal: 2, Start: date(2025, 3, 31), End: date(2025, 6, 13)},
		{Ordinal: 3, Start: date(2025, 7, 7), End: date(2025, 9, 12)},
		{Ordinal: 4, Start: date(2025, 9, 15), End: date(2025, 11, 28)},
	}
}

func TestClassify(t *testing.T) {
	periods := yearPeriods()

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "first day of P1", date: date(2025, 1, 20), want: 1},
		{name: "last day of P1", date: date(2025, 3, 28), want: 1},
		{name: "mid P2", date: date(2025, 5, 1), want: 2},
		{name: "before all periods", date: date(2025, 1, 1), want: 1},
		{name: "winter break gap", date: date(2025, 6, 20), want: 3},
		{name: "weekend gap between P1 and P2", date: date(2025, 3, 29), want: 2},
		{name: "after last period", date: date(2025, 12, 15), want: 4},
		{name: "time of day ignored", date: time.Date(2025, 3, 28, 23, 59, 0, 0, time.UTC), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(periods, tt.date); got != tt.want {
				t.Errorf("Classify() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("no periods", func(t *testing.T) {
		if got := Classify(nil, date(2025, 5, 1)); got != 1 {
			t.Errorf("Classify() = %d, want 1", got)
		}
	})
}

func TestPeriodContains(t *testing.T) {
	p := Period{Ordinal: 1, Start: date(2025, 1, 20), End: date(2025, 3, 28)}

	if !p.Contains(date(2025, 1, 20)) {
		t.Error("Contains() start date should be in range")
	}
	if !p.Contains(date(2025, 3, 28)) {
		t.Error("Contains() end date should be in range")
	}
	if p.Contains(date(2025, 3, 29)) {
		t.Error("Contains() day after end should be out of range")
	}
	if p.Contains(date(2025, 1, 19)) {
		t.Error("Contains() day before start should be out of range")
	}
}

func TestFilterDates(t *testing.T) {
	p := Period{Ordinal: 1, Start: date(2025, 1, 20), End: date(2025, 3, 28)}

	dates := []time.Time{
		date(2025, 1, 19), // before
		date(2025, 1, 20), // first day
		date(2025, 2, 14),
		date(2025, 3, 28), // last day
		date(2025, 3, 29), // after
	}
	kept := FilterDates(p, dates)
	if len(kept) != 3 {
		t.Fatalf("FilterDates() kept %d dates, want 3", len(kept))
	}
	if !kept[0].Equal(date(2025, 1, 20)) || !kept[2].Equal(date(2025, 3, 28)) {
		t.Errorf("FilterDates() = %v, want the in-range dates in order", kept)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "ok", raw: "2025-02-03", want: date(2025, 2, 3)},
		{name: "padded", raw: "  2025-02-03  ", want: date(2025, 2, 3)},
		{name: "wrong layout", raw: "03/02/2025", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakePeriodRepo struct {
	periods []Period
}

func (r *fakePeriodRepo) QueryAllPeriods() ([]Period, error) { return r.periods, nil }
func (r *fakePeriodRepo) ReplacePeriods(periods []Period) error {
	r.periods = periods
	return nil
}

func TestServiceReplace(t *testing.T) {
	overlapping := yearPeriods()
	overlapping[1].Start = date(2025, 3, 28) // same day P1 ends

	backwards := yearPeriods()
	backwards[2].End = date(2025, 7, 1) // before its start

	duplicated := yearPeriods()
	duplicated[3].Ordinal = 2

	tests := []struct {
		name    string
		periods []Period
		wantErr bool
	}{
		{name: "ok", periods: yearPeriods()},
		{name: "unsorted input ok", periods: []Period{yearPeriods()[3], yearPeriods()[0], yearPeriods()[2], yearPeriods()[1]}},
		{name: "too few", periods: yearPeriods()[:3], wantErr: true},
		{name: "duplicate ordinal", periods: duplicated, wantErr: true},
		{name: "overlap", periods: overlapping, wantErr: true},
		{name: "end before start", periods: backwards, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakePeriodRepo{})
			got, err := svc.Replace(tt.periods)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Replace() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != PeriodCount {
				t.Fatalf("Replace() returned %d periods, want %d", len(got), PeriodCount)
			}
			for i, p := range got {
				if p.Ordinal != i+1 {
					t.Errorf("Replace() period %d has ordinal %d", i, p.Ordinal)
				}
			}
		})
	}
}

func TestServiceGetByOrdinal(t *testing.T) {
	svc := NewService(&fakePeriodRepo{periods: yearPeriods()})

	p, err := svc.GetByOrdinal(2)
	if err != nil {
		t.Fatalf("GetByOrdinal() failed, %v", err)
	}
	if !p.Start.Equal(date(2025, 3, 31)) {
		t.Errorf("GetByOrdinal() start = %v, want %v", p.Start, date(2025, 3, 31))
	}

	if _, err = svc.GetByOrdinal(5); err != ErrPeriodNotFound {
		t.Errorf("GetByOrdinal() error = %v, want %v", err, ErrPeriodNotFound)
	}
}
