package calendar

import (
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Weekday
	}{
		{name: "sunday", date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), want: Sunday},
		{name: "monday", date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), want: Monday},
		{name: "wednesday", date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), want: Wednesday},
		{name: "saturday", date: time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC), want: Saturday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayOf(tt.date); got != tt.want {
				t.Errorf("WeekdayOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Weekday
	}{
		{name: "empty", text: "", want: nil},
		{name: "no known day", text: "7:00 - 8:00", want: nil},
		{name: "single day", text: "Lunes", want: []Weekday{Monday}},
		{name: "two days with filler", text: "Lunes y Miércoles", want: []Weekday{Monday, Wednesday}},
		{name: "accents dropped", text: "miercoles, sabado", want: []Weekday{Wednesday, Saturday}},
		{name: "upper case", text: "MARTES Y JUEVES", want: []Weekday{Tuesday, Thursday}},
		{name: "trailing time", text: "viernes 10:30", want: []Weekday{Friday}},
		{name: "all days", text: "domingo lunes martes miércoles jueves viernes sábado", want: []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseSchedule(tt.text)
			if len(set) != len(tt.want) {
				t.Fatalf("ParseSchedule() = %v, want %v", set.Days(), tt.want)
			}
			for _, d := range tt.want {
				if !set.Has(d) {
					t.Errorf("ParseSchedule() missing %v", d)
				}
			}
		})
	}
}

func TestDaySetString(t *testing.T) {
	set := NewDaySet(Friday, Monday, Wednesday)
	if got, want := set.String(), "lunes, miércoles, viernes"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
