package calendar

import (
	"sort"
	"strings"
	"time"
)

// Weekday is a school-week day, named in Spanish as stored by the app
// since its first release.
type Weekday string

// Sunday-first ordering, matching time.Weekday.
const (
	Sunday    Weekday = "domingo"
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miércoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
	Saturday  Weekday = "sábado"
)

var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the Weekday of t.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[int(t.Weekday())]
}

// order returns the Sunday-first index of d, or -1 if d is not a known day.
func (d Weekday) order() int {
	for i, wd := range weekdays {
		if wd == d {
			return i
		}
	}
	return -1
}

func (d Weekday) String() string { return string(d) }

// DaySet is an explicit set of weekdays a subject meets on.
type DaySet map[Weekday]struct{}

func NewDaySet(days ...Weekday) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func (set DaySet) Has(d Weekday) bool {
	_, ok := set[d]
	return ok
}

// Days returns the set's members in Sunday-first order.
func (set DaySet) Days() []Weekday {
	days := make([]Weekday, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].order() < days[j].order() })
	return days
}

func (set DaySet) String() string {
	names := make([]string, 0, len(set))
	for _, d := range set.Days() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

// accented characters found in weekday names; schedules are routinely
// typed without them ("miercoles", "sabado")
var deaccenter = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

func normalize(s string) string {
	return deaccenter.Replace(strings.ToLower(s))
}

// ParseSchedule extracts the weekday set from a free-text schedule
// description ("Lunes y Miércoles", "martes, jueves 7:00"). Matching is
// case- and accent-insensitive so legacy stored strings keep resolving.
// Text naming no known weekday parses as the empty set.
func ParseSchedule(text string) DaySet {
	set := make(DaySet)
	norm := normalize(text)
	for _, d := range weekdays {
		if strings.Contains(norm, normalize(string(d))) {
			set[d] = struct{}{}
		}
	}
	return set
}
