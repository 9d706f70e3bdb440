package timetable

import "errors"

var (
	ErrUnknownDay   = errors.New("unknown weekday")
	ErrUnknownStart = errors.New("start time is not on the timetable grid")
	ErrLunchPeriod  = errors.New("cannot book the lunch period")
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays is the ordered set of teaching days.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Period is one row of the fixed period table. Times are "HH:MM".
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Lunch bool   `json:"lunch"`
}

// Periods is the ordered period table for every teaching day. It is the
// single source of truth for slot coordinates; changing the grid means
// changing this table only.
var Periods = []Period{
	{Start: "08:30", End: "09:30"},
	{Start: "09:30", End: "10:30"},
	{Start: "10:30", End: "11:30"},
	{Start: "11:30", End: "12:30", Lunch: true},
	{Start: "12:30", End: "13:30"},
	{Start: "13:30", End: "14:30"},
	{Start: "14:30", End: "15:30"},
}

// IsWeekday reports whether d is one of the five teaching days.
func IsWeekday(d Weekday) bool {
	for _, wd := range Weekdays {
		if wd == d {
			return true
		}
	}
	return false
}

// PeriodAt returns the period starting exactly at start, lunch included.
func PeriodAt(start string) (Period, bool) {
	for _, p := range Periods {
		if p.Start == start {
			return p, true
		}
	}
	return Period{}, false
}

// Validate checks that (day, start) names a bookable coordinate: a known
// weekday and a non-lunch period start. It returns the matching period so
// callers can derive the end time without a second lookup.
func Validate(day Weekday, start string) (Period, error) {
	if !IsWeekday(day) {
		return Period{}, ErrUnknownDay
	}
	p, ok := PeriodAt(start)
	if !ok {
		return Period{}, ErrUnknownStart
	}
	if p.Lunch {
		return Period{}, ErrLunchPeriod
	}
	return p, nil
}
