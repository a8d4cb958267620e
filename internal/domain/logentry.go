package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for log dates everywhere.
const DateLayout = "2006-01-02"

// LogEntry is one day of tracking data. Weight is in kg and Calories in kcal;
// a nil pointer means the value was not recorded that day.
type LogEntry struct {
	ID        string
	Date      time.Time
	Weight    *float64
	Calories  *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasWeight reports whether the entry carries a usable weight sample.
func (e LogEntry) HasWeight() bool {
	return e.Weight != nil && *e.Weight > 0
}

// HasCalories reports whether the entry carries a usable intake value.
// Zero is never a real observation, so it counts as absent.
func (e LogEntry) HasCalories() bool {
	return e.Calories != nil && *e.Calories > 0
}

// DateKey returns the entry date formatted as YYYY-MM-DD.
func (e LogEntry) DateKey() string {
	return e.Date.Format(DateLayout)
}

// Normalize truncates Date to midnight UTC and drops zero values, which
// encode "not recorded" rather than a measurement.
func (e *LogEntry) Normalize() {
	e.Date = TruncateDay(e.Date)
	if e.Weight != nil && *e.Weight == 0 {
		e.Weight = nil
	}
	if e.Calories != nil && *e.Calories == 0 {
		e.Calories = nil
	}
}

// Validate checks the invariants a stored entry must satisfy.
// Call Normalize first.
func (e *LogEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.Weight != nil && (!IsFinite(*e.Weight) || *e.Weight <= 0) {
		return fmt.Errorf("weight must be positive, got %g", *e.Weight)
	}
	if e.Calories != nil && (!IsFinite(*e.Calories) || *e.Calories < 0) {
		return fmt.Errorf("calories must not be negative, got %g", *e.Calories)
	}
	if e.Weight == nil && e.Calories == nil {
		return fmt.Errorf("entry for %s needs a weight or a calorie value", e.DateKey())
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
// The words "today" and "yesterday" are accepted relative to now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return TruncateDay(now), nil
	case "yesterday":
		return TruncateDay(now).AddDate(0, 0, -1), nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// TruncateDay returns the calendar day of t as midnight UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
