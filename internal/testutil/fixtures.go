package testutil

import (
	"time"

	"github.com/alexanderramin/tdee/internal/domain"
)

// BaseDate is the first day used by fixtures built with Day.
var BaseDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Day returns BaseDate shifted by offset days.
func Day(offset int) time.Time {
	return BaseDate.AddDate(0, 0, offset)
}

// LogEntry options
type LogEntryOption func(*domain.LogEntry)

func WithWeight(kg float64) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Weight = &kg
	}
}

func WithCalories(kcal float64) LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Calories = &kcal
	}
}

func WithoutWeight() LogEntryOption {
	return func(e *domain.LogEntry) {
		e.Weight = nil
	}
}

// NewTestLogEntry returns an entry for date with a default weight of 80 kg
// and 2200 kcal unless options override them.
func NewTestLogEntry(date time.Time, opts ...LogEntryOption) *domain.LogEntry {
	e := &domain.LogEntry{
		Date:     domain.TruncateDay(date),
		Weight:   domain.Ptr(80.0),
		Calories: domain.Ptr(2200.0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profile options
type ProfileOption func(*domain.UserProfile)

func WithStartWeight(kg float64) ProfileOption {
	return func(p *domain.UserProfile) {
		p.StartWeight = &kg
	}
}

func WithGoalWeight(kg float64) ProfileOption {
	return func(p *domain.UserProfile) {
		p.GoalWeight = &kg
	}
}

func WithWeeklyRate(rate float64) ProfileOption {
	return func(p *domain.UserProfile) {
		p.WeeklyRate = rate
	}
}

func WithCalculatedTDEE(tdee int) ProfileOption {
	return func(p *domain.UserProfile) {
		p.CalculatedTDEE = &tdee
	}
}

func NewTestProfile(opts ...ProfileOption) *domain.UserProfile {
	p := domain.DefaultUserProfile()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GainingLog returns the three-day history used across tests: 70.0, 70.2 and
// 70.4 kg at 2000, 2100 and 2050 kcal. Against a previous estimate of 2000
// the adaptive TDEE is 1553.
func GainingLog() []*domain.LogEntry {
	return []*domain.LogEntry{
		NewTestLogEntry(Day(0), WithWeight(70.0), WithCalories(2000)),
		NewTestLogEntry(Day(1), WithWeight(70.2), WithCalories(2100)),
		NewTestLogEntry(Day(2), WithWeight(70.4), WithCalories(2050)),
	}
}
