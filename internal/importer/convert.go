package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/tdee/internal/domain"
)

// Converted holds the domain values produced from a state document.
type Converted struct {
	Profile *domain.UserProfile
	Entries []*domain.LogEntry
}

// Convert transforms a validated document into domain values. Entries with
// neither a weight nor a calorie value are dropped. Call Validate first.
func Convert(doc *StateDocument) (*Converted, error) {
	profile := domain.DefaultUserProfile()
	profile.StartWeight = domain.PositiveFloatPtr(doc.StartWeight)
	profile.GoalWeight = domain.PositiveFloatPtr(doc.GoalWeight)
	profile.HeightCm = domain.PositiveFloatPtr(doc.Height)
	if doc.WeeklyRate != nil {
		profile.WeeklyRate = *doc.WeeklyRate
	}
	if doc.CalculatedTDEE != nil && *doc.CalculatedTDEE > 0 {
		tdee := int(math.Round(*doc.CalculatedTDEE))
		profile.CalculatedTDEE = &tdee
	}

	entries := make([]*domain.LogEntry, 0, len(doc.Logs))
	for i, l := range doc.Logs {
		date, err := time.Parse(domain.DateLayout, l.Date)
		if err != nil {
			return nil, fmt.Errorf("logs[%d]: parsing date: %w", i, err)
		}
		e := &domain.LogEntry{Date: date, Weight: l.Weight, Calories: l.Calories}
		e.Normalize()
		if e.Weight == nil && e.Calories == nil {
			continue
		}
		entries = append(entries, e)
	}

	return &Converted{Profile: profile, Entries: entries}, nil
}

// FromDomain builds a state document for export.
func FromDomain(p *domain.UserProfile, entries []domain.LogEntry) *StateDocument {
	rate := p.WeeklyRate
	doc := &StateDocument{
		StartWeight: p.StartWeight,
		GoalWeight:  p.GoalWeight,
		Height:      p.HeightCm,
		WeeklyRate:  &rate,
		Logs:        make([]LogEntry, 0, len(entries)),
	}
	if p.CalculatedTDEE != nil {
		tdee := float64(*p.CalculatedTDEE)
		doc.CalculatedTDEE = &tdee
	}
	for _, e := range entries {
		doc.Logs = append(doc.Logs, LogEntry{
			Date:     e.DateKey(),
			Weight:   e.Weight,
			Calories: e.Calories,
		})
	}
	return doc
}
