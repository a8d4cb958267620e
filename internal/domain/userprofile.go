package domain

import "time"

const (
	// DefaultProfileID is the id of the single profile row.
	DefaultProfileID = "default"
	// DefaultWeeklyRate is the weekly rate a fresh or reset profile starts with.
	DefaultWeeklyRate = 0.5
)

// UserProfile holds the user's goals and the persisted TDEE estimate that
// the adaptive estimator smooths against on every log mutation.
type UserProfile struct {
	ID             string
	StartWeight    *float64
	GoalWeight     *float64
	HeightCm       *float64
	WeeklyRate     float64 // kg/week, negative for loss
	CalculatedTDEE *int
	UpdatedAt      time.Time
}

// DefaultUserProfile returns the profile a fresh database is seeded with.
func DefaultUserProfile() *UserProfile {
	return &UserProfile{
		ID:         DefaultProfileID,
		WeeklyRate: DefaultWeeklyRate,
	}
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	StartWeight *float64
	GoalWeight  *float64
	HeightCm    *float64
	WeeklyRate  *float64
}

// IsEmpty reports whether the patch would change nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.StartWeight == nil && p.GoalWeight == nil && p.HeightCm == nil && p.WeeklyRate == nil
}
