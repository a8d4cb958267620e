package contract

import "time"

// TDEESource says where the reported estimate came from.
type TDEESource string

const (
	// SourceAdaptive is the smoothed estimate computed from the log.
	SourceAdaptive TDEESource = "adaptive"
	// SourceInitial is the cold-start estimate from the start weight.
	SourceInitial TDEESource = "initial"
	// SourceDefault is the fixed fallback used with no data at all.
	SourceDefault TDEESource = "default"
)

// AggressiveWeeklyRate is the magnitude (kg/week) above which the summary
// warns about the configured rate.
const AggressiveWeeklyRate = 1.0

type SummaryRequest struct {
	Now *time.Time
}

func NewSummaryRequest() SummaryRequest {
	return SummaryRequest{}
}

// SummaryResponse is the dashboard view of the tracker state.
type SummaryResponse struct {
	GeneratedAt    time.Time  `json:"generated_at"`
	LogCount       int        `json:"log_count"`
	AdaptiveActive bool       `json:"adaptive_active"`
	TDEE           int        `json:"tdee"`
	TDEESource     TDEESource `json:"tdee_source"`
	// RawTDEE is the unsmoothed energy-balance estimate over the recent window.
	RawTDEE        *float64 `json:"raw_tdee,omitempty"`
	TrendKgPerWeek float64  `json:"trend_kg_per_week"`
	WeeklyRate     float64  `json:"weekly_rate"`
	CalorieTarget  float64  `json:"calorie_target"`

	StartWeight   *float64 `json:"start_weight,omitempty"`
	GoalWeight    *float64 `json:"goal_weight,omitempty"`
	CurrentWeight *float64 `json:"current_weight,omitempty"`
	AverageWeight *float64 `json:"average_weight,omitempty"`

	RemainingKg     *float64 `json:"remaining_kg,omitempty"`
	GoalProgressPct *float64 `json:"goal_progress_pct,omitempty"`
	WeeksToGoal     *float64 `json:"weeks_to_goal,omitempty"`

	LastLogDate *string  `json:"last_log_date,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// TargetResponse is the calorie target for one weekly rate.
type TargetResponse struct {
	TDEE          int     `json:"tdee"`
	WeeklyRate    float64 `json:"weekly_rate"`
	DailyDelta    float64 `json:"daily_delta"`
	CalorieTarget float64 `json:"calorie_target"`
}
