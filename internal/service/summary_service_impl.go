package service

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/estimator"
)

// averageWindow is how many of the latest entries feed the average weight.
const averageWindow = 7

func (s *trackerService) GetSummary(ctx context.Context, req contract.SummaryRequest) (*contract.SummaryResponse, error) {
	now := s.now()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	history, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	resp := &contract.SummaryResponse{
		GeneratedAt:    now,
		LogCount:       len(history),
		AdaptiveActive: len(history) >= estimator.MinHistory,
		WeeklyRate:     profile.WeeklyRate,
		StartWeight:    profile.StartWeight,
		GoalWeight:     profile.GoalWeight,
	}
	resp.TDEE, resp.TDEESource = currentEstimate(profile, resp.AdaptiveActive)
	resp.CalorieTarget = estimator.ComputeCalorieTarget(float64(resp.TDEE), profile.WeeklyRate)

	window := estimator.RecentWindow(history)
	resp.TrendKgPerWeek = estimator.ComputeWeightSlope(window) * 7
	if len(window) >= 2 {
		if raw, ok := estimator.RawTDEE(window); ok {
			resp.RawTDEE = &raw
		}
	}

	resp.CurrentWeight = currentWeight(history, profile)
	resp.AverageWeight = averageWeight(history, profile)
	if len(history) > 0 {
		last := history[len(history)-1].DateKey()
		resp.LastLogDate = &last
	}
	applyGoalProgress(resp)
	resp.Warnings = summaryWarnings(resp, window)
	return resp, nil
}

func (s *trackerService) Target(ctx context.Context, rate *float64) (*contract.TargetResponse, error) {
	if rate != nil && !domain.IsFinite(*rate) {
		return nil, newValidationError(fmt.Errorf("weekly rate must be a finite number, got %g", *rate))
	}
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	tdee, _ := currentEstimate(profile, false)
	r := domain.Float64FromPtrWithDefault(profile.WeeklyRate, rate)
	return &contract.TargetResponse{
		TDEE:          tdee,
		WeeklyRate:    r,
		DailyDelta:    r * estimator.CaloriesPerKg / 7,
		CalorieTarget: estimator.ComputeCalorieTarget(float64(tdee), r),
	}, nil
}

// currentEstimate returns the TDEE to display and where it came from.
func currentEstimate(p *domain.UserProfile, adaptive bool) (int, contract.TDEESource) {
	switch {
	case p.CalculatedTDEE != nil && adaptive:
		return *p.CalculatedTDEE, contract.SourceAdaptive
	case p.CalculatedTDEE != nil:
		return *p.CalculatedTDEE, contract.SourceInitial
	case p.StartWeight != nil:
		return estimator.EstimateInitialTDEE(*p.StartWeight), contract.SourceInitial
	default:
		return estimator.DefaultTDEE, contract.SourceDefault
	}
}

// currentWeight is the latest entry's weight. A latest entry without one
// falls back to the start weight.
func currentWeight(history []domain.LogEntry, p *domain.UserProfile) *float64 {
	if len(history) == 0 {
		return p.StartWeight
	}
	if last := history[len(history)-1]; last.HasWeight() {
		return last.Weight
	}
	return p.StartWeight
}

// averageWeight is the mean weight over the latest averageWindow entries,
// counting only entries that carry one.
func averageWeight(history []domain.LogEntry, p *domain.UserProfile) *float64 {
	recent := history[max(0, len(history)-averageWindow):]
	weights := make([]float64, 0, len(recent))
	for _, e := range recent {
		if e.HasWeight() {
			weights = append(weights, *e.Weight)
		}
	}
	if len(weights) == 0 {
		return p.StartWeight
	}
	avg := stat.Mean(weights, nil)
	return &avg
}

func applyGoalProgress(resp *contract.SummaryResponse) {
	if resp.GoalWeight == nil || resp.CurrentWeight == nil {
		return
	}
	remaining := round1(*resp.GoalWeight - *resp.CurrentWeight)
	resp.RemainingKg = &remaining

	if resp.StartWeight != nil && *resp.StartWeight != *resp.GoalWeight {
		pct := (*resp.StartWeight - *resp.CurrentWeight) / (*resp.StartWeight - *resp.GoalWeight) * 100
		pct = math.Max(0, math.Min(100, pct))
		resp.GoalProgressPct = &pct
	}

	// Only a rate that moves toward the goal gives a projection.
	if remaining != 0 && resp.WeeklyRate != 0 && math.Signbit(remaining) == math.Signbit(resp.WeeklyRate) {
		weeks := math.Ceil(remaining / resp.WeeklyRate)
		resp.WeeksToGoal = &weeks
	}
}

func summaryWarnings(resp *contract.SummaryResponse, window []domain.LogEntry) []string {
	var warnings []string
	if !resp.AdaptiveActive {
		warnings = append(warnings, fmt.Sprintf("only %d log entries: the adaptive estimate needs at least %d", resp.LogCount, estimator.MinHistory))
	} else if estimator.ComputeAvgCalories(window) == 0 {
		warnings = append(warnings, "no calorie data in the recent window: the estimate is not adapting")
	}
	if math.Abs(resp.WeeklyRate) > contract.AggressiveWeeklyRate {
		warnings = append(warnings, fmt.Sprintf("weekly rate of %+.2f kg is aggressive", resp.WeeklyRate))
	}
	if resp.RemainingKg != nil && *resp.RemainingKg != 0 && resp.WeeklyRate != 0 &&
		math.Signbit(*resp.RemainingKg) != math.Signbit(resp.WeeklyRate) {
		warnings = append(warnings, "weekly rate moves away from the goal weight")
	}
	return warnings
}
