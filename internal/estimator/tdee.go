// Package estimator turns a daily weight/calorie log into an adaptive TDEE
// estimate and derives calorie targets from it. Every function here is pure.
package estimator

import (
	"math"
	"slices"

	"github.com/alexanderramin/tdee/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// CaloriesPerKg is the energy equivalent of one kg of body-mass change.
	CaloriesPerKg = 7700.0

	// DefaultTDEE is used when no better estimate exists.
	DefaultTDEE = 2000

	// MinHistory is the log length below which the adaptive estimate is not trusted.
	MinHistory = 3

	// WindowSize bounds how many of the most recent entries feed the regression.
	WindowSize = 14

	// SmoothingFactor is the weight given to a fresh estimate against the previous one.
	SmoothingFactor = 0.3

	initialSlope     = 27.78
	initialIntercept = 97.0
)

const hoursPerDay = 24.0

// ComputeWeightSlope returns the least-squares weight trend in kg/day.
// Time is measured in elapsed days from the first weighted entry, so uneven
// gaps between samples are accounted for. Returns 0 with fewer than two
// weighted entries or when every sample falls on the same instant.
func ComputeWeightSlope(entries []domain.LogEntry) float64 {
	var xs, ys []float64
	var origin domain.LogEntry
	for _, e := range entries {
		if !e.HasWeight() {
			continue
		}
		if len(xs) == 0 {
			origin = e
		}
		xs = append(xs, e.Date.Sub(origin.Date).Hours()/hoursPerDay)
		ys = append(ys, *e.Weight)
	}
	if len(xs) < 2 {
		return 0
	}

	n := float64(len(xs))
	sumX := floats.Sum(xs)
	sumY := floats.Sum(ys)
	sumXY := floats.Dot(xs, ys)
	sumXX := floats.Dot(xs, xs)

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

// ComputeAvgCalories returns the mean recorded intake, or 0 when no entry
// carries a calorie value.
func ComputeAvgCalories(entries []domain.LogEntry) float64 {
	var cals []float64
	for _, e := range entries {
		if e.HasCalories() {
			cals = append(cals, *e.Calories)
		}
	}
	if len(cals) == 0 {
		return 0
	}
	return stat.Mean(cals, nil)
}

// RecentWindow returns a date-sorted copy of the trailing WindowSize entries.
// The input slice is not modified.
func RecentWindow(logs []domain.LogEntry) []domain.LogEntry {
	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b domain.LogEntry) int {
		return a.Date.Compare(b.Date)
	})
	if len(sorted) > WindowSize {
		sorted = sorted[len(sorted)-WindowSize:]
	}
	return sorted
}

// RawTDEE applies the energy-balance identity to a window: intake minus the
// calorie equivalent of the weight trend. ok is false without calorie data
// or when the inputs do not produce a finite value.
func RawTDEE(window []domain.LogEntry) (raw float64, ok bool) {
	avg := ComputeAvgCalories(window)
	if avg == 0 {
		return 0, false
	}
	raw = avg - ComputeWeightSlope(window)*CaloriesPerKg
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	return raw, true
}

// roundHalfUp rounds .5 toward positive infinity. math.Round would send
// -0.5 to -1; an estimate rounds -0.5 to 0.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CalculateAdaptiveTDEE recomputes the TDEE from the log and blends it into
// previous with a fixed 0.3 exponential smoothing step.
// Returns previous unchanged when the history is too short or carries no
// calorie data.
func CalculateAdaptiveTDEE(logs []domain.LogEntry, previous int) int {
	if len(logs) < MinHistory {
		return previous
	}

	window := RecentWindow(logs)
	if len(window) < 2 {
		return previous
	}

	raw, ok := RawTDEE(window)
	if !ok {
		return previous
	}

	prev := float64(previous)
	smoothed := prev + (raw-prev)*SmoothingFactor
	return roundHalfUp(smoothed)
}

// ComputeCalorieTarget returns the daily intake that produces weeklyRate kg
// of change per week at the given TDEE. The rate is not bounds-checked.
func ComputeCalorieTarget(tdee float64, weeklyRate float64) float64 {
	return tdee + (weeklyRate*CaloriesPerKg)/7
}

// EstimateInitialTDEE is a cold-start approximation from body weight alone,
// used until enough log history exists. Non-positive or non-finite weights
// yield DefaultTDEE.
func EstimateInitialTDEE(weightKg float64) int {
	if !(weightKg > 0) || math.IsInf(weightKg, 0) {
		return DefaultTDEE
	}
	return roundHalfUp(initialSlope*weightKg + initialIntercept)
}

// EstimateInitialTDEEPtr is EstimateInitialTDEE for an optional weight.
func EstimateInitialTDEEPtr(weightKg *float64) int {
	if weightKg == nil {
		return DefaultTDEE
	}
	return EstimateInitialTDEE(*weightKg)
}
