package service

import (
	"context"
	"math"
	"testing"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary_EmptyTracker(t *testing.T) {
	svc, _ := newTestTracker(t)

	s, err := svc.GetSummary(context.Background(), contract.NewSummaryRequest())
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(10), s.GeneratedAt)
	assert.Equal(t, 0, s.LogCount)
	assert.False(t, s.AdaptiveActive)
	assert.Equal(t, 2000, s.TDEE)
	assert.Equal(t, contract.SourceDefault, s.TDEESource)
	assert.InDelta(t, 2550.0, s.CalorieTarget, 1e-9)
	assert.Nil(t, s.CurrentWeight)
	assert.Nil(t, s.AverageWeight)
	assert.Nil(t, s.RawTDEE)
	assert.Nil(t, s.LastLogDate)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "only 0 log entries")
}

func TestGetSummary_AdaptiveWithGoal(t *testing.T) {
	svc, _ := newTestTracker(t)
	ctx := context.Background()
	_, err := svc.UpdateProfile(ctx, domain.ProfilePatch{
		StartWeight: domain.Ptr(70.0),
		GoalWeight:  domain.Ptr(75.0),
		WeeklyRate:  domain.Ptr(0.5),
	})
	require.NoError(t, err)
	addAll(t, svc, testutil.GainingLog())

	s, err := svc.GetSummary(ctx, contract.NewSummaryRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, s.LogCount)
	assert.True(t, s.AdaptiveActive)
	assert.Equal(t, 1582, s.TDEE)
	assert.Equal(t, contract.SourceAdaptive, s.TDEESource)
	require.NotNil(t, s.RawTDEE)
	assert.InDelta(t, 510.0, *s.RawTDEE, 1e-6)
	assert.InDelta(t, 1.4, s.TrendKgPerWeek, 1e-9)
	assert.InDelta(t, 2132.0, s.CalorieTarget, 1e-9)

	require.NotNil(t, s.CurrentWeight)
	assert.InDelta(t, 70.4, *s.CurrentWeight, 1e-9)
	require.NotNil(t, s.AverageWeight)
	assert.InDelta(t, 70.2, *s.AverageWeight, 1e-9)

	require.NotNil(t, s.RemainingKg)
	assert.InDelta(t, 4.6, *s.RemainingKg, 1e-9)
	require.NotNil(t, s.GoalProgressPct)
	assert.InDelta(t, 8.0, *s.GoalProgressPct, 1e-6)
	require.NotNil(t, s.WeeksToGoal)
	assert.InDelta(t, 10.0, *s.WeeksToGoal, 1e-9)

	require.NotNil(t, s.LastLogDate)
	assert.Equal(t, "2025-01-03", *s.LastLogDate)
	assert.Empty(t, s.Warnings)
}

func TestGetSummary_CurrentWeightFallsBackToStartWeight(t *testing.T) {
	svc, _ := newTestTracker(t)
	ctx := context.Background()
	_, err := svc.UpdateProfile(ctx, domain.ProfilePatch{StartWeight: domain.Ptr(82.0)})
	require.NoError(t, err)
	addAll(t, svc, []*domain.LogEntry{
		testutil.NewTestLogEntry(testutil.Day(0), testutil.WithWeight(81.0)),
		testutil.NewTestLogEntry(testutil.Day(1), testutil.WithoutWeight()),
	})

	s, err := svc.GetSummary(ctx, contract.NewSummaryRequest())
	require.NoError(t, err)
	assert.InDelta(t, 82.0, *s.CurrentWeight, 1e-9)
	assert.InDelta(t, 81.0, *s.AverageWeight, 1e-9)
	assert.Equal(t, contract.SourceInitial, s.TDEESource)
}

func TestGetSummary_AverageUsesLatestSevenEntries(t *testing.T) {
	svc, _ := newTestTracker(t)
	entries := make([]*domain.LogEntry, 0, 9)
	for i := range 9 {
		entries = append(entries, testutil.NewTestLogEntry(testutil.Day(i), testutil.WithWeight(80+float64(i))))
	}
	addAll(t, svc, entries)

	s, err := svc.GetSummary(context.Background(), contract.NewSummaryRequest())
	require.NoError(t, err)
	// Days 2..8 weigh 82..88.
	assert.InDelta(t, 85.0, *s.AverageWeight, 1e-9)
}

func TestGetSummary_Warnings(t *testing.T) {
	svc, _ := newTestTracker(t)
	ctx := context.Background()
	_, err := svc.UpdateProfile(ctx, domain.ProfilePatch{
		StartWeight: domain.Ptr(90.0),
		GoalWeight:  domain.Ptr(80.0),
		WeeklyRate:  domain.Ptr(1.5),
	})
	require.NoError(t, err)
	addAll(t, svc, []*domain.LogEntry{
		testutil.NewTestLogEntry(testutil.Day(0), testutil.WithWeight(90)),
		{Date: testutil.Day(1), Weight: domain.Ptr(89.8)},
		{Date: testutil.Day(2), Weight: domain.Ptr(89.6)},
	})
	_, err = svc.DeleteLog(ctx, testutil.Day(0))
	require.NoError(t, err)
	_, err = svc.AddLog(ctx, &domain.LogEntry{Date: testutil.Day(3), Weight: domain.Ptr(89.4)})
	require.NoError(t, err)

	s, err := svc.GetSummary(ctx, contract.NewSummaryRequest())
	require.NoError(t, err)
	require.Len(t, s.Warnings, 3)
	assert.Contains(t, s.Warnings[0], "no calorie data")
	assert.Contains(t, s.Warnings[1], "aggressive")
	assert.Contains(t, s.Warnings[2], "away from the goal")
	assert.Nil(t, s.WeeksToGoal)
}

func TestTarget_UsesGivenOrProfileRate(t *testing.T) {
	svc, _ := newTestTracker(t)
	ctx := context.Background()

	tgt, err := svc.Target(ctx, domain.Ptr(-0.5))
	require.NoError(t, err)
	assert.Equal(t, 2000, tgt.TDEE)
	assert.InDelta(t, -550.0, tgt.DailyDelta, 1e-9)
	assert.InDelta(t, 1450.0, tgt.CalorieTarget, 1e-9)

	tgt, err = svc.Target(ctx, nil)
	require.NoError(t, err)
	assert.InDelta(t, domain.DefaultWeeklyRate, tgt.WeeklyRate, 1e-9)
	assert.InDelta(t, 2550.0, tgt.CalorieTarget, 1e-9)
}

func TestTarget_RejectsNonFiniteRate(t *testing.T) {
	svc, _ := newTestTracker(t)

	for _, rate := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Target(context.Background(), domain.Ptr(rate))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}
