package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/estimator"
	"github.com/alexanderramin/tdee/internal/repository"
)

// previousEstimate is the value the adaptive estimator smooths against:
// the stored TDEE, else the cold-start estimate from the start weight.
func previousEstimate(p *domain.UserProfile) int {
	if p.CalculatedTDEE != nil {
		return *p.CalculatedTDEE
	}
	return estimator.EstimateInitialTDEEPtr(p.StartWeight)
}

// recompute runs the estimator over the full history and stores the result.
// Both repositories must share the caller's transaction.
func recompute(ctx context.Context, logs repository.LogEntryRepo, profiles repository.UserProfileRepo) (int, error) {
	profile, err := profiles.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading profile: %w", err)
	}
	history, err := logs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading history: %w", err)
	}

	tdee := estimator.CalculateAdaptiveTDEE(history, previousEstimate(profile))
	profile.CalculatedTDEE = &tdee
	if err := profiles.Upsert(ctx, profile); err != nil {
		return 0, fmt.Errorf("saving estimate: %w", err)
	}
	return tdee, nil
}

func sameFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
