package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/estimator"
)

func (s *trackerService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

// UpdateProfile applies patch. A zero weight or height clears the field.
// While the log is too short for the adaptive estimator, setting or changing
// the start weight resets the stored TDEE to the cold-start estimate.
func (s *trackerService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (profile *domain.UserProfile, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer s.observe(ctx, "update-profile", startedAt, fields, &err)

	if patch.IsEmpty() {
		return nil, newValidationError(fmt.Errorf("nothing to update"))
	}
	if errs := validatePatch(patch); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		p, err := txProfiles.Get(ctx)
		if err != nil {
			return err
		}

		startChanged := false
		if patch.StartWeight != nil {
			next := domain.PositiveFloatPtr(patch.StartWeight)
			startChanged = !sameFloatPtr(p.StartWeight, next)
			p.StartWeight = next
		}
		if patch.GoalWeight != nil {
			p.GoalWeight = domain.PositiveFloatPtr(patch.GoalWeight)
		}
		if patch.HeightCm != nil {
			p.HeightCm = domain.PositiveFloatPtr(patch.HeightCm)
		}
		if patch.WeeklyRate != nil {
			p.WeeklyRate = *patch.WeeklyRate
		}

		if startChanged && p.StartWeight != nil {
			count, err := txLogs.Count(ctx)
			if err != nil {
				return err
			}
			if count < estimator.MinHistory {
				tdee := estimator.EstimateInitialTDEE(*p.StartWeight)
				p.CalculatedTDEE = &tdee
				fields["tdee_reset"] = tdee
			}
		}

		if err := txProfiles.Upsert(ctx, p); err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Reset deletes the whole log and restores the default profile.
func (s *trackerService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer s.observe(ctx, "reset", startedAt, nil, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		if err := txLogs.DeleteAll(ctx); err != nil {
			return err
		}
		return txProfiles.Upsert(ctx, domain.DefaultUserProfile())
	})
}

func validatePatch(patch domain.ProfilePatch) []error {
	var errs []error
	check := func(field string, v *float64) {
		switch {
		case v == nil:
		case !domain.IsFinite(*v):
			errs = append(errs, fmt.Errorf("%s must be a finite number, got %g", field, *v))
		case *v < 0:
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", field, *v))
		}
	}
	check("start weight", patch.StartWeight)
	check("goal weight", patch.GoalWeight)
	check("height", patch.HeightCm)
	if patch.WeeklyRate != nil && !domain.IsFinite(*patch.WeeklyRate) {
		errs = append(errs, fmt.Errorf("weekly rate must be a finite number, got %g", *patch.WeeklyRate))
	}
	return errs
}
