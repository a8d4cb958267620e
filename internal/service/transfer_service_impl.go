package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/estimator"
	"github.com/alexanderramin/tdee/internal/importer"
)

func (s *trackerService) ExportState(ctx context.Context) (*importer.StateDocument, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	entries, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return importer.FromDomain(profile, entries), nil
}

func (s *trackerService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	doc, err := importer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportState(ctx, doc)
}

// ImportState replaces all stored data with doc. A document without a stored
// estimate starts from the cold-start value and is estimated once.
func (s *trackerService) ImportState(ctx context.Context, doc *importer.StateDocument) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"log_count": len(doc.Logs)}
	defer s.observe(ctx, "import-state", startedAt, fields, &err)

	if errs := importer.Validate(doc); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}
	converted, err := importer.Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("converting state document: %w", err)
	}

	profile := converted.Profile
	estimate := profile.CalculatedTDEE == nil
	if estimate {
		tdee := estimator.EstimateInitialTDEEPtr(profile.StartWeight)
		profile.CalculatedTDEE = &tdee
	}

	result = &ImportResult{
		EntryCount:   len(converted.Entries),
		SkippedCount: len(doc.Logs) - len(converted.Entries),
		TDEE:         *profile.CalculatedTDEE,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		if err := txLogs.DeleteAll(ctx); err != nil {
			return err
		}
		for _, e := range converted.Entries {
			if err := txLogs.Upsert(ctx, e); err != nil {
				return fmt.Errorf("storing entry %s: %w", e.DateKey(), err)
			}
		}
		if err := txProfiles.Upsert(ctx, profile); err != nil {
			return err
		}
		if !estimate {
			return nil
		}
		tdee, err := recompute(ctx, txLogs, txProfiles)
		result.TDEE = tdee
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["tdee"] = result.TDEE
	return result, nil
}
