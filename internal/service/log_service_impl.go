package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/domain"
)

func (s *trackerService) AddLog(ctx context.Context, e *domain.LogEntry) (tdee int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer s.observe(ctx, "add-log", startedAt, fields, &err)

	e.Normalize()
	fields["date"] = e.DateKey()
	if verr := e.Validate(); verr != nil {
		return 0, newValidationError(verr)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		if err := txLogs.Upsert(ctx, e); err != nil {
			return err
		}
		var rerr error
		tdee, rerr = recompute(ctx, txLogs, txProfiles)
		return rerr
	})
	if err != nil {
		return 0, err
	}
	fields["tdee"] = tdee
	return tdee, nil
}

func (s *trackerService) DeleteLog(ctx context.Context, date time.Time) (tdee int, err error) {
	startedAt := time.Now().UTC()
	date = domain.TruncateDay(date)
	fields := map[string]any{"date": date.Format(domain.DateLayout)}
	defer s.observe(ctx, "delete-log", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		if err := txLogs.Delete(ctx, date); err != nil {
			return err
		}
		var rerr error
		tdee, rerr = recompute(ctx, txLogs, txProfiles)
		return rerr
	})
	if err != nil {
		return 0, err
	}
	fields["tdee"] = tdee
	return tdee, nil
}

func (s *trackerService) ListLogs(ctx context.Context, days int) ([]domain.LogEntry, error) {
	if days < 0 {
		return nil, newValidationError(fmt.Errorf("days must not be negative, got %d", days))
	}

	var entries []domain.LogEntry
	var err error
	if days == 0 {
		entries, err = s.logs.List(ctx)
	} else {
		today := domain.TruncateDay(s.now())
		entries, err = s.logs.ListRange(ctx, today.AddDate(0, 0, -days), today)
	}
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

func (s *trackerService) Recalculate(ctx context.Context) (tdee int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer s.observe(ctx, "recalculate", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs, txProfiles := txRepos(tx)
		var rerr error
		tdee, rerr = recompute(ctx, txLogs, txProfiles)
		return rerr
	})
	if err != nil {
		return 0, err
	}
	fields["tdee"] = tdee
	return tdee, nil
}
