package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/importer"
)

// LogService owns the daily log. Every mutation re-runs the adaptive
// estimator and persists the new TDEE in the same transaction.
type LogService interface {
	AddLog(ctx context.Context, e *domain.LogEntry) (int, error)
	DeleteLog(ctx context.Context, date time.Time) (int, error)
	// ListLogs returns entries from the last days days, newest first.
	// Zero days lists the whole history.
	ListLogs(ctx context.Context, days int) ([]domain.LogEntry, error)
	Recalculate(ctx context.Context) (int, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error)
	Reset(ctx context.Context) error
}

type SummaryService interface {
	GetSummary(ctx context.Context, req contract.SummaryRequest) (*contract.SummaryResponse, error)
	// Target returns the calorie target for rate, or for the profile's
	// weekly rate when rate is nil.
	Target(ctx context.Context, rate *float64) (*contract.TargetResponse, error)
}

type TransferService interface {
	ExportState(ctx context.Context) (*importer.StateDocument, error)
	ImportState(ctx context.Context, doc *importer.StateDocument) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}

// TrackerService is the full tracker surface used by the CLI and the API.
type TrackerService interface {
	LogService
	ProfileService
	SummaryService
	TransferService
}

// ImportResult reports what an import wrote.
type ImportResult struct {
	EntryCount   int
	SkippedCount int
	TDEE         int
}
