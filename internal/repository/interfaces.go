package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tdee/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type LogEntryRepo interface {
	// Upsert inserts the entry or replaces the values of the entry already
	// stored for the same date, keeping that entry's id and created_at.
	Upsert(ctx context.Context, e *domain.LogEntry) error
	GetByDate(ctx context.Context, date time.Time) (*domain.LogEntry, error)
	// List returns every entry ordered by date ascending.
	List(ctx context.Context) ([]domain.LogEntry, error)
	// ListRecent returns the latest n entries, newest first.
	ListRecent(ctx context.Context, n int) ([]domain.LogEntry, error)
	// ListRange returns entries with from <= date <= to, ascending.
	ListRange(ctx context.Context, from, to time.Time) ([]domain.LogEntry, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, date time.Time) error
	DeleteAll(ctx context.Context) error
}

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}
