package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/repository"
	"github.com/alexanderramin/tdee/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, observers ...UseCaseObserver) (*trackerService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTrackerWithUoW(database, testutil.NewTestUoW(database), observers...), database
}

func newTrackerWithUoW(database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) *trackerService {
	svc := NewTrackerService(
		repository.NewSQLiteLogEntryRepo(database),
		repository.NewSQLiteUserProfileRepo(database),
		uow,
		observers...,
	).(*trackerService)
	svc.now = func() time.Time { return testutil.Day(10) }
	return svc
}

func addAll(t *testing.T, svc TrackerService, entries []*domain.LogEntry) int {
	t.Helper()
	var tdee int
	for _, e := range entries {
		var err error
		tdee, err = svc.AddLog(context.Background(), e)
		require.NoError(t, err)
	}
	return tdee
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
