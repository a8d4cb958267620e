package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/repository"
)

type trackerService struct {
	logs     repository.LogEntryRepo
	profiles repository.UserProfileRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewTrackerService(
	logs repository.LogEntryRepo,
	profiles repository.UserProfileRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TrackerService {
	return &trackerService{
		logs:     logs,
		profiles: profiles,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// observe reports a finished use case. Call it deferred with a pointer to
// the named error result.
func (s *trackerService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}

// txRepos builds repositories bound to one transaction.
func txRepos(tx db.DBTX) (repository.LogEntryRepo, repository.UserProfileRepo) {
	return repository.NewSQLiteLogEntryRepo(tx), repository.NewSQLiteUserProfileRepo(tx)
}
