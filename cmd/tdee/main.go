package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tdee/internal/cli"
	"github.com/alexanderramin/tdee/internal/config"
	"github.com/alexanderramin/tdee/internal/db"
	"github.com/alexanderramin/tdee/internal/repository"
	"github.com/alexanderramin/tdee/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env values never override the process environment.
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg := config.LoadConfig()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logRepo := repository.NewSQLiteLogEntryRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Tracker: service.NewTrackerService(logRepo, profileRepo, uow, observers...),
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	// Forms and the dashboard need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
