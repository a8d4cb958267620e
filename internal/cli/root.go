package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/config"
	"github.com/alexanderramin/tdee/internal/service"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Tracker service.TrackerService
	Config  config.Config

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Now is the clock used for "today". Nil means the wall clock.
	Now func() time.Time
	// Logger receives API request logs from "serve". Nil means stderr.
	Logger *slog.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// NewRootCmd creates the top-level "tdee" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tdee",
		Short: "Adaptive TDEE tracker",
		Long: "Track daily weight and calorie intake. The tracker estimates your total daily\n" +
			"energy expenditure from the log and derives a calorie target from your weekly rate.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newLogCmd(app),
		newProfileCmd(app),
		newStatusCmd(app),
		newTargetCmd(app),
		newRecalcCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newResetCmd(app),
		newDashCmd(app),
		newServeCmd(app),
	)

	return root
}
