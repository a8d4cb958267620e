package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
	"github.com/alexanderramin/tdee/internal/estimator"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the TDEE estimate, calorie target and goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.NewSummaryRequest()
			now := app.now()
			req.Now = &now

			summary, err := app.Tracker.GetSummary(ctx, req)
			if err != nil {
				return err
			}
			entries, err := app.Tracker.ListLogs(ctx, 0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(summary, weightSeries(entries)))
			return nil
		},
	}
}

// weightSeries returns the weights of the most recent window, oldest first,
// from entries ordered newest first.
func weightSeries(entries []domain.LogEntry) []float64 {
	weights := make([]float64, 0, estimator.WindowSize)
	for _, e := range entries {
		if len(weights) == estimator.WindowSize {
			break
		}
		if e.HasWeight() {
			weights = append(weights, *e.Weight)
		}
	}
	slices.Reverse(weights)
	return weights
}

func newTargetCmd(app *App) *cobra.Command {
	var rate *float64

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Show the daily calorie target for a weekly rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Tracker.Target(cmd.Context(), rate)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTarget(resp))
			return nil
		},
	}

	floatFlag(cmd.Flags(), &rate, "rate", "Weekly rate in kg/week (default: profile rate)")

	return cmd
}

func newRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Run the adaptive estimator over the log again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tdee, err := app.Tracker.Recalculate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s TDEE is now %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(formatter.Kcal(float64(tdee))))
			return nil
		},
	}
}
