package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/domain"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage daily weight and calorie entries",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogListCmd(app),
		newLogRemoveCmd(app),
	)

	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var dateFlag string
	var weight, calories *float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace the entry for a day",
		Long: "Add or replace the entry for a day. Both values are optional but at least one is\n" +
			"required. Without --weight and --calories an interactive prompt asks for them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := domain.ParseDate(dateFlag, app.now())
			if err != nil {
				return err
			}

			if weight == nil && calories == nil {
				if !app.interactive() {
					return fmt.Errorf("provide --weight and/or --calories")
				}
				weight, calories, err = promptLogValues(cmd, app, date)
				if err != nil {
					return err
				}
			}

			entry := &domain.LogEntry{Date: date, Weight: weight, Calories: calories}
			tdee, err := app.Tracker.AddLog(ctx, entry)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogWrite("Logged", entry.Date, tdee))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to log, YYYY-MM-DD, \"today\" or \"yesterday\" (default today)")
	floatFlag(cmd.Flags(), &weight, "weight", "Body weight in kg")
	floatFlag(cmd.Flags(), &calories, "calories", "Calorie intake in kcal")

	return cmd
}

func promptLogValues(cmd *cobra.Command, app *App, date time.Time) (*float64, *float64, error) {
	recent, err := app.Tracker.ListLogs(cmd.Context(), 0)
	if err != nil {
		return nil, nil, err
	}
	var values logFormValues
	if err := newLogForm(date.Format(domain.DateLayout), latestWeight(recent), &values).Run(); err != nil {
		return nil, nil, err
	}
	return values.parse()
}

func newLogListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List log entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Tracker.ListLogs(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogList(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Only show the last N days (0 for all)")

	return cmd
}

func newLogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove DATE",
		Aliases: []string{"rm"},
		Short:   "Remove the entry for a day",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate(args[0], app.now())
			if err != nil {
				return err
			}
			tdee, err := app.Tracker.DeleteLog(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogWrite("Removed", date, tdee))
			return nil
		},
	}
}
