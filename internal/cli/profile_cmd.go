package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/domain"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change goals and body data",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Tracker.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var patch domain.ProfilePatch

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: "Update profile fields. Only the flags given are changed; 0 clears a weight or\n" +
			"the height. While fewer than 3 entries are logged, a new start weight also\n" +
			"resets the TDEE estimate.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Tracker.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	floatFlag(cmd.Flags(), &patch.StartWeight, "start-weight", "Starting weight in kg")
	floatFlag(cmd.Flags(), &patch.GoalWeight, "goal-weight", "Goal weight in kg")
	floatFlag(cmd.Flags(), &patch.HeightCm, "height", "Height in cm")
	floatFlag(cmd.Flags(), &patch.WeeklyRate, "weekly-rate", "Desired change in kg/week, negative to lose")

	return cmd
}
