package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dash needs an interactive terminal, use \"tdee status\" instead")
			}
			_, err := tea.NewProgram(newDashModel(app), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
