package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all data with a JSON state export",
		Long: "Replace all data with a JSON state document. The format matches \"tdee export\"\n" +
			"and the browser tracker's saved state.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Tracker.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Imported %d entries", formatter.StyleGreen.Render("✔"), res.EntryCount)
			if res.SkippedCount > 0 {
				fmt.Fprint(out, formatter.Dim(fmt.Sprintf(" (%d empty skipped)", res.SkippedCount)))
			}
			fmt.Fprintf(out, ". TDEE is now %s\n", formatter.Bold(formatter.Kcal(float64(res.TDEE))))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all data as a JSON state document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Tracker.ExportState(cmd.Context())
			if err != nil {
				return err
			}
			data, err := importer.Marshal(doc)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d entries to %s\n",
				formatter.StyleGreen.Render("✔"), len(doc.Logs), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to FILE instead of stdout")

	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all entries and restore the default profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without --yes on a non-interactive terminal")
				}
				if err := newResetConfirm(&yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reset cancelled."))
					return nil
				}
			}
			if err := app.Tracker.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s All data reset\n", formatter.StyleGreen.Render("✔"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
