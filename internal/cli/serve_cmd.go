package cli

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tdee/internal/api"
	"github.com/alexanderramin/tdee/internal/config"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger
			if logger == nil {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			}
			if addr == "" {
				addr = app.Config.Addr
			}
			if addr == "" {
				addr = config.DefaultConfig().Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(app.Tracker, logger)
			return api.ListenAndServe(ctx, addr, srv.Handler(app.Config.AllowedOrigins), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from TDEE_ADDR)")

	return cmd
}
