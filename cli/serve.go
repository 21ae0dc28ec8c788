package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"moxie/config/setup"

	"github.com/spf13/cobra"
)

func newServeCmd(o *options) *cobra.Command {
	var createSchema bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			provider, err := setup.InitDatabase(ctx, o.dbURL, createSchema, o.logger)
			if err != nil {
				return err
			}
			defer setup.Shutdown(provider, o.logger)

			application := setup.InitApp(provider, o.cfg, o.logger)
			fiberApp := setup.NewFiberApp(application)

			o.logger.Info("starting server", "port", o.cfg.Port, "env", o.cfg.Env)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- fiberApp.Listen(":" + o.cfg.Port)
			}()

			select {
			case err := <-serveErr:
				return err
			case <-ctx.Done():
			}

			o.logger.Info("shutting down server gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
				o.logger.Error("server forced to shutdown", "error", err)
			}

			o.logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&createSchema, "create-schema", false, "Create the schema before serving")
	return cmd
}
