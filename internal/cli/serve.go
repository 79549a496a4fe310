package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/polyglot/api/internal/app"
	"github.com/polyglot/api/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.NewLogger("stdout")
			if err != nil {
				return err
			}
			defer logger.Sync()

			return Serve(cmd.Context(), config.Load(), logger)
		},
	}
}

// Serve runs the API until SIGINT or SIGTERM
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("Polyglot API starting...",
		zap.String("version", app.Version),
		zap.String("environment", cfg.Environment),
		zap.String("history_backend", cfg.HistoryBackend),
	)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
