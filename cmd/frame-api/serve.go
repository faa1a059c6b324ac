package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/ironsheep/frame-grayscale-api/internal/config"
	"github.com/ironsheep/frame-grayscale-api/internal/logging"
	"github.com/ironsheep/frame-grayscale-api/internal/server"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
}

// runServe starts the server under fx and blocks until SIGINT or SIGTERM.
func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("frame-api starting",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("addr", cfg.Addr()),
		zap.String("grayscale", cfg.Grayscale),
		zap.Int("jpeg_quality", cfg.JPEGQuality),
		zap.Int64("max_body_bytes", cfg.MaxBodyBytes),
		zap.Int64("max_pixels", cfg.MaxPixels),
	)

	app := fx.New(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		server.Module,
	)

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	sig := <-app.Wait()
	logger.Info("shutdown signal received", zap.Any("signal", sig.Signal))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop cleanly: %w", err)
	}
	return nil
}
