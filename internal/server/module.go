package server

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ironsheep/frame-grayscale-api/internal/config"
	"github.com/ironsheep/frame-grayscale-api/internal/frame"
)

// NewConverter builds the frame converter from configuration.
func NewConverter(cfg *config.Config) (*frame.Converter, error) {
	method, err := cfg.Method()
	if err != nil {
		return nil, err
	}
	return frame.NewConverter(method, cfg.JPEGQuality, cfg.MaxPixels), nil
}

// Register ties the server to the fx application lifecycle.
func Register(lc fx.Lifecycle, s *Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("server stopping")
			return s.Shutdown(ctx)
		},
	})
}

// Module provides the converter and HTTP server. It expects *config.Config and
// *zap.Logger to be supplied by the caller.
var Module = fx.Options(
	fx.Provide(NewConverter),
	fx.Provide(New),
	fx.Invoke(Register),
)
