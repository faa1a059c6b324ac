package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ironsheep/frame-grayscale-api/internal/config"
	"github.com/ironsheep/frame-grayscale-api/internal/frame"
)

// HomeMessage is the fixed body served on GET /.
const HomeMessage = "Video Grayscale API is running!"

// redactedMessage replaces conversion diagnostics when redaction is enabled.
const redactedMessage = "failed to process frame"

// corsConfig allows every origin and method. Leaving AllowHeaders empty makes
// the middleware echo back whatever headers a preflight asks for.
var corsConfig = middleware.CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPut,
		http.MethodPatch,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	},
	MaxAge: 86400,
}

// Server serves the frame conversion HTTP API.
type Server struct {
	echo      *echo.Echo
	converter *frame.Converter
	logger    *zap.Logger
	cfg       *config.Config
}

// FrameResponse is the success body of POST /process_frame.
type FrameResponse struct {
	ProcessedFrame string `json:"processed_frame"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a server with its middleware and routes registered.
func New(cfg *config.Config, converter *frame.Converter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		echo:      echo.New(),
		converter: converter,
		logger:    logger.Named("http"),
		cfg:       cfg,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	s.echo.Use(s.requestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(corsConfig))
	s.echo.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: strconv.FormatInt(cfg.MaxBodyBytes, 10),
	}))

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleHome)
	s.echo.POST("/process_frame", s.handleProcessFrame)
}

// ServeHTTP lets the server be used as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start binds the configured address and serves in the background.
//
// Binding happens synchronously so an address already in use is reported to
// the caller instead of being lost in the serving goroutine.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.echo.Listener = lis

	go func() {
		s.logger.Info("server starting", zap.String("addr", lis.Addr().String()))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs one entry per request through zap.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.logger.Info("request", fields...)
			return nil
		},
	})
}
