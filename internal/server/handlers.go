package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ironsheep/frame-grayscale-api/internal/frame"
)

// errInvalidMirror is returned for an unparsable ?mirror= value.
var errInvalidMirror = errors.New("invalid mirror parameter")

// handleHome answers GET / with a fixed liveness message.
func (s *Server) handleHome(c echo.Context) error {
	return c.String(http.StatusOK, HomeMessage)
}

// handleProcessFrame converts the raw request body to a base64 grayscale JPEG.
//
// The body is read verbatim regardless of Content-Type. Responses:
//   - 200 {"processed_frame": "<base64>"}
//   - 400 {"error": "No frame received"} for an empty body
//   - 400 {"error": "invalid mirror parameter"} for a bad ?mirror= value
//   - 413 {"error": "Request Entity Too Large"} above the body limit
//   - 500 {"error": "<message>"} when the frame cannot be converted
func (s *Server) handleProcessFrame(c echo.Context) error {
	opts, err := frameOptions(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		s.logger.Warn("failed to read frame", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: s.clientMessage(err.Error())})
	}

	switch res := s.converter.Convert(raw, opts).(type) {
	case frame.Success:
		s.logger.Debug("frame converted",
			zap.String("format", res.Format),
			zap.Int("width", res.Width),
			zap.Int("height", res.Height),
			zap.Int("input_bytes", len(raw)),
			zap.Int("output_bytes", len(res.JPEG)),
		)
		return c.JSON(http.StatusOK, FrameResponse{ProcessedFrame: res.ProcessedFrame})

	case frame.ClientError:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: res.Message})

	case frame.ServerError:
		s.logger.Warn("frame conversion failed",
			zap.String("kind", string(res.Kind)),
			zap.Int("input_bytes", len(raw)),
			zap.Error(res.Err),
		)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: s.clientMessage(res.Message())})

	default:
		s.logger.Error("unexpected conversion result", zap.String("type", fmt.Sprintf("%T", res)))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: s.clientMessage("unexpected conversion result")})
	}
}

// frameOptions reads per-request switches from the query string.
func frameOptions(c echo.Context) (frame.Options, error) {
	var opts frame.Options
	if v := c.QueryParam("mirror"); v != "" {
		mirror, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errInvalidMirror
		}
		opts.Mirror = mirror
	}
	return opts, nil
}

// clientMessage returns msg, or a generic message when redaction is enabled.
func (s *Server) clientMessage(msg string) string {
	if s.cfg.RedactErrors {
		return redactedMessage
	}
	return msg
}

// handleError renders every framework error (404, 405, 413, recovered panics)
// in the same {"error": "..."} shape as the conversion errors.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		s.logger.Error("unhandled error", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Error: msg})
	}
	if err != nil {
		s.logger.Error("failed to write error response", zap.Error(err))
	}
}
