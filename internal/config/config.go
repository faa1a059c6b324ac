// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/frame-grayscale-api/internal/imaging"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	// DefaultHost binds every interface.
	DefaultHost = "0.0.0.0"

	// DefaultPort is the HTTP listen port.
	DefaultPort = 5000

	// DefaultLogLevel is a zap level name.
	DefaultLogLevel = "info"

	// DefaultMaxBodyBytes caps a submitted frame at 32 MiB.
	DefaultMaxBodyBytes = 32 << 20
)

// Config holds the service settings. Load fills it from FRAME_API_*
// environment variables; command-line flags may override fields afterwards.
type Config struct {
	// Host and Port form the listen address.
	Host string
	Port int

	// LogLevel is a zap level name such as "debug" or "warn".
	LogLevel string

	// MaxBodyBytes caps the size of a submitted frame.
	MaxBodyBytes int64

	// MaxPixels caps the width*height a frame may declare. Frames over the
	// limit are rejected before their pixels are decoded.
	MaxPixels int64

	// JPEGQuality is the output quality, 1-100.
	JPEGQuality int

	// Grayscale names the conversion method (see imaging.ParseMethod).
	Grayscale string

	// RedactErrors hides conversion diagnostics from clients. They are
	// still logged.
	RedactErrors bool
}

// Load reads the configuration from the environment. Unset or malformed
// values fall back to their defaults; call Validate before use.
func Load() *Config {
	return &Config{
		Host:         getEnv("FRAME_API_HOST", DefaultHost),
		Port:         getEnvInt("FRAME_API_PORT", DefaultPort),
		LogLevel:     getEnv("FRAME_API_LOG_LEVEL", DefaultLogLevel),
		MaxBodyBytes: getEnvInt64("FRAME_API_MAX_BODY_BYTES", DefaultMaxBodyBytes),
		MaxPixels:    getEnvInt64("FRAME_API_MAX_PIXELS", imaging.DefaultMaxPixels),
		JPEGQuality:  getEnvInt("FRAME_API_JPEG_QUALITY", imaging.DefaultJPEGQuality),
		Grayscale:    getEnv("FRAME_API_GRAYSCALE", string(imaging.MethodLuma)),
		RedactErrors: getEnvBool("FRAME_API_REDACT_ERRORS", false),
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Method returns the parsed grayscale method.
func (c *Config) Method() (imaging.Method, error) {
	return imaging.ParseMethod(c.Grayscale)
}

// Validate reports the first setting that is out of range or unparseable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size %d: must be positive", c.MaxBodyBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("invalid max pixels %d: must be positive", c.MaxPixels)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality %d: must be between 1 and 100", c.JPEGQuality)
	}
	if _, err := c.Method(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
