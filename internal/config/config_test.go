package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"FRAME_API_HOST", "FRAME_API_PORT", "FRAME_API_LOG_LEVEL",
		"FRAME_API_MAX_BODY_BYTES", "FRAME_API_MAX_PIXELS", "FRAME_API_JPEG_QUALITY",
		"FRAME_API_GRAYSCALE", "FRAME_API_REDACT_ERRORS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host: got %s, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port != 5000 {
		t.Errorf("Port: got %d, want 5000", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("Addr: got %s, want 0.0.0.0:5000", cfg.Addr())
	}
	if cfg.MaxBodyBytes != 32<<20 {
		t.Errorf("MaxBodyBytes: got %d, want %d", cfg.MaxBodyBytes, 32<<20)
	}
	if cfg.MaxPixels != 50_000_000 {
		t.Errorf("MaxPixels: got %d, want 50000000", cfg.MaxPixels)
	}
	if cfg.JPEGQuality != 95 {
		t.Errorf("JPEGQuality: got %d, want 95", cfg.JPEGQuality)
	}
	if cfg.Grayscale != "luma" {
		t.Errorf("Grayscale: got %s, want luma", cfg.Grayscale)
	}
	if cfg.RedactErrors {
		t.Error("RedactErrors should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("FRAME_API_HOST", "127.0.0.1")
	t.Setenv("FRAME_API_PORT", "8081")
	t.Setenv("FRAME_API_LOG_LEVEL", "debug")
	t.Setenv("FRAME_API_MAX_BODY_BYTES", "1024")
	t.Setenv("FRAME_API_MAX_PIXELS", "640000")
	t.Setenv("FRAME_API_JPEG_QUALITY", "75")
	t.Setenv("FRAME_API_GRAYSCALE", "bild")
	t.Setenv("FRAME_API_REDACT_ERRORS", "true")

	cfg := Load()

	if cfg.Addr() != "127.0.0.1:8081" {
		t.Errorf("Addr: got %s", cfg.Addr())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Errorf("MaxBodyBytes: got %d", cfg.MaxBodyBytes)
	}
	if cfg.MaxPixels != 640000 {
		t.Errorf("MaxPixels: got %d", cfg.MaxPixels)
	}
	if cfg.JPEGQuality != 75 {
		t.Errorf("JPEGQuality: got %d", cfg.JPEGQuality)
	}
	if cfg.Grayscale != "bild" {
		t.Errorf("Grayscale: got %s", cfg.Grayscale)
	}
	if !cfg.RedactErrors {
		t.Error("RedactErrors should be true")
	}
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("FRAME_API_PORT", "http")
	t.Setenv("FRAME_API_REDACT_ERRORS", "maybe")

	cfg := Load()
	if cfg.Port != DefaultPort {
		t.Errorf("Port: got %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.RedactErrors {
		t.Error("RedactErrors should fall back to false")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Port = 0 }, "invalid port"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "invalid port"},
		{"body limit", func(c *Config) { c.MaxBodyBytes = 0 }, "max body size"},
		{"pixel limit zero", func(c *Config) { c.MaxPixels = 0 }, "max pixels"},
		{"pixel limit negative", func(c *Config) { c.MaxPixels = -5 }, "max pixels"},
		{"quality low", func(c *Config) { c.JPEGQuality = 0 }, "jpeg quality"},
		{"quality high", func(c *Config) { c.JPEGQuality = 101 }, "jpeg quality"},
		{"grayscale", func(c *Config) { c.Grayscale = "sepia" }, "grayscale method"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Host:         DefaultHost,
				Port:         DefaultPort,
				LogLevel:     DefaultLogLevel,
				MaxBodyBytes: DefaultMaxBodyBytes,
				MaxPixels:    1 << 20,
				JPEGQuality:  95,
				Grayscale:    "luma",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
