package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/frame-grayscale-api/internal/config"
)

// newRootCmd builds the command tree. Flags default to the values loaded
// from the environment, so a flag always wins over its FRAME_API_* variable.
func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:          "frame-api",
		Short:        "HTTP API that converts image frames to grayscale JPEG",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	root.SetVersionTemplate(versionText())

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Host, "host", cfg.Host, "interface to bind (env FRAME_API_HOST)")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on (env FRAME_API_PORT)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (env FRAME_API_LOG_LEVEL)")
	flags.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "largest accepted frame in bytes (env FRAME_API_MAX_BODY_BYTES)")
	flags.Int64Var(&cfg.MaxPixels, "max-pixels", cfg.MaxPixels, "largest accepted frame in pixels, width*height (env FRAME_API_MAX_PIXELS)")
	flags.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "output JPEG quality 1-100 (env FRAME_API_JPEG_QUALITY)")
	flags.StringVar(&cfg.Grayscale, "grayscale", cfg.Grayscale, "luma, bild or lightness (env FRAME_API_GRAYSCALE)")
	flags.BoolVar(&cfg.RedactErrors, "redact-errors", cfg.RedactErrors, "hide conversion diagnostics from clients (env FRAME_API_REDACT_ERRORS)")

	root.AddCommand(
		newServeCmd(cfg),
		newConvertCmd(cfg),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}

func versionText() string {
	return fmt.Sprintf("frame-api %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
}
