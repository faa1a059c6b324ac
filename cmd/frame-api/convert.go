package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/frame-grayscale-api/internal/config"
	"github.com/ironsheep/frame-grayscale-api/internal/frame"
)

func newConvertCmd(cfg *config.Config) *cobra.Command {
	var mirror bool

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a local image file to a grayscale JPEG",
		Long: "Runs the same conversion as POST /process_frame on a local file and writes\n" +
			"the grayscale JPEG to output (default: <input>_gray.jpg).",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := defaultOutputPath(args[0])
			if len(args) == 2 {
				output = args[1]
			}
			return runConvert(cmd.OutOrStdout(), cfg, args[0], output, mirror)
		},
	}
	cmd.Flags().BoolVar(&mirror, "mirror", false, "flip the frame horizontally before conversion")

	return cmd
}

func runConvert(w io.Writer, cfg *config.Config, input, output string, mirror bool) error {
	method, err := cfg.Method()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read frame: %w", err)
	}

	conv := frame.NewConverter(method, cfg.JPEGQuality, cfg.MaxPixels)

	switch res := conv.Convert(raw, frame.Options{Mirror: mirror}).(type) {
	case frame.Success:
		if err := os.WriteFile(output, res.JPEG, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(w, "%s (%s %dx%d) -> %s (%d bytes, %s, quality %d)\n",
			input, res.Format, res.Width, res.Height, output, len(res.JPEG), conv.Method(), conv.Quality())
		return nil
	case frame.ClientError:
		return errors.New(res.Message)
	case frame.ServerError:
		return fmt.Errorf("conversion failed: %s", res.Message())
	default:
		return fmt.Errorf("unexpected conversion result %T", res)
	}
}

// defaultOutputPath derives "<dir>/<stem>_gray.jpg" from the input path.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_gray.jpg"
}
