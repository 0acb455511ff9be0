// File: cmd/convert.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/geometry"
	"github.com/xkilldash9x/deckforge-cli/internal/observability"
	"github.com/xkilldash9x/deckforge-cli/internal/pipeline"
)

// newConvertCmd creates and configures the `convert` command.
func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert [inputs...]",
		Short: "Converts one or more HTML files into PPTX presentations",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so command-line values override the config file and
			// environment variables with the right precedence.
			if err := viper.BindPFlag("slide.width_inches", cmd.Flags().Lookup("slide-width")); err != nil {
				return err
			}
			if err := viper.BindPFlag("slide.height_inches", cmd.Flags().Lookup("slide-height")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("failed to re-unmarshal config with flag overrides: %w", err)
			}

			outDir := viper.GetString("output-dir")
			logJSON := viper.GetBool("log-json")
			concurrency := viper.GetInt("concurrency")
			if concurrency < 1 {
				concurrency = 1
			}

			opts := schemas.ConversionOptions{
				SlideWidth:             cfg.Slide.WidthInches,
				SlideHeight:            cfg.Slide.HeightInches,
				PreferAccurateGeometry: !viper.GetBool("no-browser"),
			}

			var geo schemas.GeometrySource
			if cfg.Geometry.Enabled && opts.PreferAccurateGeometry {
				src, err := geometry.NewSource(cfg.Geometry, logger)
				if err != nil {
					logger.Warn("Browser geometry source unavailable, all runs will use the layout simulator", zap.Error(err))
				} else {
					geo = src
					defer src.Close()
				}
			}

			pipe := pipeline.New(cfg, geo)

			logger.Info("Starting conversion batch",
				zap.Int("inputs", len(args)),
				zap.Int("concurrency", concurrency),
				zap.Float64("slide_width", opts.SlideWidth),
				zap.Float64("slide_height", opts.SlideHeight),
			)

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for _, input := range args {
				g.Go(func() error {
					return convertFile(gctx, pipe, input, outDir, opts, logJSON, logger)
				})
			}
			if err := g.Wait(); err != nil {
				return fmt.Errorf("conversion batch failed: %w", err)
			}

			logger.Info("Conversion batch complete", zap.Int("inputs", len(args)))
			return nil
		},
	}

	convertCmd.Flags().StringP("output-dir", "o", ".", "directory for generated .pptx files")
	convertCmd.Flags().Float64("slide-width", 0, "slide width in inches (default 13.333)")
	convertCmd.Flags().Float64("slide-height", 0, "slide height in inches (default 7.5)")
	convertCmd.Flags().Bool("no-browser", false, "skip the browser renderer and use the layout simulator")
	convertCmd.Flags().Bool("log-json", false, "write the per-run conversion log as JSON next to each output")
	convertCmd.Flags().Int("concurrency", 4, "maximum concurrent conversions")
	return convertCmd
}

// convertFile runs one input through the pipeline and writes its artifacts.
func convertFile(ctx context.Context, pipe *pipeline.Pipeline, input, outDir string, opts schemas.ConversionOptions, logJSON bool, logger *zap.Logger) error {
	markup, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	out, runLog, err := pipe.Convert(ctx, string(markup), opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// Surface partial diagnostics even for failed runs.
		if logJSON && runLog != nil {
			if werr := writeRunLog(runLog, input, outDir); werr != nil {
				logger.Warn("Failed to write run log", zap.String("input", input), zap.Error(werr))
			}
		}
		return fmt.Errorf("converting %s: %w", input, err)
	}

	target := outputPath(input, outDir, ".pptx")
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	logger.Info("Wrote presentation",
		zap.String("input", input),
		zap.String("output", target),
		zap.Int("warnings", runLog.Count(schemas.LevelWarning)),
	)

	if logJSON {
		if err := writeRunLog(runLog, input, outDir); err != nil {
			return fmt.Errorf("writing run log for %s: %w", input, err)
		}
	}
	return nil
}

// writeRunLog serializes the conversion log next to the output artifact.
func writeRunLog(runLog *schemas.RunLog, input, outDir string) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(runLog, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath(input, outDir, ".log.json"), data, 0o644)
}

// outputPath derives an artifact path from the input file name.
func outputPath(input, outDir, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+ext)
}
