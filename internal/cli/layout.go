package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing grid layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		spacing float64
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [gallery.toml]",
		Short: "Compute a space-filling layout from a gallery manifest",
		Long: `Compute a space-filling layout from a gallery manifest.

The layout command reads a TOML manifest describing a frame and a set of
media files, probes image dimensions where the manifest doesn't declare
them, finds the largest uniform element height that still fits the frame,
and writes the positioned result in the requested formats.

Probe results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Manifest = args[0]
			opts.Formats = parseFormats(formats)
			if cmd.Flags().Changed("spacing") {
				opts.SetSpacing(spacing)
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output basename (default: manifest name)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated output formats: json (default), svg, html")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-probe media even when cached")

	// Frame flags (override the manifest)
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (overrides manifest)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (overrides manifest)")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "spacing between elements (overrides manifest)")

	// Render flags
	cmd.Flags().StringVar(&opts.Title, "title", "", "document title for json/html output")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color for svg/html output")
	cmd.Flags().BoolVar(&opts.Autoplay, "autoplay", false, "autoplay videos in html output")
	cmd.Flags().BoolVar(&opts.Outlines, "outlines", false, "draw block outlines in svg output")
	cmd.Flags().BoolVar(&opts.NoFallback, "no-fallback", false, "fail instead of degrading when nothing fits")

	return cmd
}

// runLayout executes the pipeline and writes one artifact per format.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Packing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(opts.Manifest, filepath.Ext(opts.Manifest))
	}

	if result.Fallback {
		printWarning("Nothing fits the frame; packed at minimum height")
	} else {
		printSuccess("Layout complete (element height %.1f)", result.Height)
	}

	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.ElementCount, result.Stats.RowCount, result.CacheInfo.ProbeHits > 0)
	printNewline()
	printNextStep("Preview", "flowgrid preview "+opts.Manifest)

	return nil
}
