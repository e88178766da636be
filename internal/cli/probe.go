package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/media"
)

// probeCommand creates the probe command for inspecting media files.
func (c *CLI) probeCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Print intrinsic dimensions of media files",
		Long: `Print intrinsic dimensions of media files.

Images are read from their file headers without decoding pixel data.
Video files cannot be probed and must declare dimensions in the manifest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProbe(cmd, args, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe caching")
	return cmd
}

func (c *CLI) runProbe(cmd *cobra.Command, paths []string, noCache bool) error {
	cch, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer cch.Close()

	prober := media.NewProber(cch, nil)
	p := newProgress(loggerFromContext(cmd.Context()))

	failed := 0
	for _, path := range paths {
		w, h, hit, err := prober.Probe(cmd.Context(), path)
		if err != nil {
			printError("%s: %v", path, err)
			failed++
			continue
		}
		status := iconFresh
		if hit {
			status = iconCached
		}
		printKeyValue(fmt.Sprintf("%.0fx%.0f", w, h), path+" "+StyleDim.Render("("+status+")"))
	}

	p.done(fmt.Sprintf("Probed %d files", len(paths)-failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be probed", failed, len(paths))
	}
	return nil
}
