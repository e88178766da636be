package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flow"
	"github.com/matzehuels/flowgrid/pkg/observability"
	"github.com/matzehuels/flowgrid/pkg/source/manifest"
)

// Runner encapsulates pipeline execution with probe caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete probe → optimize → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Input: manifest file or pre-built elements.
	elements, resolve, err := r.loadElements(&opts)
	if err != nil {
		return nil, err
	}
	if err := r.frameDefaults(&opts); err != nil {
		return nil, err
	}
	result.Stats.ElementCount = len(elements)

	// Stage 1: Probe
	probeStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnProbeStart(ctx, len(elements))
	err = r.ProbeElements(ctx, elements, resolve, opts, &result.CacheInfo)
	result.Stats.ProbeTime = time.Since(probeStart)
	hooks.OnProbeComplete(ctx, len(elements), result.Stats.ProbeTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("probed media",
		"elements", len(elements),
		"cache_hits", result.CacheInfo.ProbeHits,
		"duration", result.Stats.ProbeTime)

	// Stage 2: Optimize
	optStart := time.Now()
	hooks.OnOptimizeStart(ctx, len(elements))
	layout, evals, fallback, err := r.OptimizeLayout(elements, opts)
	result.Stats.OptimizeTime = time.Since(optStart)
	result.Stats.Evaluations = evals
	hooks.OnOptimizeComplete(ctx, layout.ElementHeight, evals, result.Stats.OptimizeTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Height = layout.ElementHeight
	result.Fallback = fallback
	result.Stats.RowCount = len(layout.Rows)

	opts.Logger.Info("optimized layout",
		"height", result.Height,
		"rows", result.Stats.RowCount,
		"evaluations", evals,
		"fallback", fallback,
		"duration", result.Stats.OptimizeTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	w, artifacts, err := r.Render(layout, opts, fallback)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Wall = w
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// loadElements resolves the pipeline input to a slice of elements and a
// source resolver. Manifest frame values fill unset frame options.
func (r *Runner) loadElements(opts *Options) ([]flow.Element, func(string) string, error) {
	if len(opts.Elements) > 0 {
		return opts.Elements, func(s string) string { return s }, nil
	}

	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, nil, err
	}
	items, err := m.Items()
	if err != nil {
		return nil, nil, err
	}

	if opts.Width == 0 {
		opts.Width = m.Frame.Width
	}
	if opts.Height == 0 {
		opts.Height = m.Frame.Height
	}
	if !opts.spacingSet {
		opts.SetSpacing(m.Frame.Spacing)
	}

	elements := make([]flow.Element, len(items))
	for i, it := range items {
		elements[i] = it
	}
	return elements, m.Resolve, nil
}

// frameDefaults applies package defaults to still-unset frame values
// and validates the result.
func (r *Runner) frameDefaults(opts *Options) error {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if !opts.spacingSet {
		opts.SetSpacing(DefaultSpacing)
	}
	if err := errors.ValidateFrame(opts.Width, opts.Height); err != nil {
		return err
	}
	return errors.ValidateSpacing(opts.Spacing)
}

// OptimizeLayout finds the best packing height for the elements. When
// no feasible height exists and fallback is allowed, it degrades to
// the minimum packing height instead of failing.
func (r *Runner) OptimizeLayout(elements []flow.Element, opts Options) (flow.Layout, int, bool, error) {
	res, err := flow.Optimize(elements, opts.Width, opts.Height, opts.Spacing)
	if err == nil {
		return res.Layout, res.Evaluations, false, nil
	}
	if !errors.IsInfeasible(err) || opts.NoFallback {
		return flow.Layout{}, 0, false, err
	}

	opts.Logger.Warn("no feasible height, degrading to minimum packing",
		"frame_width", opts.Width,
		"frame_height", opts.Height,
		"cause", errors.GetCode(err))

	degraded, ferr := flow.Fallback(elements, opts.Width, opts.Spacing)
	if ferr != nil {
		return flow.Layout{}, 0, false, ferr
	}
	return degraded.Layout, 0, true, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
