// Package pipeline provides the core layout pipeline for flowgrid.
//
// This package implements the complete probe → optimize → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Probe: Resolve intrinsic dimensions for every media element
//  2. Optimize: Find the largest uniform element height that fits the frame
//  3. Render: Position elements and generate output formats (JSON, SVG, HTML)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: "gallery.toml",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/flow"
	"github.com/matzehuels/flowgrid/pkg/wall"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultSpacing is the default gap between elements in pixels.
	DefaultSpacing = 10.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatHTML = "html"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatHTML: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Manifest points at a TOML gallery manifest;
	// Elements supplies pre-built elements directly. Exactly one of
	// the two must be set. Element dimensions from Elements take
	// precedence over the manifest frame.
	Manifest string         `json:"manifest,omitempty"`
	Elements []flow.Element `json:"-"`

	// Frame options. Zero values fall back to the manifest frame when
	// one is loaded, then to package defaults.
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Spacing float64 `json:"spacing,omitempty"`

	// spacingSet records that Spacing was taken from an explicit
	// source, so a zero gap is not mistaken for "unset".
	spacingSet bool `json:"-"`

	// Probe options
	Refresh      bool          `json:"refresh,omitempty"`       // Bypass the probe cache
	AwaitTimeout time.Duration `json:"await_timeout,omitempty"` // How long to wait for async metadata

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	Autoplay   bool     `json:"autoplay,omitempty"`
	Outlines   bool     `json:"outlines,omitempty"`

	// NoFallback fails the run instead of degrading to the minimum
	// packing height when no feasible height exists.
	NoFallback bool `json:"no_fallback,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// SetSpacing sets an explicit spacing, distinguishing a deliberate
// zero gap from an unset value.
func (o *Options) SetSpacing(s float64) {
	o.Spacing = s
	o.spacingSet = true
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Height is the packing height the wall was built at.
	Height float64

	// Layout is the computed row layout.
	Layout flow.Layout

	// Wall is the positioned layout inside the frame.
	Wall wall.Wall

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Fallback reports that no feasible height existed and the wall
	// was packed at the degraded minimum height instead.
	Fallback bool

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks probe cache effectiveness.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	RowCount     int
	Evaluations  int
	ProbeTime    time.Duration
	OptimizeTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks probe cache hits and misses.
type CacheInfo struct {
	ProbeHits   int
	ProbeMisses int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: json, svg, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Manifest == "" && len(o.Elements) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest or elements required")
	}
	if o.Manifest != "" && len(o.Elements) > 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest and elements are mutually exclusive")
	}

	o.SetRenderDefaults()

	// Frame values are validated after the manifest (if any) has had a
	// chance to fill them in; see Runner.frameDefaults.
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Title == "" {
		o.Title = "flowgrid"
	}
}
