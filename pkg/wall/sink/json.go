// Package sink serializes a positioned wall to output formats.
//
// Each format follows the same shape: a Render function taking a
// [wall.Wall] and functional options. JSON is the data interchange
// format; SVG and HTML are self-contained visual documents.
package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/wall"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title    string
	fallback bool
}

// WithJSONTitle records a document title in the JSON output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONFallback marks that the wall was packed at the degraded
// fallback height rather than an optimized one.
func WithJSONFallback() JSONOption { return func(r *jsonRenderer) { r.fallback = true } }

type jsonOutput struct {
	Title         string      `json:"title,omitempty"`
	FrameWidth    float64     `json:"frame_width"`
	FrameHeight   float64     `json:"frame_height"`
	ElementHeight float64     `json:"element_height"`
	Spacing       float64     `json:"spacing"`
	Fallback      bool        `json:"fallback,omitempty"`
	Blocks        []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Source string  `json:"source,omitempty"`
	Kind   string  `json:"kind,omitempty"`
}

// RenderJSON exports the positioned wall as a pretty-printed JSON
// document. Block coordinates are absolute within the frame, origin at
// the top-left. Source and kind are included for elements that carry
// them (media items); bare geometry elements produce geometry only.
//
// RenderJSON does not modify w and is safe to call concurrently.
func RenderJSON(w wall.Wall, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:         r.title,
		FrameWidth:    w.FrameWidth,
		FrameHeight:   w.FrameHeight,
		ElementHeight: w.ElementHeight,
		Spacing:       w.Spacing,
		Fallback:      r.fallback,
		Blocks:        buildJSONBlocks(w),
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONBlocks(w wall.Wall) []jsonBlock {
	var blocks []jsonBlock
	for row, blks := range w.Rows {
		for _, b := range blks {
			jb := jsonBlock{
				Row:    row,
				X:      b.Left,
				Y:      b.Top,
				Width:  b.Width(),
				Height: b.Height(),
			}
			jb.Source, jb.Kind = describe(b.Element)
			blocks = append(blocks, jb)
		}
	}
	if blocks == nil {
		blocks = []jsonBlock{}
	}
	return blocks
}

// describe extracts source and kind from elements that expose them.
func describe(el any) (source, kind string) {
	if s, ok := el.(interface{ Source() string }); ok {
		source = s.Source()
	}
	if k, ok := el.(interface{ Kind() media.Kind }); ok {
		kind = string(k.Kind())
	}
	return source, kind
}
