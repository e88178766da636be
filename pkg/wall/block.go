// Package wall turns a computed flow layout into a positioned tree of
// rectangular blocks ready for rendering.
//
// The flow engine decides row grouping and the uniform element height;
// this package assigns concrete coordinates: rows are stacked with
// uniform spacing, each row is centered horizontally, and the whole
// group is centered vertically in the frame. Sinks
// (pkg/wall/sink) serialize the positioned blocks to JSON, SVG, or
// HTML.
package wall

import (
	"github.com/matzehuels/flowgrid/pkg/flow"
)

// Block is a single positioned element in the wall.
// All coordinates are in user units (typically pixels), origin at the
// top-left of the frame, y growing downward.
type Block struct {
	Element     flow.Element
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the block.
func (b Block) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the block.
func (b Block) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the block.
func (b Block) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the block.
func (b Block) CenterY() float64 { return (b.Top + b.Bottom) / 2 }
