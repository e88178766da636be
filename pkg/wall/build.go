package wall

import (
	"github.com/matzehuels/flowgrid/pkg/flow"
)

// Wall is a fully positioned layout inside a frame.
type Wall struct {
	FrameWidth    float64
	FrameHeight   float64
	ElementHeight float64
	Spacing       float64

	// Rows holds positioned blocks grouped by layout row, in the row
	// order of the source layout (narrowest first).
	Rows [][]Block
}

// Blocks returns all blocks flattened in row order.
func (w Wall) Blocks() []Block {
	var out []Block
	for _, row := range w.Rows {
		out = append(out, row...)
	}
	return out
}

// Build assigns coordinates to every element of a layout inside a
// frameWidth×frameHeight frame. Rows keep the layout's order and
// spacing; each row is centered horizontally and the row group is
// centered vertically.
//
// A degraded (fallback) layout may be larger than the frame; blocks
// then extend past the frame edges rather than being dropped.
func Build(l flow.Layout, frameWidth, frameHeight float64) (Wall, error) {
	w := Wall{
		FrameWidth:    frameWidth,
		FrameHeight:   frameHeight,
		ElementHeight: l.ElementHeight,
		Spacing:       l.Spacing,
	}
	if l.Empty() {
		return w, nil
	}

	y := (frameHeight - l.Height) / 2
	for _, row := range l.Rows {
		x := (frameWidth - row.Width) / 2
		blocks := make([]Block, 0, len(row.Elements))
		for _, el := range row.Elements {
			ew, err := flow.ScaledWidth(el, l.ElementHeight)
			if err != nil {
				return Wall{}, err
			}
			blocks = append(blocks, Block{
				Element: el,
				Left:    x,
				Right:   x + ew,
				Top:     y,
				Bottom:  y + l.ElementHeight,
			})
			x += ew + l.Spacing
		}
		w.Rows = append(w.Rows, blocks)
		y += l.ElementHeight + l.Spacing
	}
	return w, nil
}
