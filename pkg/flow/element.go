package flow

// Element is a visual item participating in layout. Implementations
// report the item's natural dimensions in source units; only their ratio
// matters to the packer. Concrete element kinds (image, video, ...) live
// outside this package so new media types can be added without touching
// the engine.
//
// Both dimensions must be positive for an element to be layoutable. A
// zero dimension is reported by [Simulate] as an UNDEFINED_ASPECT_RATIO
// error rather than silently producing a NaN width.
type Element interface {
	IntrinsicWidth() float64
	IntrinsicHeight() float64
}

// Row is an ordered run of elements sharing one rendered height. Element
// order matches a contiguous slice of the original input sequence.
type Row struct {
	// Elements in input order.
	Elements []Element

	// Width is the total rendered width: the sum of scaled element
	// widths plus interior spacing.
	Width float64
}

// Layout is the result of one packing simulation.
type Layout struct {
	// Rows ordered by ascending total width (narrowest first), so that a
	// renderer centering each row produces a balanced pyramid flow.
	Rows []Row

	// Width is the bounding width: the maximum row width.
	Width float64

	// Height is the bounding height: ElementHeight per row plus spacing
	// between rows.
	Height float64

	// ElementHeight is the uniform scaled height applied to every element.
	ElementHeight float64

	// Spacing is the gap between elements within a row and between rows.
	Spacing float64
}

// Empty reports whether the layout contains no elements.
func (l Layout) Empty() bool { return len(l.Rows) == 0 }

// ElementCount returns the total number of elements across all rows.
func (l Layout) ElementCount() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r.Elements)
	}
	return n
}
