package flow

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flowgrid/pkg/errors"
)

// ScaledWidth returns the rendered width of el at the given uniform
// height, preserving the element's intrinsic aspect ratio exactly.
// An element reporting a non-positive dimension yields an
// UNDEFINED_ASPECT_RATIO error.
func ScaledWidth(el Element, height float64) (float64, error) {
	w, h := el.IntrinsicWidth(), el.IntrinsicHeight()
	if w <= 0 || h <= 0 {
		return 0, errors.New(errors.ErrCodeUndefinedAspect,
			"element reports non-positive intrinsic size %vx%v", w, h)
	}
	return height * w / h, nil
}

// Simulate packs the ordered element list into rows at the given uniform
// element height and reports the resulting bounding box.
//
// The packing is greedy and deterministic: elements are taken in input
// order, appended to the current row while the row's right edge plus
// spacing plus the element's scaled width stays strictly under maxWidth,
// and wrapped to a fresh row otherwise. The partition into rows is a
// contiguous split of the input order; no element moves between
// non-adjacent positions.
//
// Completed rows are reordered as a whole by ascending total width
// (stable, narrowest first). Element order within a row is untouched.
//
// An element wider than maxWidth at this height still occupies its own
// row; the resulting oversized bounding width signals infeasibility to
// the caller rather than crashing.
func Simulate(elements []Element, eltHeight, maxWidth, spacing float64) (Layout, error) {
	l := Layout{ElementHeight: eltHeight, Spacing: spacing}
	if len(elements) == 0 {
		return l, nil
	}

	var rows []Row
	var cur Row
	x1 := 0.0 // right edge of the current row

	for _, el := range elements {
		w, err := ScaledWidth(el, eltHeight)
		if err != nil {
			return Layout{}, err
		}

		switch {
		case len(cur.Elements) == 0:
			// First element of a row is placed unconditionally, even if
			// it alone exceeds maxWidth.
			cur = Row{Elements: []Element{el}, Width: w}
			x1 = w
		case x1+spacing+w < maxWidth:
			cur.Elements = append(cur.Elements, el)
			x1 += spacing + w
			cur.Width = x1
		default:
			rows = append(rows, cur)
			cur = Row{Elements: []Element{el}, Width: w}
			x1 = w
		}
	}
	rows = append(rows, cur)

	// Narrowest row first. Stable so equal-width rows keep their
	// relative order.
	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(a.Width, b.Width)
	})

	for _, r := range rows {
		if r.Width > l.Width {
			l.Width = r.Width
		}
	}
	n := float64(len(rows))
	l.Rows = rows
	l.Height = eltHeight*n + spacing*(n-1)
	return l, nil
}
