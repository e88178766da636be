// Package flow computes space-filling grid layouts for fixed-aspect-ratio
// visual elements inside a bounding rectangle.
//
// # Overview
//
// All elements in one layout share a single target height; each element's
// width follows from its intrinsic aspect ratio. The package finds the
// largest common height for which a row-wrapped arrangement of the
// elements fits strictly inside a W×H frame with a required spacing
// between elements and between rows.
//
// Two operations make up the engine:
//
//  1. [Simulate]: a deterministic greedy packer. Given a candidate
//     height, it wraps the ordered element list into rows and reports
//     the bounding box of the result.
//  2. [Optimize]: a bounded bisection search that treats Simulate as a
//     monotone feasibility oracle and converges on the best height.
//
// # Usage
//
//	res, err := flow.Optimize(elements, 1200, 800, 10)
//	if err != nil {
//	    // Infeasible bounds are recoverable: pack at the fallback height.
//	    res, err = flow.Fallback(elements, 1200, 10)
//	}
//	for _, row := range res.Layout.Rows { ... }
//
// Every call is a pure function of its inputs: nothing is cached or
// shared, and repeated calls with identical inputs produce identical
// layouts.
package flow
