package flow

import (
	"github.com/matzehuels/flowgrid/pkg/errors"
)

// Search bounds for the bisection, in rendered pixel height units.
const (
	// SearchFloor is the smallest candidate height. It must be feasible
	// for the search to proceed.
	SearchFloor = 1.0

	// SearchCeil is the largest candidate height. It must be infeasible
	// for the search to proceed.
	SearchCeil = 100000.0

	// Tolerance is the minimum meaningful distance between candidate
	// heights; sub-unit differences are not observable at render time.
	Tolerance = 1.0

	// FallbackHeight is the fixed height used by [Fallback] to produce a
	// degraded layout when the search bounds are rejected.
	FallbackHeight = 2.0
)

// Result holds the outcome of a height optimization.
type Result struct {
	// Height is the best known feasible uniform element height.
	Height float64

	// Layout is the packing produced at Height.
	Layout Layout

	// Evaluations counts feasibility-oracle invocations, including the
	// two bound precondition checks. It is independent of input size:
	// ceil(log2((SearchCeil-SearchFloor)/Tolerance)) + 2.
	Evaluations int
}

// Optimize finds the largest uniform element height whose packed layout
// fits strictly inside the maxWidth×maxHeight frame, and returns that
// height together with its layout.
//
// Feasibility of a height is decided by a full [Simulate] run: feasible
// iff the bounding width is strictly less than maxWidth and the bounding
// height strictly less than maxHeight. Bisection assumes feasibility is
// monotone in height. The row count moves in discrete steps, so unusual
// aspect-ratio mixes can in principle produce non-monotone bounding
// heights; the search treats this as an accepted approximation and still
// terminates within the evaluation bound.
//
// Two precondition failures are reported as structured errors the caller
// can recover from via [Fallback]:
//
//   - INFEASIBLE_LOWER_BOUND: even SearchFloor overflows the frame.
//   - INFEASIBLE_UPPER_BOUND: SearchCeil still fits, so the ceiling can
//     never be rejected.
//
// Element defects (UNDEFINED_ASPECT_RATIO) propagate as-is and are not
// recoverable by the search.
//
// An empty element list yields an empty Result and no error; there is no
// rectangle to produce.
func Optimize(elements []Element, maxWidth, maxHeight, spacing float64) (Result, error) {
	if len(elements) == 0 {
		return Result{}, nil
	}

	evals := 0
	feasible := func(h float64) (bool, error) {
		evals++
		l, err := Simulate(elements, h, maxWidth, spacing)
		if err != nil {
			return false, err
		}
		return l.Width < maxWidth && l.Height < maxHeight, nil
	}

	ok, err := feasible(SearchFloor)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Evaluations: evals}, errors.New(errors.ErrCodeInfeasibleFloor,
			"lower bound rejected: minimal height %v already overflows %vx%v frame",
			SearchFloor, maxWidth, maxHeight)
	}

	ok, err = feasible(SearchCeil)
	if err != nil {
		return Result{}, err
	}
	if ok {
		return Result{Evaluations: evals}, errors.New(errors.ErrCodeInfeasibleCeil,
			"upper bound accepted: height %v still fits %vx%v frame",
			SearchCeil, maxWidth, maxHeight)
	}

	lo, hi := SearchFloor, SearchCeil
	for hi-lo > Tolerance {
		mid := (lo + hi) / 2
		ok, err := feasible(mid)
		if err != nil {
			return Result{}, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}

	layout, err := Simulate(elements, lo, maxWidth, spacing)
	if err != nil {
		return Result{}, err
	}
	return Result{Height: lo, Layout: layout, Evaluations: evals}, nil
}

// Fallback packs elements at the fixed [FallbackHeight]. It is the
// degraded path after an infeasible-bound failure from [Optimize]: the
// result may overflow the frame, but some layout is always produced
// instead of a blank screen.
func Fallback(elements []Element, maxWidth, spacing float64) (Result, error) {
	layout, err := Simulate(elements, FallbackHeight, maxWidth, spacing)
	if err != nil {
		return Result{}, err
	}
	return Result{Height: FallbackHeight, Layout: layout}, nil
}
