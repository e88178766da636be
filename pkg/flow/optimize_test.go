package flow

import (
	"math"
	"testing"

	"github.com/matzehuels/flowgrid/pkg/errors"
)

func TestOptimizeDegenerateSingleElement(t *testing.T) {
	res, err := Optimize([]Element{fakeElement{w: 16, h: 9}}, 1000, 1000, 10)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}

	l := res.Layout
	if len(l.Rows) != 1 || len(l.Rows[0].Elements) != 1 {
		t.Fatalf("expected one row with one element, got %+v", l.Rows)
	}

	// Bounding box equals the element's scaled size at the found height.
	wantWidth := res.Height * 16 / 9
	if math.Abs(l.Width-wantWidth) > 1e-9 {
		t.Errorf("Width = %v, want %v", l.Width, wantWidth)
	}
	if l.Height != res.Height {
		t.Errorf("Height = %v, want %v", l.Height, res.Height)
	}

	// The limiting constraint is the frame width: 16h/9 < 1000, so the
	// analytic maximum is 562.5. The result must be within tolerance.
	if res.Height <= 562.5-Tolerance || res.Height > 562.5 {
		t.Errorf("Height = %v, want within %v of 562.5", res.Height, Tolerance)
	}
}

func TestOptimizeSingleRowScenario(t *testing.T) {
	// Three 16:9 elements, W=300, H=110, spacing 10. The frame height
	// forbids a second row (2h+10 < 110 only below the single-row
	// optimum), so the binding constraint is the single-row width:
	// 3*(16h/9) + 20 < 300, i.e. h < 52.5.
	res, err := Optimize(wide(3), 300, 110, 10)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}
	if len(res.Layout.Rows) != 1 {
		t.Fatalf("expected a single row, got %d", len(res.Layout.Rows))
	}
	if res.Height <= 52.5-Tolerance || res.Height > 52.5 {
		t.Errorf("Height = %v, want within %v of 52.5", res.Height, Tolerance)
	}
}

func TestOptimizeSquareFrameScenario(t *testing.T) {
	// Three 16:9 elements, W=300, H=300, spacing 10. Past the
	// single-row limit (h=52.5) the packer reflows to two and then
	// three rows that still fit, so the binding constraint becomes the
	// frame height of the three-row stack: 3h + 20 < 300, h < 280/3.
	res, err := Optimize(wide(3), 300, 300, 10)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}

	want := 280.0 / 3
	if res.Height <= want-Tolerance || res.Height > want {
		t.Errorf("Height = %v, want within %v of %v", res.Height, Tolerance, want)
	}

	// The found height fits; one tolerance step above must not.
	if res.Layout.Width >= 300 || res.Layout.Height >= 300 {
		t.Errorf("layout %vx%v does not fit strictly inside 300x300",
			res.Layout.Width, res.Layout.Height)
	}
	above, err := Simulate(wide(3), res.Height+Tolerance, 300, 10)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if above.Width < 300 && above.Height < 300 {
		t.Errorf("height %v still fits; result is not maximal", res.Height+Tolerance)
	}
}

func TestOptimizeFitProperty(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		maxW     float64
		maxH     float64
		spacing  float64
	}{
		{name: "uniform landscape", elements: wide(7), maxW: 640, maxH: 480, spacing: 8},
		{name: "single square", elements: []Element{fakeElement{w: 1, h: 1}}, maxW: 200, maxH: 300, spacing: 0},
		{
			name: "mixed ratios",
			elements: []Element{
				fakeElement{w: 32, h: 9},
				fakeElement{w: 1, h: 3},
				fakeElement{w: 4, h: 3},
				fakeElement{w: 9, h: 16},
				fakeElement{w: 3, h: 2},
			},
			maxW: 400, maxH: 400, spacing: 12,
		},
		{
			name: "adversarial extremes",
			elements: []Element{
				fakeElement{w: 50, h: 1},
				fakeElement{w: 1, h: 50},
				fakeElement{w: 50, h: 1},
				fakeElement{w: 1, h: 50},
			},
			maxW: 800, maxH: 600, spacing: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Optimize(tt.elements, tt.maxW, tt.maxH, tt.spacing)
			if err != nil {
				t.Fatalf("Optimize error: %v", err)
			}
			if res.Layout.Width >= tt.maxW {
				t.Errorf("bounding width %v >= %v", res.Layout.Width, tt.maxW)
			}
			if res.Layout.Height >= tt.maxH {
				t.Errorf("bounding height %v >= %v", res.Layout.Height, tt.maxH)
			}
			if got := res.Layout.ElementCount(); got != len(tt.elements) {
				t.Errorf("ElementCount = %d, want %d", got, len(tt.elements))
			}
		})
	}
}

func TestOptimizeEvaluationBound(t *testing.T) {
	// ceil(log2((100000-1)/1)) = 17 bisection steps plus the two bound
	// checks, independent of input size.
	want := int(math.Ceil(math.Log2((SearchCeil-SearchFloor)/Tolerance))) + 2

	for _, n := range []int{1, 3, 25} {
		res, err := Optimize(wide(n), 5000, 5000, 10)
		if err != nil {
			t.Fatalf("Optimize error for n=%d: %v", n, err)
		}
		if res.Evaluations != want {
			t.Errorf("n=%d: Evaluations = %d, want %d", n, res.Evaluations, want)
		}
	}
}

func TestOptimizeInfeasibleLowerBound(t *testing.T) {
	// A 16000:9 element is ~1778 wide even at height 1, so the minimal
	// height already overflows a 300-wide frame.
	els := []Element{fakeElement{w: 16000, h: 9}}

	_, err := Optimize(els, 300, 300, 10)
	if err == nil {
		t.Fatal("expected infeasible lower bound error")
	}
	if !errors.Is(err, errors.ErrCodeInfeasibleFloor) {
		t.Errorf("expected INFEASIBLE_LOWER_BOUND, got %v", errors.GetCode(err))
	}

	// The fallback path still produces a one-row, one-element layout.
	res, err := Fallback(els, 300, 10)
	if err != nil {
		t.Fatalf("Fallback error: %v", err)
	}
	if res.Height != FallbackHeight {
		t.Errorf("fallback height = %v, want %v", res.Height, FallbackHeight)
	}
	if len(res.Layout.Rows) != 1 || len(res.Layout.Rows[0].Elements) != 1 {
		t.Errorf("fallback layout rows = %+v, want one row with one element", res.Layout.Rows)
	}
}

func TestOptimizeInfeasibleUpperBound(t *testing.T) {
	// A frame so large that even the search ceiling fits.
	_, err := Optimize(wide(1), 1e7, 1e7, 10)
	if err == nil {
		t.Fatal("expected infeasible upper bound error")
	}
	if !errors.Is(err, errors.ErrCodeInfeasibleCeil) {
		t.Errorf("expected INFEASIBLE_UPPER_BOUND, got %v", errors.GetCode(err))
	}
}

func TestOptimizeElementErrorPropagates(t *testing.T) {
	els := []Element{fakeElement{w: 16, h: 9}, fakeElement{w: 0, h: 0}}
	_, err := Optimize(els, 800, 600, 10)
	if err == nil {
		t.Fatal("expected element error")
	}
	if !errors.Is(err, errors.ErrCodeUndefinedAspect) {
		t.Errorf("expected UNDEFINED_ASPECT_RATIO, got %v", errors.GetCode(err))
	}
}

func TestOptimizeEmpty(t *testing.T) {
	res, err := Optimize(nil, 800, 600, 10)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}
	if !res.Layout.Empty() || res.Height != 0 {
		t.Errorf("empty input should yield empty result, got %+v", res)
	}
}
