package wall

import (
	"math"
	"testing"

	"github.com/matzehuels/flowgrid/pkg/flow"
)

type stub struct{ w, h float64 }

func (s stub) IntrinsicWidth() float64  { return s.w }
func (s stub) IntrinsicHeight() float64 { return s.h }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildEmpty(t *testing.T) {
	w, err := Build(flow.Layout{}, 800, 600)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(w.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(w.Rows))
	}
}

func TestBuildCentering(t *testing.T) {
	// Two rows: one 160 wide, one 330 wide, height 90 each, spacing 10.
	elements := []flow.Element{stub{16, 9}, stub{16, 9}, stub{16, 9}}
	l, err := flow.Simulate(elements, 90, 500, 10)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	w, err := Build(l, 500, 400)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(w.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(w.Rows))
	}

	// Vertical: bounding height 190 centered in 400 → top at 105.
	first := w.Rows[0][0]
	if !approx(first.Top, 105) {
		t.Errorf("first row top = %v, want 105", first.Top)
	}

	// First (narrowest) row: one 160-wide block centered in 500 → left 170.
	if !approx(first.Left, 170) {
		t.Errorf("narrow row left = %v, want 170", first.Left)
	}
	if !approx(first.Width(), 160) || !approx(first.Height(), 90) {
		t.Errorf("block size = %vx%v, want 160x90", first.Width(), first.Height())
	}

	// Second row: 330 wide centered → left 85; second block at 85+160+10.
	second := w.Rows[1]
	if len(second) != 2 {
		t.Fatalf("second row blocks = %d, want 2", len(second))
	}
	if !approx(second[0].Left, 85) {
		t.Errorf("wide row left = %v, want 85", second[0].Left)
	}
	if !approx(second[1].Left, 255) {
		t.Errorf("second block left = %v, want 255", second[1].Left)
	}
	if !approx(second[0].Top, 205) {
		t.Errorf("second row top = %v, want 205 (105+90+10)", second[0].Top)
	}
}

func TestBuildBlocksInsideFrame(t *testing.T) {
	elements := []flow.Element{
		stub{16, 9}, stub{4, 3}, stub{1, 1}, stub{3, 4}, stub{16, 9},
	}
	res, err := flow.Optimize(elements, 640, 480, 8)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}
	w, err := Build(res.Layout, 640, 480)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for _, b := range w.Blocks() {
		if b.Left < 0 || b.Right > 640 || b.Top < 0 || b.Bottom > 480 {
			t.Errorf("block %v outside frame", b)
		}
	}
	if got := len(w.Blocks()); got != len(elements) {
		t.Errorf("blocks = %d, want %d", got, len(elements))
	}
}

func TestBuildRowOrderPreserved(t *testing.T) {
	elements := []flow.Element{stub{10, 10}, stub{20, 10}, stub{30, 10}}
	l, err := flow.Simulate(elements, 50, 10000, 5)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	w, err := Build(l, 10000, 100)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	// Single row; block order must match element order.
	if len(w.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(w.Rows))
	}
	row := w.Rows[0]
	for i, b := range row {
		if b.Element != elements[i] {
			t.Errorf("block %d holds wrong element", i)
		}
		if i > 0 && b.Left <= row[i-1].Right {
			t.Errorf("block %d does not sit to the right of its predecessor", i)
		}
	}
}
