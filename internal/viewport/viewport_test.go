package viewport

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNew_ClampsStart(t *testing.T) {
	if got := New(4, 9).Offset(); got != 3 {
		t.Errorf("New(4, 9).Offset() = %v, want 3", got)
	}
	if got := New(4, -2).Offset(); got != 0 {
		t.Errorf("New(4, -2).Offset() = %v, want 0", got)
	}
	if New(4, 1).Animating() {
		t.Error("new viewport should be at rest")
	}
}

func TestObservations_AtRest(t *testing.T) {
	v := New(5, 2)

	obs := v.Observations()

	if len(obs) != 3 {
		t.Fatalf("Observations() = %+v, want 3 entries", obs)
	}
	want := []struct {
		index int
		ratio float64
	}{{1, 0}, {2, 1}, {3, 0}}
	for i, w := range want {
		if obs[i].Index != w.index || !near(obs[i].Ratio, w.ratio) {
			t.Errorf("obs[%d] = %+v, want index %d ratio %v", i, obs[i], w.index, w.ratio)
		}
	}
}

func TestObservations_BetweenPages(t *testing.T) {
	v := New(5, 0)
	v.Drag(0.3)

	for i, want := range []float64{0.7, 0.3, 0} {
		if got := v.Visible(i); !near(got, want) {
			t.Errorf("Visible(%d) = %v, want %v", i, got, want)
		}
	}

	total := 0.0
	for _, o := range v.Observations() {
		total += o.Ratio
	}
	if !near(total, 1) {
		t.Errorf("sum of ratios = %v, want 1", total)
	}
}

func TestObservations_Empty(t *testing.T) {
	if obs := New(0, 0).Observations(); obs != nil {
		t.Errorf("Observations() on empty viewport = %+v, want nil", obs)
	}
}

func TestScrollTo_ClampsAndAnimates(t *testing.T) {
	v := New(3, 0)

	if got := v.ScrollTo(10); got != 2 {
		t.Errorf("ScrollTo(10) = %d, want 2", got)
	}
	if !v.Animating() {
		t.Error("ScrollTo() did not start the animation")
	}
	if got := v.ScrollTo(-1); got != 0 {
		t.Errorf("ScrollTo(-1) = %d, want 0", got)
	}
}

func TestScrollBy(t *testing.T) {
	v := New(4, 1)

	for _, want := range []int{2, 3, 3} {
		if got := v.ScrollBy(1); got != want {
			t.Errorf("ScrollBy(1) = %d, want %d", got, want)
		}
	}
}

func TestStep_SettlesOnTarget(t *testing.T) {
	v := New(4, 0)
	v.ScrollTo(1)

	frames := 0
	for v.Step() {
		frames++
		if frames >= 10*FrameRate {
			t.Fatal("spring never settled")
		}
		if off := v.Offset(); off < -0.5 || off > 1.5 {
			t.Fatalf("frame %d: offset %v overshoots", frames, off)
		}
	}

	if v.Offset() != 1 {
		t.Errorf("Offset() = %v, want 1", v.Offset())
	}
	if v.Animating() {
		t.Error("still animating after settling")
	}
	if frames == 0 {
		t.Error("no frames were stepped")
	}
}

func TestStep_AtRest(t *testing.T) {
	if New(2, 0).Step() {
		t.Error("Step() at rest = true")
	}
}

func TestDrag_RetargetsNearest(t *testing.T) {
	v := New(4, 1)

	v.Drag(0.6)
	if v.Target() != 2 {
		t.Errorf("Target() after +0.6 = %d, want 2", v.Target())
	}

	v.Drag(-0.3)
	if v.Target() != 1 {
		t.Errorf("Target() after -0.3 = %d, want 1", v.Target())
	}

	v.Drag(-5)
	if v.Offset() != 0 {
		t.Errorf("Offset() after -5 = %v, want 0", v.Offset())
	}
}

func TestJump(t *testing.T) {
	v := New(4, 0)
	v.Jump(3)

	if v.Offset() != 3 {
		t.Errorf("Offset() = %v, want 3", v.Offset())
	}
	if v.Animating() {
		t.Error("Jump() should not animate")
	}
}

func TestRows(t *testing.T) {
	v := New(4, 1)
	v.Drag(0.5)

	if got := v.Rows(1, 20); got != -10 {
		t.Errorf("Rows(1, 20) = %d, want -10", got)
	}
	if got := v.Rows(2, 20); got != 10 {
		t.Errorf("Rows(2, 20) = %d, want 10", got)
	}
}
