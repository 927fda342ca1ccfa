// Package viewport models the vertical feed's scroll position. Every item is
// exactly one page tall; the package turns the scroll offset into per-item
// visibility ratios and animates snapping between pages with a spring.
package viewport

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/llehouerou/storyreel/internal/feed"
)

// FrameRate is the animation rate used by Step.
const FrameRate = 60

// FrameInterval is the delay between two animation frames.
const FrameInterval = time.Second / FrameRate

const (
	angularFrequency = 7.0
	dampingRatio     = 0.85
	// settle distance and speed, in pages
	settleEpsilon = 0.002
)

// Viewport tracks the scroll offset of a feed of n one-page items. Offsets
// are measured in pages: item i spans [i, i+1).
type Viewport struct {
	n        int
	offset   float64
	velocity float64
	target   float64
	spring   harmonica.Spring
}

// New creates a viewport for n items, resting on item start.
func New(n, start int) *Viewport {
	v := &Viewport{
		n:      n,
		spring: harmonica.NewSpring(harmonica.FPS(FrameRate), angularFrequency, dampingRatio),
	}
	start = v.clampIndex(start)
	v.offset = float64(start)
	v.target = v.offset
	return v
}

// Len returns the number of items.
func (v *Viewport) Len() int {
	return v.n
}

// Offset returns the scroll offset in pages.
func (v *Viewport) Offset() float64 {
	return v.offset
}

// Target returns the index the viewport is snapping to.
func (v *Viewport) Target() int {
	return int(math.Round(v.target))
}

// Animating reports whether a snap is in progress.
func (v *Viewport) Animating() bool {
	return v.offset != v.target || v.velocity != 0
}

// ScrollTo starts snapping to item i (clamped). It returns the new target.
func (v *Viewport) ScrollTo(i int) int {
	v.target = float64(v.clampIndex(i))
	return int(v.target)
}

// ScrollBy moves the target by delta items.
func (v *Viewport) ScrollBy(delta int) int {
	return v.ScrollTo(v.Target() + delta)
}

// Drag moves the offset directly by delta pages, as a wheel or swipe does,
// and retargets the nearest page.
func (v *Viewport) Drag(delta float64) {
	if v.n == 0 {
		return
	}
	v.offset = clamp(v.offset+delta, 0, float64(v.n-1))
	v.velocity = 0
	v.target = math.Round(v.offset)
}

// Step advances the animation by one frame. It returns false once settled.
func (v *Viewport) Step() bool {
	if !v.Animating() {
		return false
	}
	v.offset, v.velocity = v.spring.Update(v.offset, v.velocity, v.target)
	if math.Abs(v.offset-v.target) < settleEpsilon && math.Abs(v.velocity) < settleEpsilon*FrameRate {
		v.offset = v.target
		v.velocity = 0
		return false
	}
	return true
}

// Jump moves to item i without animation.
func (v *Viewport) Jump(i int) {
	v.target = float64(v.clampIndex(i))
	v.offset = v.target
	v.velocity = 0
}

// Observations reports the visible ratio of every item intersecting the
// page, plus a zero ratio for the items just outside it.
func (v *Viewport) Observations() []feed.Observation {
	if v.n == 0 {
		return nil
	}
	first := max(int(math.Floor(v.offset))-1, 0)
	last := min(int(math.Ceil(v.offset))+1, v.n-1)

	obs := make([]feed.Observation, 0, last-first+1)
	for i := first; i <= last; i++ {
		obs = append(obs, feed.Observation{Index: i, Ratio: v.Visible(i)})
	}
	return obs
}

// Visible returns the fraction of item i inside the page.
func (v *Viewport) Visible(i int) float64 {
	top := float64(i)
	overlap := math.Min(v.offset+1, top+1) - math.Max(v.offset, top)
	return clamp(overlap, 0, 1)
}

// Rows returns, for a page of height rows, the row at which item i starts
// relative to the top of the page (may be negative or beyond height).
func (v *Viewport) Rows(i, height int) int {
	return int(math.Round((float64(i) - v.offset) * float64(height)))
}

func (v *Viewport) clampIndex(i int) int {
	if v.n == 0 {
		return 0
	}
	return min(max(i, 0), v.n-1)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
