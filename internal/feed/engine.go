package feed

import "math"

// DefaultThreshold is the visible fraction an item needs to become active.
const DefaultThreshold = 0.6

// Observation is one item's visible fraction of its own footprint, as
// reported by the viewport.
type Observation struct {
	Index int
	Ratio float64
}

// selectActive picks the item a batch of observations makes active.
//
// Among observations at or above threshold, the highest ratio wins and ties
// go to the lowest index. Observations for indexes outside [0, n) and NaN
// ratios are ignored. ok is false when nothing qualifies.
func selectActive(batch []Observation, threshold float64, n int) (index int, ok bool) {
	index = -1
	best := 0.0
	for _, o := range batch {
		if o.Index < 0 || o.Index >= n || math.IsNaN(o.Ratio) || o.Ratio < threshold {
			continue
		}
		if index == -1 || o.Ratio > best || (o.Ratio == best && o.Index < index) {
			index = o.Index
			best = o.Ratio
		}
	}
	return index, index != -1
}

// clampThreshold applies the default and keeps t within [0.5, 1].
func clampThreshold(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return DefaultThreshold
	}
	return min(max(t, 0.5), 1)
}
