// internal/playback/state.go
package playback

import (
	"math"
	"time"
)

// IndicatorTimeout is how long the play/pause indicator stays visible.
const IndicatorTimeout = 800 * time.Millisecond

// Indicator is the transient acknowledgement shown after a manual toggle.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorPlay
	IndicatorPause
)

// String returns the indicator name.
func (i Indicator) String() string {
	switch i {
	case IndicatorNone:
		return "None"
	case IndicatorPlay:
		return "Play"
	case IndicatorPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// State is a snapshot of one feed item's transient playback state.
type State struct {
	Loading   bool
	Playing   bool
	Muted     bool
	Position  time.Duration
	Duration  time.Duration
	Progress  float64 // percent in [0, 100]
	Indicator Indicator
}

// Progress returns position as a percentage of duration.
// It is 0 when the duration is unknown and always within [0, 100].
func Progress(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	p := float64(position) / float64(duration) * 100
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return min(p, 100)
}
