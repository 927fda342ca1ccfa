package playback

import (
	"math"
	"testing"
	"time"
)

func TestIndicator_String(t *testing.T) {
	tests := []struct {
		ind  Indicator
		want string
	}{
		{IndicatorNone, "None"},
		{IndicatorPlay, "Play"},
		{IndicatorPause, "Pause"},
		{Indicator(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ind.String(); got != tt.want {
				t.Errorf("Indicator.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		want     float64
	}{
		{"unknown duration", 5 * time.Second, 0, 0},
		{"negative duration", 5 * time.Second, -time.Second, 0},
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 50},
		{"end", time.Minute, time.Minute, 100},
		{"past end", 2 * time.Minute, time.Minute, 100},
		{"negative position", -time.Second, time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.position, tt.duration)
			if math.IsNaN(got) {
				t.Fatal("Progress() is NaN")
			}
			if got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}
