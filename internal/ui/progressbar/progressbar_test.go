package progressbar

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/storyreel/internal/ui/testutil"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{48 * time.Second, "0:48"},
		{83 * time.Second, "1:23"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d), "FormatDuration(%v)", tt.d)
	}
}

func TestFilled(t *testing.T) {
	tests := []struct {
		progress float64
		width    int
		want     int
	}{
		{0, 10, 0},
		{50, 10, 5},
		{100, 10, 10},
		{150, 10, 10},
		{-5, 10, 0},
		{math.NaN(), 10, 0},
		{50, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filled(tt.progress, tt.width), "Filled(%v, %d)", tt.progress, tt.width)
	}
}

func TestRender_Layout(t *testing.T) {
	line, layout := Render(50, 24*time.Second, 48*time.Second, 40, true)
	plain := testutil.StripANSI(line)

	assert.True(t, strings.HasPrefix(plain, "▶ 0:24 "))
	assert.True(t, strings.HasSuffix(plain, " 0:48"))
	assert.Equal(t, 40, testutil.Width(plain))
	assert.Equal(t, 7, layout.Start)
	assert.Equal(t, 40-7-5, layout.Width)
	assert.Equal(t, layout.Width/2, strings.Count(plain, "━"))
}

func TestRender_UnknownDuration(t *testing.T) {
	line, _ := Render(0, 0, 0, 30, false)
	plain := testutil.StripANSI(line)

	assert.True(t, strings.HasPrefix(plain, "⏸ 0:00"))
	assert.True(t, strings.HasSuffix(plain, "--:--"))
	assert.NotContains(t, plain, "━")
}

func TestRender_TooNarrow(t *testing.T) {
	line, layout := Render(10, time.Second, 10*time.Second, 8, true)

	assert.Equal(t, "▶ 0:01 / 0:10", testutil.StripANSI(line))
	assert.Zero(t, layout.Width)
}

func TestLayout_PercentAt(t *testing.T) {
	l := Layout{Start: 7, Width: 11}

	tests := []struct {
		x    int
		want float64
		ok   bool
	}{
		{6, 0, false},
		{7, 0, true},
		{12, 50, true},
		{17, 100, true},
		{18, 0, false},
	}

	for _, tt := range tests {
		got, ok := l.PercentAt(tt.x)
		assert.Equal(t, tt.ok, ok, "PercentAt(%d) ok", tt.x)
		assert.InDelta(t, tt.want, got, 1e-9, "PercentAt(%d)", tt.x)
	}

	_, ok := Layout{}.PercentAt(0)
	assert.False(t, ok)
}
