// Package progressbar renders the episode progress line and maps clicks on
// it back to a seek percentage.
package progressbar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storyreel/internal/ui/styles"
)

var (
	filledBlock = "━"
	emptyBlock  = "─"
)

// Layout locates the bar inside a rendered progress line.
type Layout struct {
	Start int // column of the first bar cell
	Width int // number of bar cells (0 when the bar is hidden)
}

// Render draws a progress line.
// Format: ▶ 0:12 ━━━━━━──────── 0:48
// progress is a percentage in [0, 100]; an unknown duration shows "--:--".
func Render(progress float64, position, duration time.Duration, width int, playing bool) (string, Layout) {
	status := "▶"
	if !playing {
		status = "⏸"
	}

	posStr := FormatDuration(position)
	durStr := "--:--"
	if duration > 0 {
		durStr = FormatDuration(duration)
	}

	prefix := status + " " + posStr + " "
	suffix := " " + durStr
	barWidth := width - lipgloss.Width(prefix) - lipgloss.Width(suffix)

	if barWidth < 3 {
		return status + " " + posStr + " / " + durStr, Layout{}
	}

	filled := Filled(progress, barWidth)
	colors := styles.Blend(max(filled, 1), styles.T().Primary, styles.T().Secondary)

	var bar strings.Builder
	for i := range filled {
		bar.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(filledBlock))
	}
	bar.WriteString(styles.T().S().Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled)))

	return prefix + bar.String() + suffix, Layout{Start: lipgloss.Width(prefix), Width: barWidth}
}

// Filled returns how many of width cells are filled at progress percent.
func Filled(progress float64, width int) int {
	if width <= 0 || math.IsNaN(progress) {
		return 0
	}
	p := math.Max(0, math.Min(100, progress))
	return min(int(float64(width)*p/100), width)
}

// PercentAt returns the seek percentage for a click at column x of a line
// with the given layout. ok is false when x is outside the bar.
func (l Layout) PercentAt(x int) (float64, bool) {
	if l.Width <= 0 || x < l.Start || x >= l.Start+l.Width {
		return 0, false
	}
	if l.Width == 1 {
		return 0, true
	}
	return float64(x-l.Start) / float64(l.Width-1) * 100, true
}

// FormatDuration formats d as m:ss, or h:mm:ss from one hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
