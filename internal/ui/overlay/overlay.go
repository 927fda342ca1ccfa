// Package overlay composes a floating panel over a rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws panel over base with its top-left corner at (x, y). Cells
// covered by the panel are replaced, spaces included; the rest of base is
// kept. The result is exactly width columns wide and as tall as base.
func Compose(base, panel string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	panelLines := strings.Split(panel, "\n")

	for i, panelLine := range panelLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}

		panelWidth := ansi.StringWidth(panelLine)
		if panelWidth == 0 {
			continue
		}

		baseLine := pad(baseLines[row], width)
		end := min(x+panelWidth, width)
		if end <= x {
			continue
		}

		line := ansi.Cut(baseLine, 0, x) + ansi.Cut(panelLine, 0, end-x)
		if end < width {
			line += ansi.Cut(baseLine, end, width)
		}
		baseLines[row] = line
	}

	return strings.Join(baseLines, "\n")
}

// Center composes panel in the middle of base.
func Center(base, panel string, width, height int) string {
	panelWidth, panelHeight := 0, 0
	for line := range strings.SplitSeq(panel, "\n") {
		panelWidth = max(panelWidth, ansi.StringWidth(line))
		panelHeight++
	}
	x := max((width-panelWidth)/2, 0)
	y := max((height-panelHeight)/2, 0)
	return Compose(base, panel, x, y, width)
}

func pad(line string, width int) string {
	if w := ansi.StringWidth(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
