// Package feedview renders the vertical episode feed: one full-height card
// per episode, shifted by the scroll offset.
package feedview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/playback"
	"github.com/llehouerou/storyreel/internal/ui/progressbar"
	"github.com/llehouerou/storyreel/internal/ui/render"
	"github.com/llehouerou/storyreel/internal/ui/styles"
)

// MinCardHeight is the smallest page height cards are laid out for.
const MinCardHeight = 8

// Item is what a card needs to know about one episode.
type Item struct {
	Episode catalog.Episode
	State   playback.State
	Mounted bool
	Active  bool
	Views   int
}

// Page is one frame of the feed.
type Page struct {
	Catalog *catalog.Catalog
	Items   []Item
	// Top returns the row at which item i starts, relative to the page top.
	Top    func(i int) int
	Width  int
	Height int
}

// SeekTarget locates the active card's progress bar on screen.
type SeekTarget struct {
	Row    int
	Layout progressbar.Layout
}

// Render draws the page. The returned target is valid only when ok is true,
// which requires the active card to be fully visible.
func Render(p Page) (view string, target SeekTarget, ok bool) {
	height := max(p.Height, 1)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", p.Width)
	}

	for i, item := range p.Items {
		top := p.Top(i)
		if top >= height || top+height <= 0 {
			continue
		}
		card, layout := Card(p.Catalog, item, i, len(p.Items), p.Width, height)
		for j, line := range strings.Split(card, "\n") {
			row := top + j
			if row >= 0 && row < height {
				lines[row] = line
			}
		}
		if item.Active && top == 0 && layout.Width > 0 {
			target = SeekTarget{Row: height - 2, Layout: progressbar.Layout{
				Start: layout.Start + 2,
				Width: layout.Width,
			}}
			ok = true
		}
	}

	return strings.Join(lines, "\n"), target, ok
}

// Card renders a single episode card of exactly width x height cells.
func Card(cat *catalog.Catalog, item Item, index, total, width, height int) (string, progressbar.Layout) {
	t := styles.T()
	s := t.S()
	innerWidth := max(width-4, 1)
	innerHeight := max(height-2, 1)

	header := episodeHeader(cat, item, index, total, innerWidth)
	progress, layout := progressLine(item, innerWidth)

	body := []string{header, ""}
	body = append(body, statusLines(item, innerWidth)...)
	body = append(body, "")
	body = append(body, triggerLines(cat, item.Episode, innerWidth)...)

	footer := []string{}
	if item.Views > 0 {
		footer = append(footer, s.Subtle.Render(render.Truncate(viewsLabel(item.Views), innerWidth)))
	}
	footer = append(footer, progress)

	// Keep the progress bar on the last inner line whatever the height.
	space := innerHeight - len(footer)
	if len(body) > space {
		body = body[:max(space, 0)]
	}
	for len(body) < space {
		body = append(body, "")
	}
	content := strings.Join(append(body, footer...), "\n")

	card := t.CardStyle(item.Active).
		Width(width - 2).
		Height(innerHeight).
		MaxHeight(height).
		Render(content)
	return card, layout
}

func episodeHeader(cat *catalog.Catalog, item Item, index, total, width int) string {
	s := styles.T().S()
	pos := fmt.Sprintf("%d/%d", index+1, total)
	label := render.Sanitize(item.Episode.Label)
	if label == "" {
		label = item.Episode.ID
	}

	title := ""
	if cat != nil {
		title = render.Sanitize(cat.Title)
	}
	avail := max(width-lipgloss.Width(pos)-lipgloss.Width(label)-4, 0)
	title = render.Truncate(title, avail)

	left := s.Muted.Render(title)
	if item.Active && title != "" {
		left = styles.ApplyBoldGradient(title, styles.T().Primary, styles.T().Secondary)
	}
	labelStyle := s.Title
	if item.Active {
		labelStyle = s.Active
	}
	right := labelStyle.Render(label) + s.Subtle.Render("  "+pos)
	return render.Row(left, right, width)
}

func statusLines(item Item, width int) []string {
	s := styles.T().S()
	var status string
	switch {
	case !item.Mounted:
		status = s.Subtle.Render("·")
	case item.State.Loading:
		status = s.Warning.Render("◌ loading")
	case item.State.Indicator == playback.IndicatorPlay:
		status = s.Indicator.Render("▶")
	case item.State.Indicator == playback.IndicatorPause:
		status = s.Indicator.Render("⏸")
	case item.Active && !item.State.Playing:
		status = s.Muted.Render("paused · space to play")
	}

	lines := []string{render.Center(status, width)}
	if item.Mounted && item.State.Muted {
		lines = append(lines, render.Center(s.Warning.Render("muted · m to unmute"), width))
	} else {
		lines = append(lines, "")
	}
	return lines
}

func triggerLines(cat *catalog.Catalog, ep catalog.Episode, width int) []string {
	s := styles.T().S()
	lines := make([]string, 0, len(ep.Triggers))
	for i, tr := range ep.Triggers {
		if i >= 9 {
			break
		}
		name := tr.CharacterID
		initial := "?"
		if cat != nil {
			if ch, ok := cat.Character(tr.CharacterID); ok {
				name = ch.Name
				initial = ch.Initial()
			}
		}
		label := tr.Label
		if label == "" {
			label = "Talk to " + name
		}
		prefix := s.Subtle.Render(fmt.Sprintf("%d ", i+1)) + s.Badge.Render(initial) + " "
		text := render.Truncate(label, max(width-lipgloss.Width(prefix), 1))
		lines = append(lines, prefix+s.Base.Render(text))
	}
	return lines
}

func progressLine(item Item, width int) (string, progressbar.Layout) {
	st := item.State
	if !item.Mounted {
		st = playback.State{}
	}
	return progressbar.Render(st.Progress, st.Position, st.Duration, width, st.Playing)
}

func viewsLabel(n int) string {
	if n == 1 {
		return "seen once"
	}
	return fmt.Sprintf("seen %d times", n)
}
