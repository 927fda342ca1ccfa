package app

import (
	"strings"

	"github.com/llehouerou/storyreel/internal/keymap"
	"github.com/llehouerou/storyreel/internal/ui/feedview"
	"github.com/llehouerou/storyreel/internal/ui/overlay"
	"github.com/llehouerou/storyreel/internal/ui/render"
	"github.com/llehouerou/storyreel/internal/ui/styles"
)

const (
	footerHeight = 1
	maxChatWidth = 72
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	pageHeight := m.pageHeight()
	view, _, _ := feedview.Render(m.page(pageHeight))
	if m.ChatOpen {
		view = overlay.Center(view, m.ChatView.View(), m.Width, pageHeight)
	}
	return view + "\n" + m.footer()
}

func (m Model) pageHeight() int {
	return max(m.Height-footerHeight, feedview.MinCardHeight)
}

// page collects what the feed view needs for one frame.
func (m Model) page(height int) feedview.Page {
	active := m.Feed.ActiveIndex()
	items := make([]feedview.Item, len(m.Catalog.Episodes))
	for i, ep := range m.Catalog.Episodes {
		st, mounted := m.Feed.ItemState(i)
		items[i] = feedview.Item{
			Episode: ep,
			State:   st,
			Mounted: mounted,
			Active:  i == active,
			Views:   m.Views[ep.ID],
		}
	}
	return feedview.Page{
		Catalog: m.Catalog,
		Items:   items,
		Top:     func(i int) int { return m.Viewport.Rows(i, height) },
		Width:   m.Width,
		Height:  height,
	}
}

// seekTarget locates the active progress bar, if it is on screen.
func (m Model) seekTarget() (feedview.SeekTarget, bool) {
	if m.Width == 0 || m.Height == 0 {
		return feedview.SeekTarget{}, false
	}
	_, target, ok := feedview.Render(m.page(m.pageHeight()))
	return target, ok
}

func (m Model) footer() string {
	s := styles.T().S()
	switch {
	case m.StatusMsg != "":
		return s.Warning.Render(render.TruncateAndPad(m.StatusMsg, m.Width))
	case m.ShowHelp:
		context := keymap.ContextFeed
		if m.ChatOpen {
			context = keymap.ContextChat
		}
		return s.Muted.Render(render.TruncateAndPad(keymap.HelpLine(keymap.Help(context)), m.Width))
	default:
		hint := "? help · q quit"
		if title := strings.TrimSpace(m.Catalog.Title); title != "" {
			return render.Row(s.Subtle.Render(hint), s.Muted.Render(render.Truncate(title, m.Width/2)), m.Width)
		}
		return s.Subtle.Render(render.TruncateAndPad(hint, m.Width))
	}
}

// chatPanelSize returns the overlay size for a terminal of width x height.
func chatPanelSize(width, height int) (int, int) {
	w := min(max(width-4, 20), maxChatWidth)
	h := max(height-footerHeight-2, 8)
	return w, h
}
