package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storyreel/internal/completion"
	"github.com/llehouerou/storyreel/internal/errmsg"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/keymap"
	"github.com/llehouerou/storyreel/internal/media"
	"github.com/llehouerou/storyreel/internal/mpris"
)

const (
	// SeekStep is how far the seek keys move the playhead.
	SeekStep = 5 * time.Second
	// WheelStep is how far one wheel notch scrolls the feed, in pages.
	WheelStep = 0.25

	autoplayBlockedStatus = "Autoplay blocked: press space to play"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resizeChat()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case TickMsg:
		m.Feed.Poll()
		return m, TickCmd()
	case FrameMsg:
		return m.handleFrame()
	case IndicatorTimeoutMsg:
		m.Feed.ClearIndicator(msg.Index, msg.Ticket)
		return m, nil
	case ChatReplyMsg:
		return m.handleChatReply(msg)
	case RemoteCommandMsg:
		cmd := m.handleRemote(msg.Command)
		return m, tea.Batch(cmd, m.WatchRemote())
	case StatusTimeoutMsg:
		if msg.Version == m.statusVersion {
			m.StatusMsg = ""
		}
		return m, nil
	case FeedMessage:
		return m.handleFeedMessage(msg)
	}

	if m.ChatOpen {
		var cmd tea.Cmd
		m.ChatView, cmd = m.ChatView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press counts as a user gesture for the autoplay policy.
	m.Policy.Activate()

	if m.ChatOpen {
		return m.handleChatKey(msg)
	}

	action, slot := m.feedKeys.Lookup(msg.String())
	switch action {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
	case keymap.ActionNextItem:
		return m, m.scrollTo(m.Viewport.Target() + 1)
	case keymap.ActionPrevItem:
		return m, m.scrollTo(m.Viewport.Target() - 1)
	case keymap.ActionFirstItem:
		return m, m.scrollTo(0)
	case keymap.ActionLastItem:
		return m, m.scrollTo(m.Viewport.Len() - 1)
	case keymap.ActionPlayPause:
		return m, m.togglePlay()
	case keymap.ActionToggleMute:
		m.Feed.ToggleMute()
	case keymap.ActionSeekForward:
		m.Feed.SeekBy(SeekStep)
	case keymap.ActionSeekBack:
		m.Feed.SeekBy(-SeekStep)
	case keymap.ActionSeekStart:
		m.Feed.Seek(0)
	case keymap.ActionBranch:
		if _, err := m.Feed.SelectTrigger(slot); err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpChatOpen, err))
		}
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.chatKeys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit
	case keymap.ActionChatSend:
		return m.sendChat()
	case keymap.ActionChatClose:
		m.closeChat()
		return m, nil
	}

	var cmd tea.Cmd
	m.ChatView, cmd = m.ChatView.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ChatOpen {
		var cmd tea.Cmd
		m.ChatView, cmd = m.ChatView.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m, m.drag(WheelStep)
	case tea.MouseButtonWheelUp:
		return m, m.drag(-WheelStep)
	case tea.MouseButtonLeft:
		m.Policy.Activate()
		if target, ok := m.seekTarget(); ok && msg.Y == target.Row {
			if percent, ok := target.Layout.PercentAt(msg.X); ok {
				m.Feed.Seek(percent)
				return m, nil
			}
		}
		return m, m.togglePlay()
	}
	return m, nil
}

// handleRemote applies an MPRIS request the way the matching key would.
func (m *Model) handleRemote(c mpris.Command) tea.Cmd {
	active := m.Feed.Active()
	playing := active.State.Playing

	switch c.Kind {
	case mpris.CommandNext:
		return m.scrollTo(m.Viewport.Target() + 1)
	case mpris.CommandPrevious:
		return m.scrollTo(m.Viewport.Target() - 1)
	case mpris.CommandPlayPause:
		return m.togglePlay()
	case mpris.CommandPlay:
		if !playing {
			return m.togglePlay()
		}
	case mpris.CommandPause:
		if playing {
			return m.togglePlay()
		}
	case mpris.CommandSeek:
		m.Feed.SeekBy(c.Offset)
	case mpris.CommandSetPosition:
		duration := active.State.Duration
		if duration <= 0 {
			duration = active.Episode.Length()
		}
		if duration > 0 {
			m.Feed.Seek(float64(c.Position) / float64(duration) * 100)
		}
	}
	return nil
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	moving := m.Viewport.Step()
	m.Feed.Observe(m.Viewport.Observations())
	if moving {
		return m, FrameCmd()
	}
	m.animating = false
	return m, nil
}

func (m Model) handleChatReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	if !m.Chat.Resolve(msg.Reply) {
		return m, nil
	}
	m.refreshChat()

	err := msg.Reply.Err
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, completion.ErrNotConfigured):
		return m, m.setStatus("Set gemini.api_key or GEMINI_API_KEY to chat with characters")
	default:
		return m, m.setStatus(errmsg.Format(errmsg.OpChatReply, err))
	}
}

func (m Model) handleFeedMessage(msg FeedMessage) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case ActiveChangedMsg:
		m.recordView(msg.Current)
		m.saveResume()
	case MuteChangedMsg:
		m.saveResume()
	case BranchSelectedMsg:
		cmd = m.openChat(feed.BranchSelected(msg))
	case FeedErrorMsg:
		cmd = m.feedErrorStatus(feed.ErrorEvent(msg))
	case FeedClosedMsg:
		return m, nil
	}
	return m, tea.Batch(cmd, m.WatchFeedEvents())
}

func (m *Model) feedErrorStatus(e feed.ErrorEvent) tea.Cmd {
	if errors.Is(e.Err, media.ErrAutoplayDenied) {
		return m.setStatus(autoplayBlockedStatus)
	}
	return m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, e.Err))
}

// scrollTo starts snapping the viewport to item i.
func (m *Model) scrollTo(i int) tea.Cmd {
	m.Viewport.ScrollTo(i)
	return m.startAnimation()
}

// drag moves the viewport directly and lets the spring snap it afterwards.
func (m *Model) drag(delta float64) tea.Cmd {
	m.Viewport.Drag(delta)
	m.Feed.Observe(m.Viewport.Observations())
	return m.startAnimation()
}

// startAnimation starts the frame loop unless one is already running.
func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return FrameCmd()
}

func (m *Model) togglePlay() tea.Cmd {
	index, ticket, err := m.Feed.TogglePlay()
	if err != nil {
		// Reported through the feed's error events.
		return nil
	}
	return IndicatorTimeoutCmd(index, ticket)
}

func (m *Model) openChat(ev feed.BranchSelected) tea.Cmd {
	s := m.Chat.Open(ev.Character, ev.Episode.Label, ev.Trigger.Hook)
	m.ChatOpen = true
	m.ShowHelp = false
	m.resizeChat()
	return m.ChatView.Open(s)
}

func (m *Model) closeChat() {
	m.Chat.Close()
	m.ChatView.Close()
	m.ChatOpen = false
}

func (m Model) sendChat() (tea.Model, tea.Cmd) {
	req, ok := m.Chat.Submit(m.ChatView.Value())
	if !ok {
		return m, nil
	}
	m.ChatView.ClearInput()
	m.refreshChat()
	return m, CompleteCmd(m.Backend, req, m.ReplyTimeout)
}

func (m *Model) refreshChat() {
	if s, ok := m.Chat.Current(); ok {
		m.ChatView.SetSession(s)
	}
}

func (m *Model) resizeChat() {
	w, h := chatPanelSize(m.Width, m.Height)
	m.ChatView.SetSize(w, h)
}

// setStatus shows a message in the footer for StatusTimeout.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusVersion++
	m.StatusMsg = text
	return StatusTimeoutCmd(m.statusVersion)
}
