package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/playback"
	"github.com/llehouerou/storyreel/internal/viewport"
)

// TickInterval is how often media elements are polled.
const TickInterval = 100 * time.Millisecond

// StatusTimeout is how long a status message stays visible.
const StatusTimeout = 4 * time.Second

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// FrameCmd returns a command that sends FrameMsg after one animation frame.
func FrameCmd() tea.Cmd {
	return tea.Tick(viewport.FrameInterval, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// IndicatorTimeoutCmd returns a command that sends IndicatorTimeoutMsg once
// the indicator has been visible for playback.IndicatorTimeout.
func IndicatorTimeoutCmd(index, ticket int) tea.Cmd {
	return tea.Tick(playback.IndicatorTimeout, func(time.Time) tea.Msg {
		return IndicatorTimeoutMsg{Index: index, Ticket: ticket}
	})
}

// StatusTimeoutCmd returns a command that sends StatusTimeoutMsg after StatusTimeout.
func StatusTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return StatusTimeoutMsg{Version: version}
	})
}

// CompleteCmd runs a completion request off the event loop and reports the
// outcome as a ChatReplyMsg.
func CompleteCmd(backend chat.Backend, req chat.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		text, err := backend.Complete(ctx, req)
		return ChatReplyMsg{Reply: chat.Reply{SessionID: req.SessionID, Text: text, Err: err}}
	}
}

// WatchFeedEvents returns a command that waits for the next feed event.
func (m Model) WatchFeedEvents() tea.Cmd {
	if m.feedSub == nil {
		return nil
	}
	return waitForFeedEvent(m.feedSub)
}

// WatchRemote returns a command that waits for the next remote control request.
func (m Model) WatchRemote() tea.Cmd {
	if m.Remote == nil {
		return nil
	}
	ch := m.Remote
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return RemoteCommandMsg{Command: c}
	}
}

func waitForFeedEvent(sub *feed.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.ActiveChanged:
			return ActiveChangedMsg(e)
		case e := <-sub.MuteChanged:
			return MuteChangedMsg(e)
		case e := <-sub.BranchSelected:
			return BranchSelectedMsg(e)
		case e := <-sub.Error:
			return FeedErrorMsg(e)
		case <-sub.Done:
			return FeedClosedMsg{}
		}
	}
}
