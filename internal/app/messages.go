// Package app contains the bubbletea model tying the feed, the viewport and
// the chat overlay together.
package app

import (
	"time"

	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/mpris"
)

// FeedMessage is implemented by messages relayed from the feed subscription.
type FeedMessage interface {
	feedMessage()
}

// TickMsg is sent periodically to poll media elements.
type TickMsg time.Time

// FrameMsg advances the scroll animation by one frame.
type FrameMsg struct{}

// IndicatorTimeoutMsg clears the play/pause indicator of an item if the
// ticket is still the latest one.
type IndicatorTimeoutMsg struct {
	Index  int
	Ticket int
}

// ChatReplyMsg carries the outcome of a completion call.
type ChatReplyMsg struct {
	Reply chat.Reply
}

// RemoteCommandMsg carries a control request from the MPRIS adapter.
type RemoteCommandMsg struct {
	Command mpris.Command
}

// StatusTimeoutMsg clears the status line if it has not changed since.
type StatusTimeoutMsg struct {
	Version int
}

// ActiveChangedMsg is sent when another episode becomes active.
type ActiveChangedMsg feed.ActiveChange

func (ActiveChangedMsg) feedMessage() {}

// MuteChangedMsg is sent when the shared mute flag changes.
type MuteChangedMsg feed.MuteChange

func (MuteChangedMsg) feedMessage() {}

// BranchSelectedMsg is sent when the viewer picks a trigger.
type BranchSelectedMsg feed.BranchSelected

func (BranchSelectedMsg) feedMessage() {}

// FeedErrorMsg reports a recovered feed error.
type FeedErrorMsg feed.ErrorEvent

func (FeedErrorMsg) feedMessage() {}

// FeedClosedMsg is sent once the feed subscription is closed.
type FeedClosedMsg struct{}

func (FeedClosedMsg) feedMessage() {}
