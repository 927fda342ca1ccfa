// Package mpris exposes the feed as an MPRIS media player over D-Bus, so
// media keys and desktop widgets can pause, seek and move through episodes.
package mpris

import (
	"time"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/feed"
)

// CommandKind identifies a remote control request.
type CommandKind int

const (
	CommandNext CommandKind = iota
	CommandPrevious
	CommandPlayPause
	CommandPlay
	CommandPause
	CommandSeek        // relative, by Offset
	CommandSetPosition // absolute, to Position
)

// Command is a control request received from D-Bus. Commands that move
// the feed are applied by the UI loop, which owns the viewport.
type Command struct {
	Kind     CommandKind
	Offset   time.Duration
	Position time.Duration
}

const commandBufferSize = 16

// Feed is the read side of the feed the adapter reports on.
type Feed interface {
	Catalog() *catalog.Catalog
	Len() int
	Active() feed.ActiveItem
}
