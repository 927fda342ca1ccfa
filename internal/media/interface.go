// Package media is the playable resource each feed item drives.
package media

import (
	"errors"
	"time"
)

// ErrAutoplayDenied is returned by Play when the environment refuses to
// start playback without a user gesture.
var ErrAutoplayDenied = errors.New("autoplay denied")

// Element defines the media element contract for dependency injection and testing.
type Element interface {
	URL() string
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	SetMuted(muted bool)
	Muted() bool
	State() State
	Position() time.Duration
	// Duration returns 0 until the resource is ready.
	Duration() time.Duration
	Close()
}

// EventKind identifies what an element reported.
type EventKind int

const (
	EventReady EventKind = iota
	EventTimeUpdate
)

// Event is something an element reports asynchronously.
type Event struct {
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
}

// Verify Simulated implements Element at compile time.
var _ Element = (*Simulated)(nil)
