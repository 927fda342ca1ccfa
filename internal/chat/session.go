// Package chat manages the conversation overlay: one session per opened
// branch, a message history replayed to a completion backend each turn, and
// in-character fallback lines when the backend fails.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/llehouerou/storyreel/internal/catalog"
)

const (
	// FallbackLine replaces a reply the backend failed to produce.
	FallbackLine = "(The signal's weak here... I lost you. Say that again?)"
	// EmptyReplyLine replaces a blank reply.
	EmptyReplyLine = "(Only static on the line.)"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of the conversation.
type Message struct {
	Role Role
	Text string
}

// State is the session lifecycle state.
//
//	Idle ──open──▶ Opening ──seeded──▶ Ready ──submit──▶ AwaitingReply
//	                                     ▲                    │
//	                                     └───reply/fallback───┘
//
// Close moves any state to Closed; the manager is Idle again afterwards.
type State int

const (
	StateIdle State = iota
	StateOpening
	StateReady
	StateAwaitingReply
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateOpening:
		return "Opening"
	case StateReady:
		return "Ready"
	case StateAwaitingReply:
		return "AwaitingReply"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Session is a read-only snapshot of a chat session.
type Session struct {
	ID            string
	Character     catalog.Character
	EpisodeLabel  string
	SystemContext string
	Messages      []Message
	Pending       bool
	State         State
}

// Request is one backend call: the history before the new message, the
// message itself and the session's system context.
type Request struct {
	SessionID     string
	History       []Message
	Message       string
	SystemContext string
}

// Reply is the outcome of a backend call for a session.
type Reply struct {
	SessionID string
	Text      string
	Err       error
}

// Backend produces the next in-character reply.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f BackendFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// SystemContext builds the persona instructions for a character in an episode.
func SystemContext(ch catalog.Character, episodeLabel string) string {
	var b strings.Builder
	name := ch.Name
	if name == "" {
		name = ch.ID
	}
	fmt.Fprintf(&b, "You are %s, a character in an interactive short-form drama.", name)
	if p := strings.TrimSpace(ch.Persona); p != "" {
		b.WriteString(" ")
		b.WriteString(p)
	}
	if episodeLabel != "" {
		fmt.Fprintf(&b, " The viewer has just watched %s and chose to talk to you directly.", episodeLabel)
	}
	b.WriteString(" Stay in character. Answer in one to three short sentences.")
	b.WriteString(" Never mention being an AI or a language model.")
	return b.String()
}
