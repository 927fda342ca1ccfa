package media

import "fmt"

// AutoplayMode is the environment's rule for starting playback without a gesture.
type AutoplayMode int

const (
	// AutoplayMuted allows autoplay only while muted.
	AutoplayMuted AutoplayMode = iota
	AutoplayAllow
	AutoplayDeny
)

// String returns the config spelling of the mode.
func (m AutoplayMode) String() string {
	switch m {
	case AutoplayMuted:
		return "muted"
	case AutoplayAllow:
		return "allow"
	case AutoplayDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// ParseAutoplayMode parses "allow", "muted" or "deny". Empty means muted.
func ParseAutoplayMode(s string) (AutoplayMode, error) {
	switch s {
	case "", "muted":
		return AutoplayMuted, nil
	case "allow":
		return AutoplayAllow, nil
	case "deny":
		return AutoplayDeny, nil
	default:
		return AutoplayMuted, fmt.Errorf("unknown autoplay mode %q", s)
	}
}

// Policy decides whether Play may start without a user gesture.
// Once the user has interacted with the page the activation is sticky and
// every later Play is allowed.
type Policy struct {
	mode      AutoplayMode
	activated bool
}

// NewPolicy creates a policy for the given mode.
func NewPolicy(mode AutoplayMode) *Policy {
	return &Policy{mode: mode}
}

// Activate records a user gesture.
func (p *Policy) Activate() { p.activated = true }

// Activated reports whether a user gesture has been recorded.
func (p *Policy) Activated() bool { return p.activated }

// Allows reports whether playback may start with the given mute state.
func (p *Policy) Allows(muted bool) bool {
	if p == nil || p.activated {
		return true
	}
	switch p.mode {
	case AutoplayAllow:
		return true
	case AutoplayMuted:
		return muted
	default:
		return false
	}
}
