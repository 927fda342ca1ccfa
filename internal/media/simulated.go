package media

import "time"

// DefaultLoadDelay is how long a Simulated element takes to become ready.
const DefaultLoadDelay = 400 * time.Millisecond

// Clock returns the current time.
type Clock func() time.Time

// Simulated is an element with a virtual playhead that advances with wall
// time. It loops at the end of the resource, like a short-form video.
type Simulated struct {
	url     string
	length  time.Duration
	policy  *Policy
	now     Clock
	readyAt time.Time

	state  State
	muted  bool
	ready  bool
	pos    time.Duration // position at anchor
	anchor time.Time
	closed bool
}

// NewSimulated creates an element for url. length is the resource length
// reported once ready; policy may be nil (always allowed); now may be nil
// (time.Now).
func NewSimulated(url string, length time.Duration, policy *Policy, now Clock) *Simulated {
	if now == nil {
		now = time.Now
	}
	return &Simulated{
		url:     url,
		length:  length,
		policy:  policy,
		now:     now,
		readyAt: now().Add(DefaultLoadDelay),
		state:   Paused,
	}
}

func (s *Simulated) URL() string { return s.url }

func (s *Simulated) Play() error {
	if s.closed {
		return nil
	}
	if s.state == Playing {
		return nil
	}
	if !s.policy.Allows(s.muted) {
		return ErrAutoplayDenied
	}
	s.anchor = s.now()
	s.state = Playing
	return nil
}

func (s *Simulated) Pause() {
	if s.state != Playing {
		return
	}
	s.pos = s.Position()
	s.state = Paused
}

func (s *Simulated) SeekTo(pos time.Duration) {
	if s.length > 0 {
		pos = min(pos, s.length)
	}
	s.pos = max(pos, 0)
	s.anchor = s.now()
}

func (s *Simulated) SetMuted(muted bool) { s.muted = muted }

func (s *Simulated) Muted() bool { return s.muted }

func (s *Simulated) State() State { return s.state }

func (s *Simulated) Position() time.Duration {
	if s.state != Playing || !s.ready {
		return s.pos
	}
	pos := s.pos + s.now().Sub(s.anchor)
	if s.length > 0 {
		pos %= s.length
	}
	return pos
}

func (s *Simulated) Duration() time.Duration {
	if !s.ready {
		return 0
	}
	return s.length
}

func (s *Simulated) Close() {
	s.Pause()
	s.closed = true
}

// Poll returns the events that happened since the last call: a ready event
// once the load delay has elapsed, then a time update while playing.
func (s *Simulated) Poll() []Event {
	if s.closed {
		return nil
	}
	var events []Event
	if !s.ready {
		if s.now().Before(s.readyAt) {
			return nil
		}
		s.ready = true
		// playback requested before ready starts counting from now
		s.anchor = s.now()
		events = append(events, Event{Kind: EventReady, Duration: s.length})
	}
	if s.state == Playing {
		events = append(events, Event{
			Kind:     EventTimeUpdate,
			Position: s.Position(),
			Duration: s.length,
		})
	}
	return events
}
