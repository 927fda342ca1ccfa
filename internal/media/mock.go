package media

import "time"

// Mock is a test double for Element.
type Mock struct {
	url       string
	state     State
	muted     bool
	position  time.Duration
	duration  time.Duration
	playErr   error
	playCalls int
	seekCalls []time.Duration
	calls     []string
	closed    bool
}

// NewMock creates a new mock element for testing.
func NewMock(url string) *Mock {
	return &Mock{url: url}
}

func (m *Mock) URL() string { return m.url }

func (m *Mock) Play() error {
	m.calls = append(m.calls, "play")
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.calls = append(m.calls, "pause")
	m.state = Paused
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.calls = append(m.calls, "seek")
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetMuted(muted bool) { m.muted = muted }

func (m *Mock) Muted() bool { return m.muted }

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Close() { m.closed = true }

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) Closed() bool { return m.closed }

// Calls returns the play, pause and seek calls in order.
func (m *Mock) Calls() []string { return m.calls }

// Verify Mock implements Element at compile time.
var _ Element = (*Mock)(nil)
