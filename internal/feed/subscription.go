package feed

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	ActiveChanged  <-chan ActiveChange
	MuteChanged    <-chan MuteChange
	BranchSelected <-chan BranchSelected
	Error          <-chan ErrorEvent
	Done           <-chan struct{}

	// Internal write channels
	activeCh chan ActiveChange
	muteCh   chan MuteChange
	branchCh chan BranchSelected
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		activeCh: make(chan ActiveChange, eventBufferSize),
		muteCh:   make(chan MuteChange, eventBufferSize),
		branchCh: make(chan BranchSelected, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.ActiveChanged = s.activeCh
	s.MuteChanged = s.muteCh
	s.BranchSelected = s.branchCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendActive sends an active change event (non-blocking).
func (s *Subscription) sendActive(e ActiveChange) {
	select {
	case s.activeCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendMute sends a mute change event (non-blocking).
func (s *Subscription) sendMute(e MuteChange) {
	select {
	case s.muteCh <- e:
	default:
	}
}

// sendBranch sends a branch selection event (non-blocking).
func (s *Subscription) sendBranch(e BranchSelected) {
	select {
	case s.branchCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
