package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/storyreel/internal/catalog"
)

// DefaultHistoryLimit is how many past messages are replayed to the backend.
const DefaultHistoryLimit = 40

// Options configures a Manager.
type Options struct {
	// HistoryLimit caps the messages sent with each request (0 = default,
	// negative = unlimited). The displayed history is never trimmed.
	HistoryLimit int
	Logger       *zap.Logger
}

type session struct {
	id            string
	character     catalog.Character
	episodeLabel  string
	systemContext string
	messages      []Message
	pending       bool
	state         State
}

func (s *session) snapshot() Session {
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Session{
		ID:            s.id,
		Character:     s.character,
		EpisodeLabel:  s.episodeLabel,
		SystemContext: s.systemContext,
		Messages:      msgs,
		Pending:       s.pending,
		State:         s.state,
	}
}

// Manager owns at most one open chat session.
type Manager struct {
	mu           sync.Mutex
	current      *session
	historyLimit int
	log          *zap.Logger
}

// NewManager creates a manager with no open session.
func NewManager(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return &Manager{historyLimit: limit, log: log}
}

// Open starts a session with ch for the given episode. The hook becomes the
// first, model-authored message before any backend call. An already open
// session is closed and replaced; its in-flight reply will be ignored.
func (m *Manager) Open(ch catalog.Character, episodeLabel, hook string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.log.Debug("replacing open chat session", zap.String("session", m.current.id))
		m.current.state = StateClosed
	}

	s := &session{
		id:           uuid.NewString(),
		character:    ch,
		episodeLabel: episodeLabel,
		state:        StateOpening,
	}
	s.messages = append(s.messages, Message{Role: RoleModel, Text: hook})
	s.systemContext = SystemContext(ch, episodeLabel)
	s.state = StateReady
	m.current = s

	m.log.Info("chat session opened",
		zap.String("session", s.id),
		zap.String("character", ch.ID),
		zap.String("episode", episodeLabel))
	return s.snapshot()
}

// Submit appends a user message and returns the backend request to run.
// It returns false, changing nothing, when text is blank, when no session is
// open or while a reply is pending.
func (m *Manager) Submit(text string) (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.current
	if s == nil || s.pending || strings.TrimSpace(text) == "" {
		return Request{}, false
	}

	history := s.messages
	if m.historyLimit > 0 && len(history) > m.historyLimit {
		history = history[len(history)-m.historyLimit:]
	}
	req := Request{
		SessionID:     s.id,
		History:       append([]Message(nil), history...),
		Message:       text,
		SystemContext: s.systemContext,
	}

	s.messages = append(s.messages, Message{Role: RoleUser, Text: text})
	s.pending = true
	s.state = StateAwaitingReply
	return req, true
}

// Resolve applies a backend outcome. Replies for a session that is no longer
// the open one are dropped and false is returned.
func (m *Manager) Resolve(r Reply) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.current
	if s == nil || s.id != r.SessionID || !s.pending {
		m.log.Debug("dropping reply for stale session", zap.String("session", r.SessionID))
		return false
	}

	text := r.Text
	switch {
	case r.Err != nil:
		m.log.Warn("completion failed", zap.String("session", s.id), zap.Error(r.Err))
		text = FallbackLine
	case strings.TrimSpace(text) == "":
		text = EmptyReplyLine
	}

	s.messages = append(s.messages, Message{Role: RoleModel, Text: text})
	s.pending = false
	s.state = StateReady
	return true
}

// Send runs Submit, the backend call and Resolve in one go.
// It returns false when Submit was a no-op.
func (m *Manager) Send(ctx context.Context, b Backend, text string) bool {
	req, ok := m.Submit(text)
	if !ok {
		return false
	}
	reply, err := b.Complete(ctx, req)
	m.Resolve(Reply{SessionID: req.SessionID, Text: reply, Err: err})
	return true
}

// Close discards the open session, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.current.state = StateClosed
	m.log.Info("chat session closed", zap.String("session", m.current.id))
	m.current = nil
}

// Current returns a snapshot of the open session.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return m.current.snapshot(), true
}

// State returns the open session's state, or StateIdle.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return StateIdle
	}
	return m.current.state
}
