package state

import (
	"sync"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	resume map[string]ResumeState
	views  map[string]map[string]int
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		resume: make(map[string]ResumeState),
		views:  make(map[string]map[string]int),
	}
}

func (m *Mock) GetResume(catalog string) (*ResumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.resume[catalog]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	return &s, nil
}

func (m *Mock) SaveResume(state ResumeState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}
	m.resume[state.Catalog] = state
	m.saves++
}

func (m *Mock) RecordView(catalog, episodeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.views[catalog] == nil {
		m.views[catalog] = make(map[string]int)
	}
	m.views[catalog][episodeID]++
	return nil
}

func (m *Mock) Views(catalog string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.views[catalog]))
	for id, n := range m.views[catalog] {
		out[id] = n
	}
	return out, nil
}

func (m *Mock) Forget(catalog string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resume, catalog)
	delete(m.views, catalog)
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetResume(state ResumeState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}
	m.resume[state.Catalog] = state
}

func (m *Mock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
