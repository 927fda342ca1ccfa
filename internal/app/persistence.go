package app

import (
	"go.uber.org/zap"

	"github.com/llehouerou/storyreel/internal/state"
)

// saveResume stores the active episode and mute flag for the catalog.
func (m Model) saveResume() {
	if m.StateMgr == nil {
		return
	}
	m.StateMgr.SaveResume(state.ResumeState{
		Catalog:   m.Catalog.Title,
		EpisodeID: m.Feed.ActiveEpisode().ID,
		Muted:     m.Feed.Muted(),
	})
}

// recordView counts a view of episode index.
func (m Model) recordView(index int) {
	if index < 0 || index >= len(m.Catalog.Episodes) {
		return
	}
	id := m.Catalog.Episodes[index].ID
	m.Views[id]++
	if m.StateMgr == nil {
		return
	}
	if err := m.StateMgr.RecordView(m.Catalog.Title, id); err != nil {
		m.Log.Warn("failed to record view", zap.String("episode", id), zap.Error(err))
	}
}
