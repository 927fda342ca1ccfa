package state

import (
	"database/sql"
	"time"
)

// RecordView counts one more view of an episode.
func (m *Manager) RecordView(catalog, episodeID string) error {
	_, err := m.db.Exec(`
		INSERT INTO episode_views (catalog, episode_id, views, last_viewed_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(catalog, episode_id) DO UPDATE SET
			views = views + 1,
			last_viewed_at = excluded.last_viewed_at
	`, catalog, episodeID, time.Now().Unix())
	return err
}

// Views returns the view count per episode id for a catalog.
func (m *Manager) Views(catalog string) (map[string]int, error) {
	rows, err := m.db.Query(`
		SELECT episode_id, views FROM episode_views WHERE catalog = ?
	`, catalog)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		views[id] = n
	}
	return views, rows.Err()
}

// Forget removes everything saved for a catalog.
func (m *Manager) Forget(catalog string) error {
	m.saveMu.Lock()
	if m.pending != nil && m.pending.Catalog == catalog {
		m.pending = nil
	}
	m.saveMu.Unlock()

	return withTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM resume_state WHERE catalog = ?`, catalog); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM episode_views WHERE catalog = ?`, catalog)
		return err
	})
}
