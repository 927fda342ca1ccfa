package state

import (
	"database/sql"
	"errors"
	"time"
)

// ResumeState is where the viewer left a catalog.
type ResumeState struct {
	Catalog   string // catalog title
	EpisodeID string
	Muted     bool
	UpdatedAt time.Time // set when read back
}

func getResume(db *sql.DB, catalog string) (*ResumeState, error) {
	row := db.QueryRow(`
		SELECT episode_id, muted, updated_at FROM resume_state WHERE catalog = ?
	`, catalog)

	state := ResumeState{Catalog: catalog}
	var episodeID sql.NullString
	var updatedAt int64
	err := row.Scan(&episodeID, &state.Muted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	if episodeID.Valid {
		state.EpisodeID = episodeID.String
	}
	state.UpdatedAt = time.Unix(updatedAt, 0)
	return &state, nil
}

func saveResume(db *sql.DB, state ResumeState) error {
	_, err := db.Exec(`
		INSERT INTO resume_state (catalog, episode_id, muted, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(catalog) DO UPDATE SET
			episode_id = excluded.episode_id,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, state.Catalog, state.EpisodeID, state.Muted, time.Now().Unix())
	return err
}
