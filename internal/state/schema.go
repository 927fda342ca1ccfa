package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS resume_state (
			catalog TEXT PRIMARY KEY,
			episode_id TEXT,
			muted INTEGER NOT NULL DEFAULT 1,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS episode_views (
			catalog TEXT NOT NULL,
			episode_id TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			last_viewed_at INTEGER NOT NULL,
			PRIMARY KEY (catalog, episode_id)
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
