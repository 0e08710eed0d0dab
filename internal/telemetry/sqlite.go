package telemetry

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink stores finished telemetry sessions, one JSON document per row.
type SQLiteSink struct {
	db *sql.DB
}

const telemetrySchema = `
CREATE TABLE IF NOT EXISTS telemetry_sessions (
	id TEXT PRIMARY KEY,
	player_email TEXT,
	level_reached INTEGER,
	final_score INTEGER,
	end_reason TEXT,
	data TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// OpenSQLiteSink opens (or creates) the telemetry table in the given database.
func OpenSQLiteSink(db *sql.DB) (*SQLiteSink, error) {
	if _, err := db.Exec(telemetrySchema); err != nil {
		return nil, fmt.Errorf("create telemetry table: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// SaveSession persists a finished session document.
func (s *SQLiteSink) SaveSession(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode telemetry session %s: %w", sess.ID, err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO telemetry_sessions (id, player_email, level_reached, final_score, end_reason, data) VALUES (?, ?, ?, ?, ?, ?)",
		sess.ID, sess.PlayerEmail, sess.LevelReached, sess.FinalScore, sess.EndReason, string(data),
	)
	if err != nil {
		return fmt.Errorf("save telemetry session %s: %w", sess.ID, err)
	}

	log.Debug("saved telemetry session", "id", sess.ID,
		"shots", len(sess.Shots), "events", len(sess.Events))
	return nil
}
