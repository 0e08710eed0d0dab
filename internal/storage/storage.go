// Package storage opens the shared SQLite database and hands out the
// per-concern stores built on it.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starfall-game/starfall/internal/profile"
	"github.com/starfall-game/starfall/internal/score"
	"github.com/starfall-game/starfall/internal/telemetry"
)

// Stores bundles every persistence collaborator a session needs. One Stores
// is shared across all sessions of a process; the sql.DB pools connections
// underneath.
type Stores struct {
	Profiles  *profile.SQLiteStore
	Scores    *score.SQLiteStore
	Telemetry *telemetry.SQLiteSink

	db *sql.DB
}

// Open opens (or creates) the database at path and prepares all schemas.
func Open(path string) (*Stores, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	profiles, err := profile.OpenSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("profiles schema: %w", err)
	}
	scores, err := score.OpenSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("scores schema: %w", err)
	}
	sink, err := telemetry.OpenSQLiteSink(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry schema: %w", err)
	}

	return &Stores{
		Profiles:  profiles,
		Scores:    scores,
		Telemetry: sink,
		db:        db,
	}, nil
}

// Close closes the underlying database.
func (s *Stores) Close() error {
	return s.db.Close()
}
