package score

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one persisted session result.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Score       int       `json:"score"`
	Level       int       `json:"level"`
	TimeSeconds float64   `json:"timeSeconds"`
	AmmoUsed    int       `json:"ammoUsed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store is the scores/leaderboard persistence collaborator.
type Store interface {
	SaveScore(name, email string, score, level int, timeSeconds float64, ammoUsed int) (string, error)
	Leaderboard(limit int) ([]Record, error)
}

// SQLiteStore keeps score records in a single append-only table.
type SQLiteStore struct {
	db *sql.DB
}

const scoreSchema = `
CREATE TABLE IF NOT EXISTS scores (
	id TEXT PRIMARY KEY,
	name TEXT,
	email TEXT,
	score INTEGER,
	level INTEGER,
	time_seconds REAL,
	ammo_used INTEGER,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scores_score ON scores (score DESC);
`

// OpenSQLiteStore opens (or creates) the scores table in the given database.
func OpenSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(scoreSchema); err != nil {
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveScore appends a session result and returns its document id.
func (s *SQLiteStore) SaveScore(name, email string, score, level int, timeSeconds float64, ammoUsed int) (string, error) {
	id := uuid.NewString()
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.db.Exec(
		"INSERT INTO scores (id, name, email, score, level, time_seconds, ammo_used) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, name, email, score, level, timeSeconds, ammoUsed,
	)
	if err != nil {
		return "", fmt.Errorf("save score for %s: %w", email, err)
	}

	log.Debug("saved score", "email", email, "score", score, "level", level, "id", id)
	return id, nil
}

// Leaderboard returns up to limit records ordered by score, descending.
// An empty leaderboard is an empty slice, not an error.
func (s *SQLiteStore) Leaderboard(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		"SELECT id, name, email, score, level, time_seconds, ammo_used, created_at FROM scores ORDER BY score DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Score, &r.Level, &r.TimeSeconds, &r.AmmoUsed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
