package profile

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists profiles as one row per player. The row mirrors a
// document store: hot columns for queries plus the full profile as JSON.
type SQLiteStore struct {
	db *sql.DB
}

const profileSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	email TEXT PRIMARY KEY,
	name TEXT,
	games_played INTEGER DEFAULT 0,
	best_score INTEGER DEFAULT 0,
	difficulty_multiplier REAL DEFAULT 0.6,
	difficulty_tier TEXT DEFAULT 'Beginner',
	data TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// OpenSQLiteStore opens (or creates) the profile table in the given database.
func OpenSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(profileSchema); err != nil {
		return nil, fmt.Errorf("create profiles table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load fetches the profile for an email. Returns (nil, nil) when absent.
func (s *SQLiteStore) Load(email string) (*Profile, error) {
	row := s.db.QueryRow("SELECT data FROM profiles WHERE email = ?", NormalizeEmail(email))

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile %s: %w", email, err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", email, err)
	}
	return &p, nil
}

// Save upserts the profile keyed by normalized email. The difficulty
// multiplier and tier are recomputed here, immediately before persisting,
// so a stale cached value from the caller can never be written.
func (s *SQLiteStore) Save(p *Profile) error {
	p.Email = NormalizeEmail(p.Email)
	p.RecomputeDifficulty()
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.Email, err)
	}

	query := `
	INSERT INTO profiles (email, name, games_played, best_score, difficulty_multiplier, difficulty_tier, data, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(email) DO UPDATE SET
		name = excluded.name,
		games_played = excluded.games_played,
		best_score = excluded.best_score,
		difficulty_multiplier = excluded.difficulty_multiplier,
		difficulty_tier = excluded.difficulty_tier,
		data = excluded.data,
		updated_at = CURRENT_TIMESTAMP;
	`
	if _, err := s.db.Exec(query, p.Email, p.Name, p.GamesPlayed, p.BestScore,
		p.DifficultyMultiplier, p.DifficultyTier, string(data)); err != nil {
		return fmt.Errorf("save profile %s: %w", p.Email, err)
	}

	log.Debug("saved profile", "email", p.Email,
		"multiplier", p.DifficultyMultiplier, "tier", p.DifficultyTier)
	return nil
}
