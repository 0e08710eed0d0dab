// Package profile holds per-player performance records that feed the
// adaptive difficulty engine.
package profile

import (
	"strings"
	"time"

	"github.com/starfall-game/starfall/internal/difficulty"
)

// RecentWindow is the number of most recent scores kept on a profile.
const RecentWindow = 10

// Profile is a player's cumulative performance record, keyed by
// normalized email.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`

	GamesPlayed        int     `json:"gamesPlayed"`
	BestScore          int     `json:"bestScore"`
	AverageScore       float64 `json:"averageScore"`
	HighestLevel       int     `json:"highestLevel"`
	TotalPlayTime      float64 `json:"totalPlayTime"` // seconds
	TotalEnemiesKilled int     `json:"totalEnemiesKilled"`
	GamesWon           int     `json:"gamesWon"`

	WinRate           float64 `json:"winRate"`
	ConsecutiveWins   int     `json:"consecutiveWins"`
	ConsecutiveLosses int     `json:"consecutiveLosses"`

	RecentScores  []int   `json:"recentScores"`
	RecentAverage float64 `json:"recentAverage"`
	RecentGames   int     `json:"recentGames"`

	DifficultyMultiplier float64 `json:"difficultyMultiplier"`
	DifficultyTier       string  `json:"difficultyTier"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GameResult is one completed game's outcome, fed into the profile after
// a session ends.
type GameResult struct {
	Score         int
	Level         int
	TimeSeconds   float64
	EnemiesKilled int
	Won           bool
	AmmoUsed      int
}

// NormalizeEmail lower-cases and trims an email for use as a store key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New creates a fresh beginner profile with all cumulative metrics at zero.
func New(email, name string) *Profile {
	now := time.Now()
	return &Profile{
		Email:                NormalizeEmail(email),
		Name:                 name,
		DifficultyMultiplier: 0.6,
		DifficultyTier:       "Beginner",
		RecentScores:         []int{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ApplyGameResult folds one completed game into the cumulative record.
// Wins and losses reset each other's streak counter. The recent-score
// window keeps the last RecentWindow scores, evicting the oldest.
func (p *Profile) ApplyGameResult(r GameResult) {
	p.GamesPlayed++
	p.TotalPlayTime += r.TimeSeconds
	p.TotalEnemiesKilled += r.EnemiesKilled

	if r.Score > p.BestScore {
		p.BestScore = r.Score
	}
	if r.Level > p.HighestLevel {
		p.HighestLevel = r.Level
	}

	if r.Won {
		p.GamesWon++
		p.ConsecutiveWins++
		p.ConsecutiveLosses = 0
	} else {
		p.ConsecutiveWins = 0
		p.ConsecutiveLosses++
	}

	if p.GamesPlayed > 0 {
		p.WinRate = float64(p.GamesWon) / float64(p.GamesPlayed)
	}

	p.RecentScores = append(p.RecentScores, r.Score)
	if len(p.RecentScores) > RecentWindow {
		p.RecentScores = p.RecentScores[1:]
	}
	p.RecentGames = len(p.RecentScores)

	sum := 0
	for _, s := range p.RecentScores {
		sum += s
	}
	if p.RecentGames > 0 {
		p.RecentAverage = float64(sum) / float64(p.RecentGames)
	}

	// Running mean over all games: (old*(n-1) + new) / n.
	p.AverageScore = (p.AverageScore*float64(p.GamesPlayed-1) + float64(r.Score)) / float64(p.GamesPlayed)

	p.UpdatedAt = time.Now()
}

// Metrics projects the fields the difficulty engine reads.
func (p *Profile) Metrics() difficulty.Metrics {
	return difficulty.Metrics{
		GamesPlayed:       p.GamesPlayed,
		BestScore:         p.BestScore,
		AverageScore:      p.AverageScore,
		GamesWon:          p.GamesWon,
		WinRate:           p.WinRate,
		ConsecutiveWins:   p.ConsecutiveWins,
		ConsecutiveLosses: p.ConsecutiveLosses,
		RecentAverage:     p.RecentAverage,
	}
}

// RecomputeDifficulty refreshes the cached multiplier and tier from the
// current metrics.
func (p *Profile) RecomputeDifficulty() {
	p.DifficultyMultiplier = difficulty.DeriveMultiplier(p.Metrics())
	p.DifficultyTier = difficulty.Tier(p.DifficultyMultiplier)
}

// Store is the persistence collaborator for profiles.
//
// Load returns (nil, nil) when no profile exists for the email; a missing
// profile is a first-time-player signal, not an error.
type Store interface {
	Load(email string) (*Profile, error)
	Save(p *Profile) error
}
