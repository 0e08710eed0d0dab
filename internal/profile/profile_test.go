package profile

import (
	"math"
	"testing"
)

func play(p *Profile, score int, won bool) {
	p.ApplyGameResult(GameResult{Score: score, Level: 1, TimeSeconds: 60, EnemiesKilled: 10, Won: won})
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Pilot@Example.COM "); got != "pilot@example.com" {
		t.Fatalf("normalized to %q", got)
	}
}

func TestNewProfileStartsAtBeginner(t *testing.T) {
	p := New("Pilot@Example.com", "Pilot")

	if p.Email != "pilot@example.com" {
		t.Fatalf("email not normalized: %q", p.Email)
	}
	if p.DifficultyMultiplier != 0.6 || p.DifficultyTier != "Beginner" {
		t.Fatalf("fresh profile at %v/%q", p.DifficultyMultiplier, p.DifficultyTier)
	}
}

func TestStreaksAreMutuallyExclusive(t *testing.T) {
	p := New("a@b.c", "A")

	play(p, 1000, true)
	play(p, 1000, true)
	if p.ConsecutiveWins != 2 || p.ConsecutiveLosses != 0 {
		t.Fatalf("after two wins: wins=%d losses=%d", p.ConsecutiveWins, p.ConsecutiveLosses)
	}

	play(p, 500, false)
	if p.ConsecutiveWins != 0 || p.ConsecutiveLosses != 1 {
		t.Fatalf("loss did not reset win streak: wins=%d losses=%d", p.ConsecutiveWins, p.ConsecutiveLosses)
	}
	if p.GamesWon != 2 || p.GamesPlayed != 3 {
		t.Fatalf("totals wrong: won=%d played=%d", p.GamesWon, p.GamesPlayed)
	}
	if math.Abs(p.WinRate-2.0/3.0) > 1e-9 {
		t.Fatalf("win rate = %v", p.WinRate)
	}
}

func TestRecentWindowEvictsOldest(t *testing.T) {
	p := New("a@b.c", "A")

	for i := 0; i < RecentWindow+3; i++ {
		play(p, 100*(i+1), false)
	}

	if len(p.RecentScores) != RecentWindow {
		t.Fatalf("window size = %d, want %d", len(p.RecentScores), RecentWindow)
	}
	// The first three games (100, 200, 300) must have been evicted.
	if p.RecentScores[0] != 400 {
		t.Fatalf("oldest surviving score = %d, want 400", p.RecentScores[0])
	}
	if p.RecentGames != RecentWindow {
		t.Fatalf("recent games = %d", p.RecentGames)
	}
}

func TestAverageScoreIsRunningMeanOverAllGames(t *testing.T) {
	p := New("a@b.c", "A")

	play(p, 1000, false)
	play(p, 3000, false)
	if math.Abs(p.AverageScore-2000) > 1e-9 {
		t.Fatalf("average after two games = %v", p.AverageScore)
	}

	play(p, 5000, false)
	if math.Abs(p.AverageScore-3000) > 1e-9 {
		t.Fatalf("average after three games = %v", p.AverageScore)
	}
}

func TestBestScoreAndHighestLevelOnlyGrow(t *testing.T) {
	p := New("a@b.c", "A")

	p.ApplyGameResult(GameResult{Score: 9000, Level: 3, Won: true})
	p.ApplyGameResult(GameResult{Score: 100, Level: 1, Won: false})

	if p.BestScore != 9000 || p.HighestLevel != 3 {
		t.Fatalf("best=%d highest=%d", p.BestScore, p.HighestLevel)
	}
}

func TestRecomputeDifficultyMovesWithResults(t *testing.T) {
	p := New("a@b.c", "A")
	start := p.DifficultyMultiplier

	// A strong run should raise the multiplier above the fresh floor.
	for i := 0; i < 12; i++ {
		play(p, 15000, true)
	}
	p.RecomputeDifficulty()

	if p.DifficultyMultiplier <= start {
		t.Fatalf("multiplier did not rise: %v", p.DifficultyMultiplier)
	}
	if p.DifficultyTier == "Beginner" {
		t.Fatalf("tier stuck at Beginner with multiplier %v", p.DifficultyMultiplier)
	}
}
