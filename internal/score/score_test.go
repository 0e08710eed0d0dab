package score

import "testing"

func TestInstantDeathScoresZero(t *testing.T) {
	if got := ForLevel(2, 0, 0, 50); got != 0 {
		t.Fatalf("instant death score = %d, want 0", got)
	}
}

func TestFullClearScore(t *testing.T) {
	// 600s survival (18000) + full kill pool (8000) + efficiency
	// min(2000, 50/100*100)=50 + long-game bonus 500 = 26550.
	if got := ForLevel(600, 100, 50, 50); got != 26550 {
		t.Fatalf("full clear score = %d, want 26550", got)
	}
}

func TestSurvivalDiminishesPast600Seconds(t *testing.T) {
	at600 := ForLevel(600, 100, 50, 50)
	at3600 := ForLevel(3600, 100, 50, 50)
	if at600 != at3600 {
		t.Fatalf("survival points kept growing past the cap: %d vs %d", at600, at3600)
	}
}

func TestGrenadeOnlyKillBonus(t *testing.T) {
	withAmmo := ForLevel(100, 50, 10, 50)
	noAmmo := ForLevel(100, 0, 10, 50)
	// No-bullet kills earn the flat 1000 efficiency bonus instead of the
	// kills-per-ammo formula (which would be 20 here).
	if diff := noAmmo - withAmmo; diff != 980 {
		t.Fatalf("all-grenade bonus delta = %d, want 980", diff)
	}
}

func TestScoreAlwaysBounded(t *testing.T) {
	cases := [][4]int{
		{-100, -5, -3, 0},
		{1000000, 0, 1000, 10},
		{3600, 1, 50, 50},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		got := ForLevel(float64(c[0]), c[1], c[2], c[3])
		if got < 0 || got > MaxLevelScore {
			t.Errorf("ForLevel(%v) = %d outside [0, %d]", c, got, MaxLevelScore)
		}
	}
}

func TestKillsClampedToTotalEnemies(t *testing.T) {
	// 200 claimed kills against 50 enemies must not exceed the kill pool.
	inflated := ForLevel(10, 10, 200, 50)
	honest := ForLevel(10, 10, 50, 50)
	if inflated != honest {
		t.Fatalf("inflated kills scored %d, honest %d", inflated, honest)
	}
}

func TestMinimumGameplayGate(t *testing.T) {
	cases := []struct {
		kills int
		time  float64
		score int
		want  bool
	}{
		{0, 10, 500, false}, // short, killless — rejected
		{0, 35, 500, true},  // survived past 30s
		{1, 5, 500, true},   // at least one kill
		{1, 100, 0, false},  // zero score never persists
		{0, 30, 1, true},    // boundary: exactly 30s passes
	}
	for _, c := range cases {
		if got := MeetsMinimumGameplay(c.kills, c.time, c.score); got != c.want {
			t.Errorf("gate(kills=%d, time=%v, score=%d) = %v, want %v", c.kills, c.time, c.score, got, c.want)
		}
	}
}
