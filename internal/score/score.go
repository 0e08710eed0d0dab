// Package score computes level scores and persists session results to the
// leaderboard.
package score

import "math"

// Per-level score formula bounds.
const (
	MaxTimeSeconds  = 3600.0 // inputs beyond one hour are clamped
	survivalCap     = 600.0  // seconds counted toward survival points
	survivalPerSec  = 30.0
	killPoolPoints  = 8000.0
	efficiencyCap   = 2000.0
	noAmmoKillBonus = 1000.0
	longGameSeconds = 60.0
	longGameBonus   = 500.0
	MaxLevelScore   = 30000
)

// ForLevel converts one level's outcome into a bounded integer score.
// All inputs are defensively clamped; garbage in produces a clamped score,
// never NaN or overflow.
func ForLevel(timeSeconds float64, ammoUsed, enemiesKilled, totalEnemies int) int {
	if totalEnemies <= 0 {
		totalEnemies = 50
	}
	t := clamp(timeSeconds, 0, MaxTimeSeconds)
	ammo := maxInt(0, ammoUsed)
	kills := minInt(maxInt(0, enemiesKilled), totalEnemies)

	// Instant-death guard: no free points for dying immediately.
	if kills == 0 && t < 3 && ammo == 0 {
		return 0
	}

	survival := math.Min(t, survivalCap) * survivalPerSec
	killScore := float64(kills) / float64(totalEnemies) * killPoolPoints

	var efficiency float64
	switch {
	case kills > 0 && ammo > 0:
		efficiency = math.Min(efficiencyCap, float64(kills)/float64(ammo)*100)
	case kills > 0:
		// Killed without firing a single bullet: all-grenade bonus.
		efficiency = noAmmoKillBonus
	}

	var timeBonus float64
	if t > longGameSeconds {
		timeBonus = longGameBonus
	}

	final := int(math.Floor(survival + killScore + efficiency + timeBonus))
	return minInt(maxInt(0, final), MaxLevelScore)
}

// MeetsMinimumGameplay is the gate a session must pass before its score is
// persisted or fed back into the difficulty profile: at least one kill or
// thirty seconds survived, and a positive score.
func MeetsMinimumGameplay(enemiesKilled int, totalTimeSeconds float64, totalScore int) bool {
	return (enemiesKilled > 0 || totalTimeSeconds >= 30) && totalScore > 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
