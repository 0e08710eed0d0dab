package session

import "time"

// Session timing.
const (
	// TickRate is the fixed simulation rate; per-tick decay and movement
	// rates throughout the package are tuned against it.
	TickRate = 60
	TickTime = time.Second / TickRate

	// TransitionPause is the non-interactive pause between levels.
	TransitionPause = 2 * time.Second

	// FinalLevel clears to victory instead of a transition.
	FinalLevel = 3
)

// fullFormation is the reference enemy count the horde speed-up formula is
// anchored to: the fewer enemies remain, the faster the rest move.
const fullFormation = 50

// levelBalance tunes the powerup economy and shooting intensity per level.
// Type weights are cumulative probability bands; grenade takes the rest.
type levelBalance struct {
	dropChance        float64
	livesWeight       float64
	shieldWeight      float64
	ammoWeight        float64
	shootingIntensity float64
}

var levelBalances = map[int]levelBalance{
	// Shields are offline on level 1, so drops are scarce and lean
	// toward lives.
	1: {dropChance: 0.15, livesWeight: 0.65, shieldWeight: 0.20, ammoWeight: 0.10, shootingIntensity: 0.8},
	// Level 2 sustains the newly online shield.
	2: {dropChance: 0.25, livesWeight: 0.20, shieldWeight: 0.50, ammoWeight: 0.20, shootingIntensity: 1.2},
	// Sentinels on level 3 demand grenades.
	3: {dropChance: 0.30, livesWeight: 0.25, shieldWeight: 0.40, ammoWeight: 0.15, shootingIntensity: 1.5},
}

func balanceFor(level int) levelBalance {
	if b, ok := levelBalances[level]; ok {
		return b
	}
	return levelBalances[1]
}
