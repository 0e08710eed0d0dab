// Package difficulty converts a player's historical performance into a
// single multiplier and fans that multiplier out into the full table of
// adjusted gameplay parameters.
package difficulty

import "math"

// Multiplier bounds. 0.6 is the beginner default, 2.5 the hardest setting.
const (
	MinMultiplier = 0.6
	MaxMultiplier = 2.5
)

// Metrics is the slice of a player profile the engine reads.
type Metrics struct {
	GamesPlayed       int
	BestScore         int
	AverageScore      float64
	GamesWon          int
	WinRate           float64
	ConsecutiveWins   int
	ConsecutiveLosses int
	RecentAverage     float64
}

// IsNew reports whether the profile has never recorded a game. Every
// cumulative metric must be zero; checking them all guards against a
// partially written record passing as experienced on GamesPlayed alone.
func (m Metrics) IsNew() bool {
	return m.GamesPlayed == 0 &&
		m.BestScore == 0 &&
		m.AverageScore == 0 &&
		m.GamesWon == 0 &&
		m.WinRate == 0 &&
		m.ConsecutiveWins == 0 &&
		m.RecentAverage == 0
}

// DeriveMultiplier maps performance metrics to a multiplier in
// [MinMultiplier, MaxMultiplier].
//
// A brand-new profile short-circuits to MinMultiplier: the formula below
// would yield the 1.0 base from all-zero inputs, which is too hard for a
// first game.
func DeriveMultiplier(m Metrics) float64 {
	if m.IsNew() {
		return MinMultiplier
	}

	multiplier := 1.0

	// Experience bonus: +0.05 per 5 games, max +0.5.
	multiplier += math.Min(0.5, math.Floor(float64(m.GamesPlayed)/5)*0.05)

	// Score performance: baseline 50k, +0.1 per 10k above, max +0.5.
	if m.BestScore > 50000 {
		multiplier += math.Min(0.5, math.Floor(float64(m.BestScore-50000)/10000)*0.1)
	}

	// Win rate: 0 at 50%, smooth ramp to +0.2 at 100%.
	if m.WinRate > 0.5 {
		multiplier += math.Min(0.2, (m.WinRate-0.5)*0.4)
	}

	// Win streak: +0.05 per consecutive win, max +0.3.
	multiplier += math.Min(0.3, float64(m.ConsecutiveWins)*0.05)

	// Trending upward: recent window clearly beating the lifetime average.
	if m.RecentAverage > 0 && m.AverageScore > 0 {
		if m.RecentAverage/math.Max(1, m.AverageScore) > 1.2 {
			multiplier += 0.1
		}
	}

	// Loss decay: both thresholds stack, -0.35 total at 5+ losses.
	if m.ConsecutiveLosses >= 3 {
		multiplier -= 0.15
	}
	if m.ConsecutiveLosses >= 5 {
		multiplier -= 0.2
	}

	return clamp(multiplier, MinMultiplier, MaxMultiplier)
}

// Tier names the canonical difficulty band for a multiplier. This is the
// threshold table persisted with profiles.
func Tier(multiplier float64) string {
	switch {
	case multiplier < 1.0:
		return "Beginner"
	case multiplier < 1.3:
		return "Normal"
	case multiplier < 1.6:
		return "Advanced"
	case multiplier < 2.0:
		return "Expert"
	default:
		return "Master"
	}
}

// StartLabel names the band shown in the session-start log line. Its
// thresholds predate Tier's and disagree below 1.6; kept separate rather
// than silently merged, pending a product decision on which is canonical.
func StartLabel(multiplier float64) string {
	switch {
	case multiplier < 0.9:
		return "Beginner"
	case multiplier < 1.2:
		return "Normal"
	case multiplier < 1.5:
		return "Advanced"
	case multiplier < 2.0:
		return "Expert"
	default:
		return "Master"
	}
}

// StartingMultiplier applies the session-start onboarding cap: new players
// are forced to the beginner multiplier, early players are held inside a
// corridor that widens with games played, veterans get the full range.
func StartingMultiplier(profileMultiplier float64, gamesPlayed int) float64 {
	if gamesPlayed == 0 {
		return MinMultiplier
	}

	cap := MaxMultiplier
	switch {
	case gamesPlayed <= 5:
		cap = 0.8
	case gamesPlayed <= 10:
		cap = 1.2
	}
	return math.Min(cap, math.Max(MinMultiplier, profileMultiplier))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
