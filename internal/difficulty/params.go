package difficulty

import (
	"math"
	"time"
)

// Base values the parameter table scales from. They match the playfield
// geometry in the session package.
const (
	baseShootChance      = 0.001
	baseBulletSpeed      = 3.0
	baseBulletDamage     = 30.0
	baseAdvanceSpeed     = 8.0 // enemy height / 4
	baseHeatPerShot      = 8.0
	baseHeatDissipation  = 0.5
	basePlayerSpeed      = 6.5
	basePowerupFallSpeed = 2.0
	baseEnemyGap         = 15.0
)

// Params is the full difficulty-adjusted parameter table, derived once per
// session from a multiplier and immutable for the session's duration.
type Params struct {
	Multiplier float64

	// Enemy behavior
	EnemyShootChance     float64
	EnemyBulletSpeed     float64
	EnemyBulletDamage    float64
	EnemySpeedMultiplier float64
	EnemyVerticalDescent float64
	EnemyAdvanceSpeed    float64
	SentinelShieldHits   int
	EnemyCountMultiplier float64
	EnemyGap             float64

	// Player weapon
	HeatPerShot          float64
	HeatDissipationRate  float64
	HeatDissipationDelay time.Duration
	LockoutDuration      time.Duration
	ShootCooldown        time.Duration

	// Player shield
	ShieldRechargeRate float64
	MaxShield          float64

	// Player movement and resources
	PlayerSpeed      float64
	StartingLives    int
	StartingGrenades int

	// Powerups
	PowerupDropMultiplier float64
	PowerupFallSpeed      float64

	// Intensity spikes
	SpikeIntervalMin    time.Duration
	SpikeIntervalMax    time.Duration
	SpikeDurationMult   float64
	SpikeEnemySizeBonus float64

	// Level modifiers
	LevelIntensityMultiplier float64
}

// ExpandParameters fans a multiplier out into the adjusted parameter table.
// Every field is a deterministic function of the multiplier alone; the only
// branching is the tiered starting-resource rule.
func ExpandParameters(m float64) Params {
	p := Params{Multiplier: m}

	p.EnemyShootChance = baseShootChance * (0.3 + m*0.7)
	p.EnemySpeedMultiplier = 0.8 + m*0.35
	p.EnemyVerticalDescent = 0.04 * (1.0 + m*0.5)
	p.EnemyAdvanceSpeed = baseAdvanceSpeed * (0.9 + m*0.25)

	p.EnemyBulletSpeed = baseBulletSpeed * (0.75 + m*0.25)
	p.EnemyBulletDamage = baseBulletDamage * (0.8 + m*0.3)

	p.SentinelShieldHits = 2 + int(math.Floor(m*0.5))

	p.HeatPerShot = baseHeatPerShot * (1.0 + m*0.25)
	p.HeatDissipationRate = baseHeatDissipation * (1.0 - m*0.2)
	p.HeatDissipationDelay = scaleMS(500, 1.0+m*0.5)
	p.LockoutDuration = scaleMS(3000, 1.0+m*0.3)
	p.ShootCooldown = scaleMS(200, 1.0+m*0.2)

	p.ShieldRechargeRate = 0.05 * (1.0 - m*0.3)
	p.MaxShield = math.Max(80, 100-math.Floor(m*5))

	p.PlayerSpeed = basePlayerSpeed * (1.0 - m*0.08)

	switch {
	case m > 2.0:
		p.StartingLives, p.StartingGrenades = 2, 0
	case m > 1.8:
		p.StartingLives, p.StartingGrenades = 2, 1
	default:
		p.StartingLives, p.StartingGrenades = 3, 1
	}

	p.PowerupDropMultiplier = 1.2 - m*0.25
	p.PowerupFallSpeed = basePowerupFallSpeed * (0.7 + m*0.3)

	p.SpikeIntervalMin = scaleMS(5000, 1.0-m*0.3)
	p.SpikeIntervalMax = scaleMS(10000, 1.0-m*0.3)
	p.SpikeDurationMult = 1.0 + m*0.3
	p.SpikeEnemySizeBonus = 8 * (1.0 + m*0.5)

	p.EnemyCountMultiplier = 1.0 + m*0.3
	p.EnemyGap = math.Max(10, baseEnemyGap-m*1.0)

	p.LevelIntensityMultiplier = 0.8 + m*0.3

	return p
}

func scaleMS(baseMS float64, factor float64) time.Duration {
	return time.Duration(baseMS * factor * float64(time.Millisecond))
}
