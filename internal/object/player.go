package object

import (
	"math"
	"time"

	"github.com/starfall-game/starfall/internal/difficulty"
)

// Player dimensions and weapon limits.
const (
	PlayerWidth  = 48.0
	PlayerHeight = 48.0
	MaxHeat      = 100.0
	MaxGrenades  = 3

	// Heat bleeds off at this accelerated fixed rate per tick while the
	// weapon is locked out, regardless of the normal dissipation formula.
	lockoutCooldownPerTick = 2.5

	// AmmoBoostShots is the number of non-heating shots granted by an
	// ammo powerup.
	AmmoBoostShots = 100
)

// Player is the one player-controlled ship in a session. Its weapon runs a
// two-state heat machine: Ready, or Jammed+LockedOut once heat hits MaxHeat.
type Player struct {
	X, Y  float64
	Speed float64
	DX    float64

	Heat                 float64
	HeatPerShot          float64
	HeatDissipationRate  float64
	HeatDissipationDelay time.Duration
	LockedOut            bool
	LockoutEnd           time.Time
	LockoutDuration      time.Duration

	Shield             float64
	MaxShield          float64
	ShieldRechargeRate float64

	ShootCooldown time.Duration
	LastShot      time.Time

	Lives    int
	MaxLives int

	Grenades    int
	AmmoBoost   int // non-heating shots remaining
	ShieldHitAt time.Time
}

// NewPlayer creates the session's player at screen-bottom center with the
// difficulty-adjusted loadout applied.
func NewPlayer(p difficulty.Params) *Player {
	return &Player{
		X:                    ScreenWidth/2 - PlayerWidth/2,
		Y:                    ScreenHeight - PlayerHeight - 20,
		Speed:                p.PlayerSpeed,
		HeatPerShot:          p.HeatPerShot,
		HeatDissipationRate:  p.HeatDissipationRate,
		HeatDissipationDelay: p.HeatDissipationDelay,
		LockoutDuration:      p.LockoutDuration,
		MaxShield:            p.MaxShield,
		ShieldRechargeRate:   p.ShieldRechargeRate,
		ShootCooldown:        p.ShootCooldown,
		Lives:                p.StartingLives,
		MaxLives:             p.StartingLives,
		Grenades:             p.StartingGrenades,
	}
}

// Rect returns the player's collision box.
func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: PlayerWidth, H: PlayerHeight}
}

// Move applies horizontal velocity and clamps to the playfield.
func (p *Player) Move() {
	p.X += p.DX
	if p.X < 0 {
		p.X = 0
	}
	if p.X+PlayerWidth > ScreenWidth {
		p.X = ScreenWidth - PlayerWidth
	}
	if p.Y < UIHeight {
		p.Y = UIHeight
	}
}

// TryFire attempts a shot at the given time. During lockout this is a pure
// no-op. A successful shot consumes boosted ammo first (zero heat), else
// adds HeatPerShot, clamped at MaxHeat.
func (p *Player) TryFire(now time.Time) bool {
	if p.LockedOut {
		return false
	}
	if now.Sub(p.LastShot) <= p.ShootCooldown {
		return false
	}

	if p.AmmoBoost > 0 {
		p.AmmoBoost--
	} else {
		p.Heat = math.Min(MaxHeat, p.Heat+p.HeatPerShot)
	}
	p.LastShot = now
	return true
}

// StepHeat advances the weapon heat machine one tick.
//
// Locked out: heat drains at the accelerated fixed rate until the deadline
// passes, at which point heat resets to exactly 0 and the weapon is ready.
// Ready: a weapon sitting at MaxHeat jams immediately, before any cooling
// can shave it below the threshold. Otherwise heat dissipates only once the
// time since the last shot exceeds the dissipation delay, so sustained
// rapid fire never cools.
func (p *Player) StepHeat(now time.Time) {
	if p.LockedOut {
		if now.After(p.LockoutEnd) {
			p.LockedOut = false
			p.Heat = 0
			return
		}
		p.Heat = math.Max(0, p.Heat-lockoutCooldownPerTick)
		return
	}

	if p.Heat >= MaxHeat {
		p.LockedOut = true
		p.LockoutEnd = now.Add(p.LockoutDuration)
		return
	}

	if p.Heat > 0 && now.Sub(p.LastShot) > p.HeatDissipationDelay {
		p.Heat = math.Max(0, p.Heat-p.HeatDissipationRate)
	}
}

// RechargeShield regenerates shield one tick's worth. Shields only exist
// from level 2 on; level 1 forces them to zero. Recharge pauses during
// lockout, while the weapon is hot, and right after shooting.
func (p *Player) RechargeShield(now time.Time, level int) {
	if level == 1 {
		p.Shield = 0
		return
	}
	if p.LockedOut {
		return
	}
	sinceShot := now.Sub(p.LastShot)
	if sinceShot > p.ShootCooldown*3/2 && p.Heat < 40 && p.Shield < p.MaxShield {
		p.Shield = math.Min(p.MaxShield, p.Shield+p.ShieldRechargeRate)
	}
}

// ApplyBulletHit resolves an enemy bullet hit and reports whether it cost a
// life (hull damage).
//
// Level 1 has shields architecturally disabled: every hit is hull damage.
// Level 2+: the shield absorbs the hit; if the pre-hit shield was smaller
// than the damage, the same hit that breaks the shield also costs exactly
// one life — no fractional carry-over. An empty shield passes hits straight
// to the hull.
func (p *Player) ApplyBulletHit(now time.Time, damage float64, level int) bool {
	if level == 1 {
		p.loseLife()
		return true
	}

	if p.Shield > 0 {
		before := p.Shield
		p.Shield = math.Max(0, p.Shield-damage)
		p.ShieldHitAt = now
		if p.Shield == 0 && before < damage {
			p.loseLife()
			return true
		}
		return false
	}

	p.loseLife()
	return true
}

// ResetToCenter snaps the player back to screen-center, the punitive
// repositioning that accompanies every hull hit.
func (p *Player) ResetToCenter() {
	p.X = ScreenWidth/2 - PlayerWidth/2
}

func (p *Player) loseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// LockoutRemaining returns the time until the weapon unjams, or zero when
// the weapon is ready.
func (p *Player) LockoutRemaining(now time.Time) time.Duration {
	if !p.LockedOut {
		return 0
	}
	if remaining := p.LockoutEnd.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
