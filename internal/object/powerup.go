package object

import "math"

// PowerupSize is the powerup's square dimension in logical pixels.
const PowerupSize = 20.0

// PowerupType identifies what a powerup grants on collection.
type PowerupType int

const (
	PowerupLives PowerupType = iota
	PowerupShield
	PowerupAmmo
	PowerupGrenade
)

func (t PowerupType) String() string {
	switch t {
	case PowerupLives:
		return "lives"
	case PowerupShield:
		return "shield"
	case PowerupAmmo:
		return "ammo"
	default:
		return "grenade"
	}
}

// Powerup drifts down from a destroyed enemy at a difficulty-adjusted
// constant speed until collected or off-screen.
type Powerup struct {
	X, Y float64
	Type PowerupType
}

// Rect returns the powerup's collision box.
func (p *Powerup) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: PowerupSize, H: PowerupSize}
}

// Step moves the powerup one tick at fallSpeed. Returns false once it falls
// off the bottom of the screen.
func (p *Powerup) Step(fallSpeed float64) bool {
	p.Y += fallSpeed
	return p.Y <= ScreenHeight
}

// Collect applies the powerup's effect to the player. Lives and grenades
// respect their caps; shield tops up by 50; ammo grants the non-heating
// boost counter.
func (p *Powerup) Collect(player *Player) {
	switch p.Type {
	case PowerupLives:
		if player.Lives < player.MaxLives {
			player.Lives++
		}
	case PowerupShield:
		player.Shield = math.Min(player.Shield+50, player.MaxShield)
	case PowerupAmmo:
		player.AmmoBoost = AmmoBoostShots
	case PowerupGrenade:
		if player.Grenades < MaxGrenades {
			player.Grenades++
		}
	}
}
