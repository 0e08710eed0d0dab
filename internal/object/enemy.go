package object

// Enemy dimensions in logical pixels, shared by both enemy types.
const (
	EnemyWidth  = 48.0
	EnemyHeight = 32.0
)

// EnemyType distinguishes regular invaders from shielded sentinels.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemySentinel
)

func (t EnemyType) String() string {
	if t == EnemySentinel {
		return "sentinel"
	}
	return "normal"
}

// Enemy is one invader. Sentinels carry ShieldHits, which counts down to
// zero before the enemy itself becomes destructible.
type Enemy struct {
	X, Y       float64
	Width      float64
	Height     float64
	Type       EnemyType
	ShieldHits int
}

// Rect returns the enemy's collision box, grown by sizeBonus during an
// intensity spike.
func (e *Enemy) Rect(sizeBonus float64) Rect {
	return Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height + sizeBonus}
}

// Hit applies one hit and reports whether the enemy is destroyed. A
// sentinel's shield soaks hits until it is depleted.
func (e *Enemy) Hit() bool {
	if e.Type == EnemySentinel && e.ShieldHits > 0 {
		e.ShieldHits--
		return false
	}
	return true
}
