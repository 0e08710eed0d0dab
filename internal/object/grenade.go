package object

import "math"

// Grenade tuning.
const (
	GrenadeSpeed         = 5.0
	GrenadeFragmentCount = 4
	GrenadeFragmentSpeed = 6.0

	// Main grenades detonate on enemy impact or on reaching this altitude.
	GrenadeExplodeAltitude = UIHeight + 100
)

// GrenadeType distinguishes the launched grenade from its fragments.
type GrenadeType int

const (
	GrenadeMain GrenadeType = iota
	GrenadeFragment
)

// Grenade is either a main grenade traveling straight up or one of the four
// fragments it bursts into. Fragments fly independently and die on their
// first enemy hit or off-screen.
type Grenade struct {
	X, Y   float64
	Type   GrenadeType
	DX, DY float64
}

// fragmentAngles is the fixed diagonal spread pattern.
var fragmentAngles = [GrenadeFragmentCount]float64{
	-math.Pi / 4,
	math.Pi / 4,
	-3 * math.Pi / 4,
	3 * math.Pi / 4,
}

// Fragments returns the exact fragment set for a grenade bursting at (x, y).
func Fragments(x, y float64) []Grenade {
	out := make([]Grenade, 0, GrenadeFragmentCount)
	for _, angle := range fragmentAngles {
		out = append(out, Grenade{
			X:    x,
			Y:    y,
			Type: GrenadeFragment,
			DX:   math.Cos(angle) * GrenadeFragmentSpeed,
			DY:   math.Sin(angle) * GrenadeFragmentSpeed,
		})
	}
	return out
}

// Step moves the grenade one tick. For main grenades it returns explode=true
// when the altitude trigger fires. remove=true means the grenade left the
// playfield.
func (g *Grenade) Step() (explode, remove bool) {
	if g.Type == GrenadeMain {
		g.Y -= GrenadeSpeed
		if g.Y < GrenadeExplodeAltitude {
			return true, false
		}
		return false, false
	}

	g.X += g.DX
	g.Y += g.DY
	if g.X < 0 || g.X > ScreenWidth || g.Y < UIHeight || g.Y > ScreenHeight {
		return false, true
	}
	return false, false
}
