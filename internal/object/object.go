// Package object defines the session-scoped game entities and the
// playfield geometry they move in.
package object

// Playfield dimensions in logical pixels. The top UIHeight band is the HUD;
// entities never enter it.
const (
	ScreenWidth  = 800.0
	ScreenHeight = 600.0
	UIHeight     = 120.0
)

// Rect is an axis-aligned box, the collision shape for everything on the
// playfield.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point (x, y) lies strictly inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}
