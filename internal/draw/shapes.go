package draw

// Sprite drawing for every playfield entity. All coordinates are logical;
// the canvas scales them. Sprites are built from rects and lines so they
// stay readable at half-block resolution on small terminals.

// Ship draws the player's ship: a triangular hull on a full-width base.
func Ship(c *Canvas, x, y, w, h float64) {
	nose := Point{x + w/2, y}
	left := Point{x, y + h*0.75}
	right := Point{x + w, y + h*0.75}

	c.DrawLine(nose, left)
	c.DrawLine(nose, right)
	c.FillRect(x, y+h*0.75, w, h*0.25)
	// Cockpit spine
	c.FillRect(x+w*0.4, y+h*0.35, w*0.2, h*0.4)
}

// Invader draws a regular enemy: a wide body with antennae and legs.
func Invader(c *Canvas, x, y, w, h float64) {
	c.FillRect(x, y+h*0.25, w, h*0.5)
	// Antennae
	c.DrawLine(Point{x + w*0.25, y + h*0.25}, Point{x + w*0.1, y})
	c.DrawLine(Point{x + w*0.75, y + h*0.25}, Point{x + w*0.9, y})
	// Legs
	c.FillRect(x+w*0.15, y+h*0.75, w*0.15, h*0.25)
	c.FillRect(x+w*0.7, y+h*0.75, w*0.15, h*0.25)
}

// Sentinel draws a shielded enemy: the invader body inside a shield ring.
// shielded toggles the outer ring off once the shield is down.
func Sentinel(c *Canvas, x, y, w, h float64, shielded bool) {
	c.FillRect(x+w*0.2, y+h*0.3, w*0.6, h*0.4)
	if shielded {
		c.DrawRect(x, y, w, h)
	}
}

// ShipBullet draws a player bullet as a thin vertical bolt.
func ShipBullet(c *Canvas, x, y float64) {
	c.FillRect(x, y, 4, 12)
}

// EnemyBolt draws an enemy bullet as a small square.
func EnemyBolt(c *Canvas, x, y float64) {
	c.FillRect(x-3, y-3, 6, 6)
}

// GrenadeShell draws a grenade or fragment in flight.
func GrenadeShell(c *Canvas, x, y float64) {
	c.FillRect(x-4, y-4, 8, 8)
	c.DrawLine(Point{x, y - 7}, Point{x, y + 7})
	c.DrawLine(Point{x - 7, y}, Point{x + 7, y})
}

// PowerupBox draws the outline crate a powerup falls in. The type letter is
// overlaid as text by the renderer.
func PowerupBox(c *Canvas, x, y, size float64) {
	c.DrawRect(x, y, size, size)
}
