package object

// BulletSpeed is the player bullet's upward speed per tick.
const BulletSpeed = 7.0

// Bullet is a player shot. It only moves vertically. ShotIndex back-references
// the telemetry shot log so hits can be mapped to shots; -1 when telemetry is
// not recording.
type Bullet struct {
	X, Y      float64
	ShotIndex int
}

// EnemyBullet is an aimed enemy shot with a full velocity vector.
type EnemyBullet struct {
	X, Y   float64
	DX, DY float64
}

// Step moves the bullet one tick. Returns false once it leaves the playfield.
func (b *Bullet) Step() bool {
	b.Y -= BulletSpeed
	return b.Y >= UIHeight
}

// Step moves the bullet one tick. Returns false once it leaves the playfield.
func (b *EnemyBullet) Step() bool {
	b.X += b.DX
	b.Y += b.DY
	return b.Y <= ScreenHeight && b.Y >= UIHeight && b.X >= 0 && b.X <= ScreenWidth
}
