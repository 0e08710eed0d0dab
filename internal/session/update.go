package session

import (
	"math"
	"time"

	"github.com/starfall-game/starfall/internal/object"
)

// Spike durations randomize within this band before the difficulty
// multiplier stretches them.
const (
	spikeBaseDuration   = 2 * time.Second
	spikeDurationJitter = 3 * time.Second
)

func (s *Session) handleInput(now time.Time, in Input) {
	s.player.DX = 0
	if in.Left {
		s.player.DX = -s.player.Speed
	}
	if in.Right {
		s.player.DX = s.player.Speed
	}

	if in.Fire && s.player.TryFire(now) {
		x := s.player.X + object.PlayerWidth/2 - 2
		idx := s.recorder.RecordShot(x, s.player.Y, now)
		s.bullets = append(s.bullets, object.Bullet{X: x, Y: s.player.Y, ShotIndex: idx})
		s.levelAmmo++
		s.totalAmmo++
	}

	// Rising edge only, or a held key would empty the whole rack.
	if in.Grenade && !s.prevGrenade && s.player.Grenades > 0 {
		s.player.Grenades--
		s.grenades = append(s.grenades, object.Grenade{
			X:    s.player.X + object.PlayerWidth/2,
			Y:    s.player.Y,
			Type: object.GrenadeMain,
		})
		s.recorder.RecordEvent("grenade_launched", now, nil)
	}
	s.prevGrenade = in.Grenade
}

func (s *Session) scheduleNextSpike(now time.Time) {
	span := s.params.SpikeIntervalMax - s.params.SpikeIntervalMin
	s.nextSpikeAt = now.Add(s.params.SpikeIntervalMin + time.Duration(s.rng.Float64()*float64(span)))
}

func (s *Session) stepSpikes(now time.Time) {
	if s.spikeActive {
		if now.After(s.spikeEnd) {
			s.spikeActive = false
			s.scheduleNextSpike(now)
		}
		return
	}
	if now.After(s.nextSpikeAt) {
		s.spikeActive = true
		base := spikeBaseDuration + time.Duration(s.rng.Float64()*float64(spikeDurationJitter))
		s.spikeEnd = now.Add(time.Duration(float64(base) * s.params.SpikeDurationMult))
		s.recorder.RecordEvent("spike_start", now, nil)
	}
}

// strikeVolume scales enemy fire. It pins to 5x during a spike; otherwise
// it creeps up with level time so a stalled player cannot camp forever.
func (s *Session) strikeVolume(now time.Time) float64 {
	if s.spikeActive {
		return 5
	}
	return 1 + now.Sub(s.levelStartedAt).Seconds()*0.01
}

func (s *Session) stepMovement(now time.Time) {
	s.player.Move()

	kept := s.bullets[:0]
	for i := range s.bullets {
		b := s.bullets[i]
		if b.Step() {
			kept = append(kept, b)
		}
	}
	s.bullets = kept

	keptEB := s.enemyBullets[:0]
	for i := range s.enemyBullets {
		b := s.enemyBullets[i]
		if b.Step() {
			keptEB = append(keptEB, b)
		}
	}
	s.enemyBullets = keptEB

	keptG := s.grenades[:0]
	for i := range s.grenades {
		g := s.grenades[i]
		explode, remove := g.Step()
		if remove {
			continue
		}
		if explode {
			keptG = append(keptG, object.Fragments(g.X, g.Y)...)
			continue
		}
		keptG = append(keptG, g)
	}
	s.grenades = keptG

	keptP := s.powerups[:0]
	for i := range s.powerups {
		p := s.powerups[i]
		if p.Step(s.params.PowerupFallSpeed) {
			keptP = append(keptP, p)
		}
	}
	s.powerups = keptP

	s.stepEnemies()
}

// stepEnemies marches the horde sideways, speeding up as it thins out, and
// drops it a full advance step whenever an edge is reached.
func (s *Session) stepEnemies() {
	hordeSpeed := 1 + float64(fullFormation-len(s.enemies))*0.05
	if hordeSpeed < 1 {
		hordeSpeed = 1
	}
	dx := s.enemyDir * hordeSpeed * s.params.EnemySpeedMultiplier

	hitEdge := false
	for _, e := range s.enemies {
		e.X += dx
		e.Y += s.params.EnemyVerticalDescent
		if e.X <= 0 || e.X+e.Width >= object.ScreenWidth {
			hitEdge = true
		}
	}
	if hitEdge {
		s.enemyDir = -s.enemyDir
		for _, e := range s.enemies {
			e.Y += s.params.EnemyAdvanceSpeed
			if e.X < 0 {
				e.X = 0
			}
			if e.X+e.Width > object.ScreenWidth {
				e.X = object.ScreenWidth - e.Width
			}
		}
	}
}

// enemyFire rolls the per-tick shoot chance once; on success one random
// frontline enemy fires. Only the deepest enemy in each column is eligible;
// the shot is aimed at the player's current center.
func (s *Session) enemyFire(now time.Time) {
	balance := balanceFor(s.level)
	chance := s.params.EnemyShootChance *
		s.strikeVolume(now) *
		balance.shootingIntensity *
		s.params.LevelIntensityMultiplier

	if s.rng.Float64() >= chance {
		return
	}
	shooters := s.frontline()
	if len(shooters) == 0 {
		return
	}
	e := shooters[s.rng.Intn(len(shooters))]

	px := s.player.X + object.PlayerWidth/2
	py := s.player.Y + object.PlayerHeight/2
	ox := e.X + e.Width/2
	oy := e.Y + e.Height
	dx, dy := px-ox, py-oy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	s.enemyBullets = append(s.enemyBullets, object.EnemyBullet{
		X:  ox,
		Y:  oy,
		DX: dx / dist * s.params.EnemyBulletSpeed,
		DY: dy / dist * s.params.EnemyBulletSpeed,
	})
}

// frontline returns the lowest enemy per column. Columns are bucketed by
// spawn-grid spacing so the set stays stable while the horde drifts.
func (s *Session) frontline() []*object.Enemy {
	columnWidth := object.EnemyWidth + s.params.EnemyGap
	lowest := make(map[int]*object.Enemy)
	for _, e := range s.enemies {
		col := int(e.X / columnWidth)
		if cur, ok := lowest[col]; !ok || e.Y > cur.Y {
			lowest[col] = e
		}
	}
	out := make([]*object.Enemy, 0, len(lowest))
	for _, e := range lowest {
		out = append(out, e)
	}
	return out
}
