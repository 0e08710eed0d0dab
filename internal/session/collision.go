package session

import (
	"time"

	"github.com/starfall-game/starfall/internal/object"
)

// Player bullet collision box.
const (
	bulletWidth  = 4.0
	bulletHeight = 12.0
)

func (s *Session) resolveCollisions(now time.Time) {
	s.bulletsVsEnemies(now)
	s.grenadesVsEnemies(now)
	s.enemyBulletsVsPlayer(now)
	s.powerupsVsPlayer(now)
	s.enemiesVsPlayer(now)
}

func (s *Session) bulletsVsEnemies(now time.Time) {
	bonus := s.sizeBonus()
	kept := s.bullets[:0]
	for i := range s.bullets {
		b := s.bullets[i]
		rect := object.Rect{X: b.X, Y: b.Y, W: bulletWidth, H: bulletHeight}

		hit := false
		for _, e := range s.enemies {
			if rect.Overlaps(e.Rect(bonus)) {
				hit = true
				s.recorder.MarkShotHit(b.ShotIndex, e.Type.String())
				s.damageEnemy(now, e)
				break
			}
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	s.bullets = kept
}

// grenadesVsEnemies detonates main grenades on contact and burns fragments
// on their first hit. The main shell itself deals no damage; only its
// fragments do. Fragments from a contact detonation join the flight list
// immediately and can themselves hit on the next tick.
func (s *Session) grenadesVsEnemies(now time.Time) {
	bonus := s.sizeBonus()
	kept := s.grenades[:0]
	var spawned []object.Grenade

	for i := range s.grenades {
		g := s.grenades[i]

		var struck *object.Enemy
		for _, e := range s.enemies {
			if e.Rect(bonus).Contains(g.X, g.Y) {
				struck = e
				break
			}
		}
		if struck == nil {
			kept = append(kept, g)
			continue
		}

		if g.Type == object.GrenadeMain {
			spawned = append(spawned, object.Fragments(g.X, g.Y)...)
		} else {
			s.damageEnemy(now, struck)
		}
	}
	s.grenades = append(kept, spawned...)
}

// damageEnemy applies one hit. Sentinels burn through their shield count
// before dying; normals die outright.
func (s *Session) damageEnemy(now time.Time, e *object.Enemy) {
	if !e.Hit() {
		return
	}

	kept := s.enemies[:0]
	for _, other := range s.enemies {
		if other != e {
			kept = append(kept, other)
		}
	}
	s.enemies = kept
	s.totalKills++
	s.recorder.RecordEvent("enemy_killed", now, map[string]any{
		"type":  e.Type.String(),
		"level": s.level,
	})

	s.maybeDropPowerup(e)
}

// maybeDropPowerup rolls the level's drop table, scaled by the difficulty
// drop multiplier, at the dead enemy's position. Type weights are cumulative
// bands; grenades take whatever the named weights leave over.
func (s *Session) maybeDropPowerup(e *object.Enemy) {
	balance := balanceFor(s.level)
	if s.rng.Float64() >= balance.dropChance*s.params.PowerupDropMultiplier {
		return
	}

	roll := s.rng.Float64()
	var t object.PowerupType
	switch {
	case roll < balance.livesWeight:
		t = object.PowerupLives
	case roll < balance.livesWeight+balance.shieldWeight:
		t = object.PowerupShield
	case roll < balance.livesWeight+balance.shieldWeight+balance.ammoWeight:
		t = object.PowerupAmmo
	default:
		t = object.PowerupGrenade
	}

	s.powerups = append(s.powerups, object.Powerup{
		X:    e.X + e.Width/2 - object.PowerupSize/2,
		Y:    e.Y + e.Height/2,
		Type: t,
	})
}

func (s *Session) enemyBulletsVsPlayer(now time.Time) {
	pr := s.player.Rect()
	kept := s.enemyBullets[:0]
	for i := range s.enemyBullets {
		b := s.enemyBullets[i]
		if !pr.Contains(b.X, b.Y) {
			kept = append(kept, b)
			continue
		}

		if s.player.ApplyBulletHit(now, s.params.EnemyBulletDamage, s.level) {
			s.player.ResetToCenter()
			s.recorder.RecordEvent("player_death", now, map[string]any{
				"lives": s.player.Lives,
				"level": s.level,
			})
		}
	}
	s.enemyBullets = kept
}

func (s *Session) powerupsVsPlayer(now time.Time) {
	pr := s.player.Rect()
	kept := s.powerups[:0]
	for i := range s.powerups {
		p := s.powerups[i]
		if !p.Rect().Overlaps(pr) {
			kept = append(kept, p)
			continue
		}
		p.Collect(s.player)
		s.recorder.RecordEvent("powerup_collected", now, map[string]any{
			"type": p.Type.String(),
		})
	}
	s.powerups = kept
}

// enemiesVsPlayer ends the run outright when the horde physically reaches
// the ship. No shield or spare life survives a boarding.
func (s *Session) enemiesVsPlayer(now time.Time) {
	bonus := s.sizeBonus()
	pr := s.player.Rect()
	for _, e := range s.enemies {
		if e.Rect(bonus).Overlaps(pr) {
			s.player.Lives = 0
			s.recorder.RecordEvent("player_death", now, map[string]any{
				"cause": "collision",
				"level": s.level,
			})
			return
		}
	}
}
