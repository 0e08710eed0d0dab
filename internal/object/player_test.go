package object

import (
	"testing"
	"time"

	"github.com/starfall-game/starfall/internal/difficulty"
)

func testPlayer() *Player {
	return NewPlayer(difficulty.ExpandParameters(1.0))
}

func TestRapidFireHeatMonotone(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	// Fire faster than the dissipation delay: heat must never drop
	// between consecutive ticks until the lockout triggers.
	interval := p.ShootCooldown + 10*time.Millisecond
	if interval >= p.HeatDissipationDelay {
		t.Fatalf("test setup: fire interval %v not inside delay window %v", interval, p.HeatDissipationDelay)
	}

	prev := p.Heat
	for i := 0; i < 200 && !p.LockedOut; i++ {
		now = now.Add(interval)
		p.TryFire(now)
		p.StepHeat(now)
		if p.Heat < prev {
			t.Fatalf("heat dropped mid-burst: %v -> %v", prev, p.Heat)
		}
		prev = p.Heat
	}
	if !p.LockedOut {
		t.Fatal("sustained rapid fire never triggered lockout")
	}
}

func TestFireDuringLockoutIsNoOp(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.Heat = MaxHeat
	p.StepHeat(now)
	if !p.LockedOut {
		t.Fatal("max heat did not lock the weapon")
	}

	heat, lives, lastShot := p.Heat, p.Lives, p.LastShot
	if p.TryFire(now.Add(time.Second)) {
		t.Fatal("fire succeeded during lockout")
	}
	if p.Heat != heat || p.Lives != lives || !p.LastShot.Equal(lastShot) {
		t.Fatal("no-op fire mutated player state")
	}
}

func TestLockoutEndsWithHeatReset(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.Heat = MaxHeat
	p.StepHeat(now)

	// During lockout heat drains at the accelerated fixed rate.
	p.StepHeat(now.Add(time.Millisecond))
	if p.Heat != MaxHeat-2.5 {
		t.Fatalf("lockout drain = %v, want %v", MaxHeat-p.Heat, 2.5)
	}

	p.StepHeat(now.Add(p.LockoutDuration + time.Second))
	if p.LockedOut {
		t.Fatal("weapon still locked after deadline")
	}
	if p.Heat != 0 {
		t.Fatalf("heat after lockout = %v, want exactly 0", p.Heat)
	}
}

func TestHeatDissipatesOnlyAfterDelay(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.TryFire(now)
	fired := p.Heat

	// Inside the delay window: no cooling.
	p.StepHeat(now.Add(p.HeatDissipationDelay / 2))
	if p.Heat != fired {
		t.Fatalf("heat cooled inside delay window: %v -> %v", fired, p.Heat)
	}

	// Past the window: cooling resumes at the dissipation rate.
	p.StepHeat(now.Add(p.HeatDissipationDelay + time.Millisecond))
	if p.Heat != fired-p.HeatDissipationRate {
		t.Fatalf("heat after delay = %v, want %v", p.Heat, fired-p.HeatDissipationRate)
	}
}

func TestBoostedAmmoSkipsHeat(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.AmmoBoost = 2
	if !p.TryFire(now) {
		t.Fatal("boosted shot refused")
	}
	if p.Heat != 0 {
		t.Fatalf("boosted shot added heat: %v", p.Heat)
	}
	if p.AmmoBoost != 1 {
		t.Fatalf("boost counter = %d, want 1", p.AmmoBoost)
	}

	// Boost depleted: next shot heats normally.
	now = now.Add(p.ShootCooldown + time.Millisecond)
	p.TryFire(now)
	now = now.Add(p.ShootCooldown + time.Millisecond)
	p.TryFire(now)
	if p.Heat != p.HeatPerShot {
		t.Fatalf("post-boost heat = %v, want %v", p.Heat, p.HeatPerShot)
	}
}

func TestLevel1HitsAreHullDamage(t *testing.T) {
	p := testPlayer()
	now := time.Now()
	p.RechargeShield(now, 1)

	lives := p.Lives
	hull := p.ApplyBulletHit(now, 30, 1)
	if !hull {
		t.Fatal("level 1 hit did not reach the hull")
	}
	if p.Lives != lives-1 {
		t.Fatalf("lives = %d, want %d", p.Lives, lives-1)
	}
	if p.Shield != 0 {
		t.Fatalf("level 1 shield = %v, want 0", p.Shield)
	}
}

func TestShieldBreakCostsOneLife(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.Shield = 10
	lives := p.Lives
	hull := p.ApplyBulletHit(now, 30, 2)
	if !hull {
		t.Fatal("shield-breaking hit did not reach the hull")
	}
	if p.Shield != 0 {
		t.Fatalf("shield = %v, want 0", p.Shield)
	}
	if p.Lives != lives-1 {
		t.Fatalf("lives = %d, want exactly one less (%d)", p.Lives, lives-1)
	}
}

func TestShieldAbsorbsFullyCoveredHit(t *testing.T) {
	p := testPlayer()
	now := time.Now()

	p.Shield = 90
	lives := p.Lives
	if hull := p.ApplyBulletHit(now, 30, 2); hull {
		t.Fatal("covered hit reached the hull")
	}
	if p.Shield != 60 {
		t.Fatalf("shield = %v, want 60", p.Shield)
	}
	if p.Lives != lives {
		t.Fatalf("lives changed on absorbed hit: %d -> %d", lives, p.Lives)
	}

	// Edge: shield == damage drains the shield but spares the hull.
	p.Shield = 30
	if hull := p.ApplyBulletHit(now, 30, 2); hull {
		t.Fatal("exact-cover hit reached the hull")
	}
	if p.Shield != 0 || p.Lives != lives {
		t.Fatalf("exact-cover hit: shield=%v lives=%d", p.Shield, p.Lives)
	}
}

func TestLivesNeverNegative(t *testing.T) {
	p := testPlayer()
	now := time.Now()
	for i := 0; i < 10; i++ {
		p.ApplyBulletHit(now, 30, 1)
	}
	if p.Lives != 0 {
		t.Fatalf("lives = %d, want clamp at 0", p.Lives)
	}
}

func TestSentinelShieldCountsDown(t *testing.T) {
	e := &Enemy{Type: EnemySentinel, ShieldHits: 2, Width: EnemyWidth, Height: EnemyHeight}
	if e.Hit() {
		t.Fatal("first hit destroyed a shielded sentinel")
	}
	if e.Hit() {
		t.Fatal("second hit destroyed sentinel with shield remaining")
	}
	if !e.Hit() {
		t.Fatal("hit after shield depletion did not destroy the sentinel")
	}
}
