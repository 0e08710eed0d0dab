package difficulty

import (
	"math"
	"testing"
	"time"
)

func TestExpandParametersAtBase(t *testing.T) {
	p := ExpandParameters(1.0)

	if math.Abs(p.EnemyShootChance-0.001) > 1e-12 {
		t.Errorf("shoot chance at 1.0 = %v, want 0.001", p.EnemyShootChance)
	}
	if math.Abs(p.EnemyBulletSpeed-3.0) > 1e-9 {
		t.Errorf("bullet speed at 1.0 = %v, want 3.0", p.EnemyBulletSpeed)
	}
	if p.StartingLives != 3 || p.StartingGrenades != 1 {
		t.Errorf("starting resources at 1.0 = %d/%d, want 3/1", p.StartingLives, p.StartingGrenades)
	}
	if p.SentinelShieldHits != 2 {
		t.Errorf("sentinel shield hits at 1.0 = %d, want 2", p.SentinelShieldHits)
	}
	if p.HeatPerShot != 10 {
		t.Errorf("heat per shot at 1.0 = %v, want 10", p.HeatPerShot)
	}
	if p.ShootCooldown != 240*time.Millisecond {
		t.Errorf("shoot cooldown at 1.0 = %v, want 240ms", p.ShootCooldown)
	}
}

func TestStartingResourceTiers(t *testing.T) {
	cases := []struct {
		m        float64
		lives    int
		grenades int
	}{
		{0.6, 3, 1},
		{1.8, 3, 1},
		{1.9, 2, 1},
		{2.0, 2, 1},
		{2.1, 2, 0},
		{2.5, 2, 0},
	}
	for _, c := range cases {
		p := ExpandParameters(c.m)
		if p.StartingLives != c.lives || p.StartingGrenades != c.grenades {
			t.Errorf("m=%v: resources %d/%d, want %d/%d",
				c.m, p.StartingLives, p.StartingGrenades, c.lives, c.grenades)
		}
	}
}

func TestParamsMonotoneWithMultiplier(t *testing.T) {
	easy := ExpandParameters(MinMultiplier)
	hard := ExpandParameters(MaxMultiplier)

	if easy.EnemyShootChance >= hard.EnemyShootChance {
		t.Error("shoot chance should rise with the multiplier")
	}
	if easy.HeatDissipationRate <= hard.HeatDissipationRate {
		t.Error("heat dissipation should fall with the multiplier")
	}
	if easy.PowerupDropMultiplier <= hard.PowerupDropMultiplier {
		t.Error("powerup drops should fall with the multiplier")
	}
	if easy.LockoutDuration >= hard.LockoutDuration {
		t.Error("lockout should lengthen with the multiplier")
	}
	if easy.PlayerSpeed <= hard.PlayerSpeed {
		t.Error("player speed should fall with the multiplier")
	}
}

func TestMaxShieldFloor(t *testing.T) {
	if got := ExpandParameters(2.5).MaxShield; got != 88 {
		t.Errorf("max shield at 2.5 = %v, want 88", got)
	}
	if got := ExpandParameters(MinMultiplier).MaxShield; got != 97 {
		t.Errorf("max shield at 0.6 = %v, want 97", got)
	}
}

func TestEnemyGapFloor(t *testing.T) {
	if got := ExpandParameters(2.5).EnemyGap; got != 12.5 {
		t.Errorf("enemy gap at 2.5 = %v, want 12.5", got)
	}
}
