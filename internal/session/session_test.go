package session

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/starfall-game/starfall/internal/object"
	"github.com/starfall-game/starfall/internal/profile"
	"github.com/starfall-game/starfall/internal/score"
	"github.com/starfall-game/starfall/internal/telemetry"
)

type memProfiles struct {
	mu      sync.Mutex
	m       map[string]*profile.Profile
	loadErr error
}

func newMemProfiles() *memProfiles {
	return &memProfiles{m: make(map[string]*profile.Profile)}
}

func (s *memProfiles) Load(email string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.m[email], nil
}

func (s *memProfiles) Save(p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.RecomputeDifficulty()
	s.m[p.Email] = p
	return nil
}

type memScores struct {
	mu    sync.Mutex
	saved []score.Record
}

func (s *memScores) SaveScore(name, email string, total, level int, timeSeconds float64, ammoUsed int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, score.Record{
		Name: name, Email: email, Score: total, Level: level,
		TimeSeconds: timeSeconds, AmmoUsed: ammoUsed,
	})
	return "doc-1", nil
}

func (s *memScores) Leaderboard(limit int) ([]score.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]score.Record(nil), s.saved...), nil
}

type memSink struct {
	mu       sync.Mutex
	sessions []*telemetry.Session
}

func (s *memSink) SaveSession(sess *telemetry.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
	return nil
}

func newTestSession(t *testing.T, cfg Config, now time.Time) *Session {
	t.Helper()
	if cfg.Email == "" {
		cfg.Email = "pilot@example.com"
	}
	if cfg.Name == "" {
		cfg.Name = "Pilot"
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	return New(cfg, now)
}

func waitSave(t *testing.T, s *Session) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if st := s.SaveState(); st == SaveDone || st == SaveFailed {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("commit never finished")
	return ""
}

func TestFirstTimePlayerStartsAtFloor(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{Profiles: newMemProfiles()}, now)

	if s.multiplier != 0.6 {
		t.Fatalf("multiplier = %v, want 0.6", s.multiplier)
	}
	if s.player.Lives != 3 {
		t.Fatalf("lives = %d, want 3", s.player.Lives)
	}
	if got := len(s.enemies); got != 50 {
		t.Fatalf("level 1 enemies = %d, want 50", got)
	}
	if s.phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.phase)
	}
}

func TestProfileLoadErrorFallsBackConservatively(t *testing.T) {
	store := newMemProfiles()
	store.loadErr = errors.New("db locked")
	s := newTestSession(t, Config{Profiles: store}, time.Unix(1000, 0))

	if s.multiplier != 0.8 {
		t.Fatalf("multiplier = %v, want fallback 0.8", s.multiplier)
	}
}

func TestReturningNoviceIsCapped(t *testing.T) {
	store := newMemProfiles()
	store.m["pilot@example.com"] = &profile.Profile{
		Email:                "pilot@example.com",
		GamesPlayed:          3,
		DifficultyMultiplier: 2.0,
	}
	s := newTestSession(t, Config{Profiles: store}, time.Unix(1000, 0))

	if s.multiplier != 0.8 {
		t.Fatalf("multiplier = %v, want corridor cap 0.8", s.multiplier)
	}
}

func TestLevelClearBanksScoreAndClearsTransients(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	// Simulate a cleared board with leftover projectiles and drops.
	s.enemies = s.enemies[:0]
	s.bullets = append(s.bullets, object.Bullet{X: 100, Y: 300})
	s.powerups = append(s.powerups, object.Powerup{X: 100, Y: 300})

	now = now.Add(45 * time.Second)
	s.Step(now, Input{})

	if s.phase != PhaseTransitioning {
		t.Fatalf("phase = %v, want transitioning", s.phase)
	}
	if s.totalScore <= 0 {
		t.Fatalf("cleared level banked no score")
	}

	// Still paused halfway through the transition.
	s.Step(now.Add(time.Second), Input{})
	if s.phase != PhaseTransitioning {
		t.Fatalf("transition ended early")
	}

	s.Step(now.Add(TransitionPause), Input{})
	if s.level != 2 {
		t.Fatalf("level = %d, want 2", s.level)
	}
	if got := len(s.enemies); got != 40 {
		t.Fatalf("level 2 enemies = %d, want 40", got)
	}
	if len(s.bullets) != 0 || len(s.powerups) != 0 {
		t.Fatalf("transients survived the transition")
	}
	if s.player.Shield != s.player.MaxShield {
		t.Fatalf("shield = %v, want full %v at level 2", s.player.Shield, s.player.MaxShield)
	}
}

func TestGameOverTakesPriorityOverLevelClear(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	s.enemies = s.enemies[:0]
	s.player.Lives = 0

	s.Step(now.Add(10*time.Second), Input{})
	if s.phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.phase)
	}
}

func TestVictoryCommitsResults(t *testing.T) {
	profiles := newMemProfiles()
	scores := &memScores{}
	sink := &memSink{}

	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{Profiles: profiles, Scores: scores, Telemetry: sink}, now)

	s.beginLevel(now, 3)
	s.totalKills = 90
	s.enemies = s.enemies[:0]

	end := now.Add(3 * time.Minute)
	s.Step(end, Input{})

	if s.phase != PhaseVictory {
		t.Fatalf("phase = %v, want victory", s.phase)
	}
	if st := waitSave(t, s); st != SaveDone {
		t.Fatalf("save state = %q, want %q", st, SaveDone)
	}

	scores.mu.Lock()
	if len(scores.saved) != 1 {
		t.Fatalf("scores saved = %d, want 1", len(scores.saved))
	}
	rec := scores.saved[0]
	scores.mu.Unlock()
	if rec.Level != 3 || rec.Score != s.totalScore {
		t.Fatalf("saved record %+v does not match session", rec)
	}

	sink.mu.Lock()
	sessions := len(sink.sessions)
	reason := ""
	if sessions > 0 {
		reason = sink.sessions[0].EndReason
	}
	sink.mu.Unlock()
	if sessions != 1 || reason != "victory" {
		t.Fatalf("telemetry sessions = %d reason = %q", sessions, reason)
	}

	p, err := profiles.Load("pilot@example.com")
	if err != nil || p == nil {
		t.Fatalf("profile not created: %v", err)
	}
	if p.GamesPlayed != 1 || p.GamesWon != 1 {
		t.Fatalf("profile games=%d wins=%d, want 1/1", p.GamesPlayed, p.GamesWon)
	}
}

func TestInstantQuitIsNeverPersisted(t *testing.T) {
	profiles := newMemProfiles()
	scores := &memScores{}

	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{Profiles: profiles, Scores: scores}, now)

	s.player.Lives = 0
	s.Step(now.Add(time.Second), Input{})

	if s.phase != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.phase)
	}
	if st := s.SaveState(); st != SaveNone {
		t.Fatalf("save state = %q, want %q", st, SaveNone)
	}
	profiles.mu.Lock()
	defer profiles.mu.Unlock()
	if len(profiles.m) != 0 {
		t.Fatalf("gated session still wrote a profile")
	}
}

func TestTerminalPhaseIsInert(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	s.player.Lives = 0
	s.Step(now.Add(time.Second), Input{})
	scoreAfter := s.totalScore

	for i := 0; i < 10; i++ {
		s.Step(now.Add(time.Duration(2+i)*time.Second), Input{Fire: true, Grenade: true})
	}
	if s.phase != PhaseGameOver || s.totalScore != scoreAfter {
		t.Fatalf("terminal session mutated: phase=%v score=%d", s.phase, s.totalScore)
	}
}

func TestGrenadeLaunchesOnRisingEdgeOnly(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)
	s.player.Grenades = 3
	start := s.player.Grenades

	held := Input{Grenade: true}
	for i := 0; i < 5; i++ {
		s.handleInput(now.Add(time.Duration(i)*TickTime), held)
	}
	if used := start - s.player.Grenades; used != 1 {
		t.Fatalf("held key launched %d grenades, want 1", used)
	}

	s.handleInput(now.Add(time.Second), Input{})
	s.handleInput(now.Add(time.Second+TickTime), held)
	if used := start - s.player.Grenades; used != 2 {
		t.Fatalf("second press launched %d total, want 2", used)
	}
}

func TestFiringTracksAmmoAndTelemetry(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	// Spaced beyond the cooldown so every press fires.
	for i := 0; i < 3; i++ {
		s.handleInput(now.Add(time.Duration(i)*time.Second), Input{Fire: true})
	}

	if s.totalAmmo != 3 || s.levelAmmo != 3 {
		t.Fatalf("ammo total=%d level=%d, want 3/3", s.totalAmmo, s.levelAmmo)
	}
	if sum := s.Summary(); sum.TotalShots != 3 {
		t.Fatalf("telemetry shots = %d, want 3", sum.TotalShots)
	}
	if len(s.bullets) != 3 {
		t.Fatalf("bullets in flight = %d, want 3", len(s.bullets))
	}
}

func TestSentinelSoaksShieldHitsBeforeDying(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	e := &object.Enemy{
		X: 400, Y: 300,
		Width: object.EnemyWidth, Height: object.EnemyHeight,
		Type: object.EnemySentinel, ShieldHits: 2,
	}
	s.enemies = []*object.Enemy{e}

	s.damageEnemy(now, e)
	s.damageEnemy(now, e)
	if len(s.enemies) != 1 || s.totalKills != 0 {
		t.Fatalf("sentinel died under shield: enemies=%d kills=%d", len(s.enemies), s.totalKills)
	}

	s.damageEnemy(now, e)
	if len(s.enemies) != 0 || s.totalKills != 1 {
		t.Fatalf("sentinel survived the killing hit: enemies=%d kills=%d", len(s.enemies), s.totalKills)
	}
}

func TestBodyCollisionEndsRunImmediately(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)
	s.player.Lives = 3
	s.player.Shield = s.player.MaxShield

	s.enemies = []*object.Enemy{{
		X: s.player.X, Y: s.player.Y,
		Width: object.EnemyWidth, Height: object.EnemyHeight,
	}}
	s.enemiesVsPlayer(now)

	if s.player.Lives != 0 {
		t.Fatalf("lives = %d after boarding, want 0", s.player.Lives)
	}
}

func TestFrontlineIsLowestEnemyPerColumn(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	colWidth := object.EnemyWidth + s.params.EnemyGap
	s.enemies = []*object.Enemy{
		{X: 0, Y: 200, Width: object.EnemyWidth, Height: object.EnemyHeight},
		{X: 0, Y: 300, Width: object.EnemyWidth, Height: object.EnemyHeight},
		{X: colWidth * 2, Y: 250, Width: object.EnemyWidth, Height: object.EnemyHeight},
	}

	front := s.frontline()
	if len(front) != 2 {
		t.Fatalf("frontline size = %d, want 2", len(front))
	}
	for _, e := range front {
		if e.X == 0 && e.Y != 300 {
			t.Fatalf("column 0 frontline at y=%v, want deepest 300", e.Y)
		}
	}
}

func TestSnapshotReflectsSessionState(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	// The stocked grenade count and the in-flight shells are distinct
	// fields; a renderer reads both.
	s.player.Grenades = 2
	s.grenades = append(s.grenades, object.Grenade{X: 400, Y: 300, Type: object.GrenadeMain})

	snap := s.Snapshot(now)
	if snap.Phase != "playing" || snap.Level != 1 {
		t.Fatalf("snapshot phase=%q level=%d", snap.Phase, snap.Level)
	}
	if snap.LevelName != "The Training Grid" {
		t.Fatalf("level name = %q", snap.LevelName)
	}
	if len(snap.Enemies) != 50 {
		t.Fatalf("snapshot enemies = %d, want 50", len(snap.Enemies))
	}
	if snap.Lives != 3 || snap.MaxHeat != object.MaxHeat {
		t.Fatalf("snapshot hud fields wrong: %+v", snap)
	}
	if snap.Grenades != 2 {
		t.Fatalf("stocked grenades = %d, want 2", snap.Grenades)
	}
	if len(snap.GrenadesInFlight) != 1 {
		t.Fatalf("grenades in flight = %d, want 1", len(snap.GrenadesInFlight))
	}
	if snap.SaveState != SaveNone {
		t.Fatalf("save state = %q before session end", snap.SaveState)
	}
}

func TestSnapshotFlagsRecentShieldHit(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	if s.Snapshot(now).ShieldFlash {
		t.Fatal("shield flash set before any hit")
	}

	s.player.ShieldHitAt = now
	if !s.Snapshot(now.Add(100 * time.Millisecond)).ShieldFlash {
		t.Fatal("shield flash not set right after a hit")
	}
	if s.Snapshot(now.Add(time.Second)).ShieldFlash {
		t.Fatal("shield flash still set after the window")
	}
}

func TestMainGrenadeOnlyDetonates(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	e := &object.Enemy{
		X: 400, Y: 300,
		Width: object.EnemyWidth, Height: object.EnemyHeight,
	}
	s.enemies = []*object.Enemy{e}
	s.grenades = []object.Grenade{{
		X: e.X + e.Width/2, Y: e.Y + e.Height/2,
		Type: object.GrenadeMain,
	}}

	// The main shell bursts on contact but deals no damage itself.
	s.grenadesVsEnemies(now)
	if len(s.enemies) != 1 || s.totalKills != 0 {
		t.Fatalf("main shell dealt direct damage: enemies=%d kills=%d", len(s.enemies), s.totalKills)
	}
	if len(s.grenades) != object.GrenadeFragmentCount {
		t.Fatalf("fragments in flight = %d, want %d", len(s.grenades), object.GrenadeFragmentCount)
	}
	for _, g := range s.grenades {
		if g.Type != object.GrenadeFragment {
			t.Fatalf("non-fragment survived the burst: %+v", g)
		}
	}

	// A fragment sitting on the enemy does damage and burns out.
	s.grenades = []object.Grenade{{
		X: e.X + e.Width/2, Y: e.Y + e.Height/2,
		Type: object.GrenadeFragment,
	}}
	s.grenadesVsEnemies(now)
	if len(s.enemies) != 0 || s.totalKills != 1 {
		t.Fatalf("fragment hit did not kill: enemies=%d kills=%d", len(s.enemies), s.totalKills)
	}
	if len(s.grenades) != 0 {
		t.Fatalf("fragment survived its hit")
	}
}

func TestEnemyFireIsOneShooterPerTick(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{}, now)

	// Force the per-tick roll to always succeed. Even with a full board of
	// frontline columns, each tick yields exactly one shot.
	s.params.EnemyShootChance = 10

	s.enemyFire(now)
	if len(s.enemyBullets) != 1 {
		t.Fatalf("bullets after one tick = %d, want 1", len(s.enemyBullets))
	}
	s.enemyFire(now.Add(TickTime))
	if len(s.enemyBullets) != 2 {
		t.Fatalf("bullets after two ticks = %d, want 2", len(s.enemyBullets))
	}

	s.enemies = s.enemies[:0]
	s.enemyFire(now.Add(2 * TickTime))
	if len(s.enemyBullets) != 2 {
		t.Fatalf("empty board still fired")
	}
}

func TestEnemyKillIsRecorded(t *testing.T) {
	sink := &memSink{}
	now := time.Unix(1000, 0)
	s := newTestSession(t, Config{Telemetry: sink}, now)

	s.beginLevel(now, 3)
	e := &object.Enemy{
		X: 400, Y: 300,
		Width: object.EnemyWidth, Height: object.EnemyHeight,
	}
	s.enemies = []*object.Enemy{e}
	s.totalKills = 89

	s.damageEnemy(now.Add(time.Minute), e)
	if len(s.enemies) != 0 {
		t.Fatal("enemy survived the hit")
	}

	s.Step(now.Add(3*time.Minute), Input{})
	if st := waitSave(t, s); st != SaveDone {
		t.Fatalf("save state = %q, want %q", st, SaveDone)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.sessions) != 1 {
		t.Fatalf("telemetry sessions = %d, want 1", len(sink.sessions))
	}
	kills := 0
	for _, ev := range sink.sessions[0].Events {
		if ev.Type != "enemy_killed" {
			continue
		}
		kills++
		if ev.Data["type"] != "normal" {
			t.Fatalf("kill event type = %v, want normal", ev.Data["type"])
		}
	}
	if kills != 1 {
		t.Fatalf("enemy_killed events = %d, want 1", kills)
	}
}
