// Package session runs one player's game from first tick to persistence.
// It owns the fixed-rate simulation, the level state machine, and the
// one-shot commit of results to the profile, score, and telemetry stores.
package session

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/starfall-game/starfall/internal/difficulty"
	"github.com/starfall-game/starfall/internal/formation"
	"github.com/starfall-game/starfall/internal/object"
	"github.com/starfall-game/starfall/internal/profile"
	"github.com/starfall-game/starfall/internal/score"
	"github.com/starfall-game/starfall/internal/telemetry"
)

// Phase is the session state machine. Transitions only move forward:
// Playing -> Transitioning -> Playing for levels 1 and 2, and Playing ->
// GameOver or Victory as terminal states.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseTransitioning
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseTransitioning:
		return "transition"
	case PhaseGameOver:
		return "gameover"
	case PhaseVictory:
		return "victory"
	default:
		return "playing"
	}
}

// Save states reported by SaveState after a session ends.
const (
	SaveNone    = "none"    // session still running, or below the gate
	SavePending = "pending" // commit goroutine in flight
	SaveDone    = "saved"
	SaveFailed  = "failed"
)

// Input is one tick's worth of player intent. Fire may be held; the weapon
// cooldown paces it. Grenade launches on the rising edge only.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Grenade bool
}

// Config wires a session to its collaborators. Any store may be nil, which
// disables that concern; the simulation itself never depends on them.
type Config struct {
	Email string
	Name  string

	Profiles  profile.Store
	Scores    score.Store
	Telemetry telemetry.Sink

	Rand   *rand.Rand
	Logger *log.Logger
}

// Session is one run of the campaign for one player. All methods must be
// called from the tick goroutine; only SaveState is safe elsewhere.
type Session struct {
	email string
	name  string

	phase    Phase
	level    int
	levelDef formation.Level

	multiplier float64
	params     difficulty.Params

	player       *object.Player
	enemies      []*object.Enemy
	bullets      []object.Bullet
	enemyBullets []object.EnemyBullet
	grenades     []object.Grenade
	powerups     []object.Powerup
	enemyDir     float64

	startedAt       time.Time
	levelStartedAt  time.Time
	transitionEnd   time.Time
	levelEnemyCount int
	levelAmmo       int
	totalAmmo       int
	totalKills      int
	totalScore      int

	spikeActive bool
	spikeEnd    time.Time
	nextSpikeAt time.Time

	prevGrenade bool
	committed   bool
	saveState   atomic.Int32

	rng      *rand.Rand
	recorder *telemetry.Recorder
	profiles profile.Store
	scores   score.Store
	sink     telemetry.Sink
	logger   *log.Logger
}

// New builds a session for the given player and starts level 1.
//
// The starting difficulty comes from the player's profile, run through the
// returning-player corridor. A missing profile means a first-time player at
// the floor multiplier; a store error falls back to a conservative 0.8 so a
// database hiccup never blocks play.
func New(cfg Config, now time.Time) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	email := profile.NormalizeEmail(cfg.Email)
	m := difficulty.MinMultiplier
	if cfg.Profiles != nil {
		p, err := cfg.Profiles.Load(email)
		switch {
		case err != nil:
			logger.Warn("profile load failed, using fallback difficulty", "email", email, "err", err)
			m = 0.8
		case p != nil:
			m = difficulty.StartingMultiplier(p.DifficultyMultiplier, p.GamesPlayed)
		}
	}

	params := difficulty.ExpandParameters(m)

	s := &Session{
		email:      email,
		name:       cfg.Name,
		multiplier: m,
		params:     params,
		player:     object.NewPlayer(params),
		enemyDir:   1,
		startedAt:  now,
		rng:        rng,
		recorder:   telemetry.NewRecorder(),
		profiles:   cfg.Profiles,
		scores:     cfg.Scores,
		sink:       cfg.Telemetry,
		logger:     logger,
	}

	s.recorder.Start(email, cfg.Name, now)
	s.beginLevel(now, 1)

	logger.Info("session started",
		"email", email,
		"multiplier", m,
		"tier", difficulty.StartLabel(m),
		"lives", params.StartingLives)

	return s
}

// Step advances the session one tick.
//
// Order matters: a dead player ends the game even on the same tick the last
// enemy would have been cleared, and level-clear is checked before any new
// damage can land.
func (s *Session) Step(now time.Time, in Input) {
	switch s.phase {
	case PhaseGameOver, PhaseVictory:
		return
	case PhaseTransitioning:
		if !now.Before(s.transitionEnd) {
			s.beginLevel(now, s.level+1)
		}
		return
	}

	if s.player.Lives <= 0 {
		s.finish(now, false, "defeat")
		return
	}
	if len(s.enemies) == 0 {
		s.bankLevelScore(now)
		if s.level >= FinalLevel {
			s.finish(now, true, "victory")
			return
		}
		s.phase = PhaseTransitioning
		s.transitionEnd = now.Add(TransitionPause)
		s.recorder.RecordEvent("level_clear", now, map[string]any{"level": s.level})
		return
	}

	s.handleInput(now, in)
	s.stepSpikes(now)
	s.player.StepHeat(now)
	s.player.RechargeShield(now, s.level)
	s.stepMovement(now)
	s.enemyFire(now)
	s.resolveCollisions(now)
	s.recorder.RecordPosition(s.player.X, s.player.Y, now)
}

// beginLevel resets transient state and spawns the level's formation.
// Bullets and powerups do not carry across levels; grenades in flight do.
func (s *Session) beginLevel(now time.Time, n int) {
	s.level = n
	s.levelDef = formation.ByNumber(n)
	s.enemies = formation.Generate(s.levelDef, s.params)
	s.levelEnemyCount = len(s.enemies)
	s.bullets = s.bullets[:0]
	s.enemyBullets = s.enemyBullets[:0]
	s.powerups = s.powerups[:0]
	s.levelAmmo = 0
	s.levelStartedAt = now
	s.enemyDir = 1
	s.spikeActive = false
	s.scheduleNextSpike(now)
	s.phase = PhasePlaying

	// Shields come online at level 2, fully charged.
	if n >= 2 {
		s.player.Shield = s.player.MaxShield
	}

	s.recorder.RecordEvent("level_start", now, map[string]any{
		"level": n,
		"name":  s.levelDef.Name,
	})
}

// bankLevelScore converts the finished (or final) level into points and
// folds them into the running total.
func (s *Session) bankLevelScore(now time.Time) {
	levelTime := now.Sub(s.levelStartedAt).Seconds()
	kills := s.levelEnemyCount - len(s.enemies)
	s.totalScore += score.ForLevel(levelTime, s.levelAmmo, kills, s.levelEnemyCount)
}

// finish moves the session to a terminal phase and commits results exactly
// once. Sessions below the minimum-gameplay gate are never persisted, so an
// instant quit cannot poison a profile's difficulty history.
func (s *Session) finish(now time.Time, won bool, reason string) {
	if won {
		s.phase = PhaseVictory
	} else {
		s.phase = PhaseGameOver
		s.bankLevelScore(now)
	}
	if s.committed {
		return
	}
	s.committed = true

	totalTime := now.Sub(s.startedAt).Seconds()
	sess := s.recorder.Stop(now, s.level, s.totalScore, s.totalKills, reason)

	if !score.MeetsMinimumGameplay(s.totalKills, totalTime, s.totalScore) {
		s.logger.Info("session below persistence gate, discarding",
			"email", s.email, "kills", s.totalKills, "seconds", totalTime)
		return
	}

	s.saveState.Store(statePending)
	go s.persist(sess, won, totalTime)
}

const (
	stateNone int32 = iota
	statePending
	stateDone
	stateFailed
)

// persist writes the score, telemetry, and updated profile. It runs
// detached from the tick loop; the loop only observes it through SaveState.
func (s *Session) persist(sess *telemetry.Session, won bool, totalTime float64) {
	ok := true

	if s.scores != nil {
		docID, err := s.scores.SaveScore(s.name, s.email, s.totalScore, s.level, totalTime, s.totalAmmo)
		if err != nil {
			s.logger.Error("score save failed", "email", s.email, "err", err)
			ok = false
		} else {
			s.logger.Debug("score saved", "doc", docID, "score", s.totalScore)
		}
	}

	if s.sink != nil && sess != nil {
		if err := s.sink.SaveSession(sess); err != nil {
			s.logger.Error("telemetry save failed", "session", sess.ID, "err", err)
			ok = false
		}
	}

	if s.profiles != nil {
		p, err := s.profiles.Load(s.email)
		if err != nil {
			s.logger.Error("profile load failed during commit", "email", s.email, "err", err)
			ok = false
		} else {
			if p == nil {
				p = profile.New(s.email, s.name)
			}
			p.ApplyGameResult(profile.GameResult{
				Score:         s.totalScore,
				Level:         s.level,
				TimeSeconds:   totalTime,
				EnemiesKilled: s.totalKills,
				Won:           won,
				AmmoUsed:      s.totalAmmo,
			})
			if err := s.profiles.Save(p); err != nil {
				s.logger.Error("profile save failed", "email", s.email, "err", err)
				ok = false
			} else {
				s.logger.Info("profile updated",
					"email", s.email,
					"games", p.GamesPlayed,
					"multiplier", p.DifficultyMultiplier,
					"tier", p.DifficultyTier)
			}
		}
	}

	if ok {
		s.saveState.Store(stateDone)
	} else {
		s.saveState.Store(stateFailed)
	}
}

// SaveState reports the commit outcome. Safe to call from any goroutine.
func (s *Session) SaveState() string {
	switch s.saveState.Load() {
	case statePending:
		return SavePending
	case stateDone:
		return SaveDone
	case stateFailed:
		return SaveFailed
	default:
		return SaveNone
	}
}

// Phase returns the current state-machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the running banked score.
func (s *Session) Score() int { return s.totalScore }

// Summary exposes the telemetry aggregate for end screens.
func (s *Session) Summary() telemetry.Summary { return s.recorder.Summary() }

func (s *Session) sizeBonus() float64 {
	if s.spikeActive {
		return s.params.SpikeEnemySizeBonus
	}
	return 0
}
