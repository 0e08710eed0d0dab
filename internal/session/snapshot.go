package session

import (
	"time"

	"github.com/starfall-game/starfall/internal/difficulty"
	"github.com/starfall-game/starfall/internal/object"
)

// Snapshot is a render-ready projection of one tick. It is what the
// terminal renderer draws and what the websocket transport serializes, so
// everything a frontend needs lives here and nothing mutable leaks out.
type Snapshot struct {
	Phase      string  `json:"phase"`
	Level      int     `json:"level"`
	LevelName  string  `json:"levelName"`
	ThemeColor string  `json:"themeColor"`
	Tier       string  `json:"tier"`
	Multiplier float64 `json:"multiplier"`
	Score      int     `json:"score"`
	SaveState  string  `json:"saveState"`

	Lives       int     `json:"lives"`
	Shield      float64 `json:"shield"`
	MaxShield   float64 `json:"maxShield"`
	ShieldFlash bool    `json:"shieldFlash"`
	Heat        float64 `json:"heat"`
	MaxHeat     float64 `json:"maxHeat"`
	LockedOut   bool    `json:"lockedOut"`
	LockoutMS   int64   `json:"lockoutMs"`
	Grenades    int     `json:"grenades"`
	AmmoBoost   int     `json:"ammoBoost"`

	SpikeActive  bool  `json:"spikeActive"`
	TransitionMS int64 `json:"transitionMs"`

	Player           PointSnapshot     `json:"player"`
	Enemies          []EnemySnapshot   `json:"enemies"`
	Bullets          []PointSnapshot   `json:"bullets"`
	EnemyBullets     []PointSnapshot   `json:"enemyBullets"`
	GrenadesInFlight []PointSnapshot   `json:"grenadesInFlight"`
	Powerups         []PowerupSnapshot `json:"powerups"`
}

// shieldFlashWindow is how long the HUD shield bar stays highlighted after
// an absorbed hit.
const shieldFlashWindow = 250 * time.Millisecond

type PointSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type EnemySnapshot struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Type       string  `json:"type"`
	ShieldHits int     `json:"shieldHits,omitempty"`
}

type PowerupSnapshot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// Snapshot projects the current tick. Must be called from the tick
// goroutine like every other session method.
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Phase:      s.phase.String(),
		Level:      s.level,
		LevelName:  s.levelDef.Name,
		ThemeColor: s.levelDef.ThemeColor,
		Tier:       difficulty.StartLabel(s.multiplier),
		Multiplier: s.multiplier,
		Score:      s.totalScore,
		SaveState:  s.SaveState(),

		Lives:       s.player.Lives,
		Shield:      s.player.Shield,
		MaxShield:   s.player.MaxShield,
		ShieldFlash: !s.player.ShieldHitAt.IsZero() && now.Sub(s.player.ShieldHitAt) < shieldFlashWindow,
		Heat:        s.player.Heat,
		MaxHeat:     object.MaxHeat,
		LockedOut:   s.player.LockedOut,
		LockoutMS:   s.player.LockoutRemaining(now).Milliseconds(),
		Grenades:    s.player.Grenades,
		AmmoBoost:   s.player.AmmoBoost,

		SpikeActive: s.spikeActive,

		Player: PointSnapshot{X: s.player.X, Y: s.player.Y},
	}

	if s.phase == PhaseTransitioning {
		if remaining := s.transitionEnd.Sub(now); remaining > 0 {
			snap.TransitionMS = remaining.Milliseconds()
		}
	}

	bonus := s.sizeBonus()
	snap.Enemies = make([]EnemySnapshot, 0, len(s.enemies))
	for _, e := range s.enemies {
		r := e.Rect(bonus)
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			X: r.X, Y: r.Y, W: r.W, H: r.H,
			Type:       e.Type.String(),
			ShieldHits: e.ShieldHits,
		})
	}

	snap.Bullets = make([]PointSnapshot, 0, len(s.bullets))
	for i := range s.bullets {
		snap.Bullets = append(snap.Bullets, PointSnapshot{X: s.bullets[i].X, Y: s.bullets[i].Y})
	}

	snap.EnemyBullets = make([]PointSnapshot, 0, len(s.enemyBullets))
	for i := range s.enemyBullets {
		snap.EnemyBullets = append(snap.EnemyBullets, PointSnapshot{X: s.enemyBullets[i].X, Y: s.enemyBullets[i].Y})
	}

	snap.GrenadesInFlight = make([]PointSnapshot, 0, len(s.grenades))
	for i := range s.grenades {
		snap.GrenadesInFlight = append(snap.GrenadesInFlight, PointSnapshot{X: s.grenades[i].X, Y: s.grenades[i].Y})
	}

	snap.Powerups = make([]PowerupSnapshot, 0, len(s.powerups))
	for i := range s.powerups {
		snap.Powerups = append(snap.Powerups, PowerupSnapshot{
			X: s.powerups[i].X, Y: s.powerups[i].Y,
			Type: s.powerups[i].Type.String(),
		})
	}

	return snap
}
