// Package formation generates the deterministic enemy layouts for each
// level archetype. Generation never consults an RNG: a level plus a
// parameter table always produces the exact same entity set.
package formation

import (
	"github.com/starfall-game/starfall/internal/difficulty"
	"github.com/starfall-game/starfall/internal/object"
)

// Kind selects a layout algorithm.
type Kind int

const (
	Wall Kind = iota
	Funnel
	Citadel
)

// Level describes one of the three campaign levels.
type Level struct {
	Number     int
	Name       string
	Formation  string
	ThemeColor string
	Rows       int
	Cols       int
	EnemyCount int
	EnemyType  object.EnemyType
	Kind       Kind
}

// Levels is the campaign table. Lookup through ByNumber, which falls back
// to level 1 rather than failing.
var Levels = map[int]Level{
	1: {
		Number:     1,
		Name:       "The Training Grid",
		Formation:  "The Wall",
		ThemeColor: "#00FFFF",
		Rows:       5,
		Cols:       10,
		EnemyCount: 50,
		EnemyType:  object.EnemyNormal,
		Kind:       Wall,
	},
	2: {
		Number:     2,
		Name:       "Asteroid Field",
		Formation:  "The Funnel",
		ThemeColor: "#FFA500",
		Rows:       4,
		Cols:       10,
		EnemyCount: 40,
		EnemyType:  object.EnemyNormal,
		Kind:       Funnel,
	},
	3: {
		Number:     3,
		Name:       "Sentinel Fortress",
		Formation:  "The Citadel",
		ThemeColor: "#4169E1",
		Rows:       3,
		Cols:       10,
		EnemyCount: 30,
		EnemyType:  object.EnemySentinel,
		Kind:       Citadel,
	},
}

// ByNumber returns the level definition, falling back to level 1 when the
// number is unknown. A broken level table must never crash a session.
func ByNumber(n int) Level {
	if lvl, ok := Levels[n]; ok {
		return lvl
	}
	return Levels[1]
}

// Generate builds the enemy set for a level with the given difficulty
// parameters.
func Generate(lvl Level, params difficulty.Params) []*object.Enemy {
	switch lvl.Kind {
	case Funnel:
		return generateFunnel(lvl, params)
	case Citadel:
		return generateCitadel(lvl, params)
	default:
		return generateWall(lvl, params)
	}
}

// generateWall lays out a dense rows×cols rectangle with uniform spacing.
func generateWall(lvl Level, params difficulty.Params) []*object.Enemy {
	const startX, startY = 60.0, object.UIHeight + 50

	enemies := make([]*object.Enemy, 0, lvl.Rows*lvl.Cols)
	for row := 0; row < lvl.Rows; row++ {
		for col := 0; col < lvl.Cols; col++ {
			enemies = append(enemies, &object.Enemy{
				X:      float64(col)*(object.EnemyWidth+params.EnemyGap) + startX,
				Y:      float64(row)*(object.EnemyHeight+params.EnemyGap) + startY,
				Width:  object.EnemyWidth,
				Height: object.EnemyHeight,
				Type:   object.EnemyNormal,
			})
		}
	}
	return enemies
}

// generateFunnel is the wall grid with each column shifted down by half a
// cell per column of distance from the center, forming a V silhouette.
func generateFunnel(lvl Level, params difficulty.Params) []*object.Enemy {
	const startX, startY = 60.0, object.UIHeight + 50
	centerCol := lvl.Cols / 2

	enemies := make([]*object.Enemy, 0, lvl.Rows*lvl.Cols)
	for row := 0; row < lvl.Rows; row++ {
		for col := 0; col < lvl.Cols; col++ {
			dist := col - centerCol
			if dist < 0 {
				dist = -dist
			}
			yOffset := float64(dist) * (object.EnemyHeight + params.EnemyGap) * 0.5

			enemies = append(enemies, &object.Enemy{
				X:      float64(col)*(object.EnemyWidth+params.EnemyGap) + startX,
				Y:      float64(row)*(object.EnemyHeight+params.EnemyGap) + startY + yOffset,
				Width:  object.EnemyWidth,
				Height: object.EnemyHeight,
				Type:   object.EnemyNormal,
			})
		}
	}
	return enemies
}

// generateCitadel builds a 10×10 grid with the four corner 2×2 blocks cut
// out (the shell) and a 4×4 sentinel core at the center. Sentinels get the
// difficulty-adjusted shield hit count.
func generateCitadel(lvl Level, params difficulty.Params) []*object.Enemy {
	const (
		startX, startY = 100.0, object.UIHeight + 20
		gridSize       = 10
		coreStart      = 3
		coreSize       = 4
	)

	corner := func(i int) bool { return i <= 1 || i >= gridSize-2 }

	var enemies []*object.Enemy
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			if corner(row) && corner(col) {
				continue
			}

			inCore := row >= coreStart && row < coreStart+coreSize &&
				col >= coreStart && col < coreStart+coreSize

			e := &object.Enemy{
				X:      float64(col)*(object.EnemyWidth+params.EnemyGap) + startX,
				Y:      float64(row)*(object.EnemyHeight+params.EnemyGap) + startY,
				Width:  object.EnemyWidth,
				Height: object.EnemyHeight,
				Type:   object.EnemyNormal,
			}
			if inCore {
				e.Type = object.EnemySentinel
				e.ShieldHits = params.SentinelShieldHits
			}
			enemies = append(enemies, e)
		}
	}
	return enemies
}
