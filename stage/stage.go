// Package stage loads fighting stages authored in Tiled and builds their
// collision world.
//
// One map tile is one world unit. World space is y-up and centered on the
// map, so a 40x24 tile map spans x -20..20 and y -12..12.
package stage

import (
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/physics"
)

// Ramp is a 45 degree slope filling its rect.
type Ramp struct {
	Rect    gamemath.Rect
	UpRight bool
}

// Stage is a loaded map in world units.
type Stage struct {
	Name   string
	Bounds gamemath.Rect

	Ground    []gamemath.Rect
	Platforms []gamemath.Rect
	Walls     []gamemath.Rect
	Ramps     []Ramp

	Spawns      []gamemath.Vec
	Anchors     []gamemath.Vec
	SerumPoints []gamemath.Vec
}

// Build creates a collision world holding the stage geometry. The world
// is padded below and to the sides so falling fighters stay inside it
// until they are knocked out. cellSize is the broadphase cell edge in
// world units.
func (s *Stage) Build(cellSize int) *physics.World {
	b := s.Bounds
	pad := b.H / 2
	w := physics.NewWorld(gamemath.Rect{X: b.X - pad, Y: b.Y - pad, W: b.W + 2*pad, H: b.H + 2*pad}, cellSize)
	for _, r := range s.Ground {
		w.AddSolid(r)
	}
	for _, r := range s.Walls {
		w.AddWall(r)
	}
	for _, r := range s.Platforms {
		w.AddPlatform(r)
	}
	for _, r := range s.Ramps {
		w.AddRamp(r.Rect, r.UpRight)
	}
	return w
}

// Spawn returns the i-th spawn point, wrapping around.
func (s *Stage) Spawn(i int) gamemath.Vec {
	if len(s.Spawns) == 0 {
		return gamemath.Vec{}
	}
	return s.Spawns[i%len(s.Spawns)]
}

// RespawnAnchors falls back to the spawn points when the map has no
// dedicated anchors.
func (s *Stage) RespawnAnchors() []gamemath.Vec {
	if len(s.Anchors) > 0 {
		return s.Anchors
	}
	return s.Spawns
}
