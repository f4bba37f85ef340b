package physics

import (
	"testing"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func newTestWorld() *World {
	w := NewWorld(gamemath.Rect{X: -20, Y: -20, W: 60, H: 50}, 1)
	w.AddSolid(gamemath.Rect{X: -10, Y: -1, W: 20, H: 1})
	return w
}

func TestProbesOnRestingBody(t *testing.T) {
	w := newTestWorld()
	b := w.AddBody(gamemath.V(0, 0), 0.5, 1, nil)

	assert.True(t, b.TouchingGround(0.01))
	assert.Contains(t, b.GroundNormals(0.01, nil), gamemath.Up)
	assert.True(t, b.BoxCast(gamemath.V(0, -0.05), gamemath.V(0.5, 0.1), 0.1))
	assert.True(t, b.CircleCast(gamemath.V(0, 0.125), 0.125, 0.1))
	assert.True(t, b.Raycast(gamemath.V(0, 0.01), 0.3))
}

func TestProbesMissInTheAir(t *testing.T) {
	w := newTestWorld()
	b := w.AddBody(gamemath.V(0, 2), 0.5, 1, nil)
	feet := b.Position()

	assert.False(t, b.TouchingGround(0.01))
	assert.Empty(t, b.GroundNormals(0.01, nil))
	assert.False(t, b.BoxCast(feet.Add(gamemath.V(0, -0.05)), gamemath.V(0.5, 0.1), 0.1))
	assert.False(t, b.CircleCast(feet.Add(gamemath.V(0, 0.125)), 0.125, 0.1))
	assert.False(t, b.Raycast(feet, 0.3))
}

func TestSideContactIsNotGround(t *testing.T) {
	w := newTestWorld()
	w.AddWall(gamemath.Rect{X: 2, Y: 0, W: 1, H: 5})
	b := w.AddBody(gamemath.V(1.75, 2), 0.5, 1, nil)

	assert.False(t, b.TouchingGround(0.01))
	assert.True(t, b.WallContact(1, 0.2, 1.2))
	assert.False(t, b.WallContact(-1, 0.2, 1.2))
}

func TestMoveLandsOnGround(t *testing.T) {
	w := newTestWorld()
	b := w.AddBody(gamemath.V(0, 0.5), 0.5, 1, nil)

	res := b.Move(gamemath.V(0, -60), dt)
	assert.True(t, res.HitFloor)
	assert.InDelta(t, 0, b.Position().Y, 1e-9)
	assert.NotNil(t, b.OnGround)
}

func TestMoveStopsAtWall(t *testing.T) {
	w := newTestWorld()
	w.AddWall(gamemath.Rect{X: 2, Y: 0, W: 1, H: 5})
	b := w.AddBody(gamemath.V(1, 0), 0.5, 1, nil)

	res := b.Move(gamemath.V(120, 0), dt)
	assert.True(t, res.HitWall)
	assert.Equal(t, 1.0, res.WallDir)
	assert.InDelta(t, 1.75, b.Position().X, 1e-9)
}

func TestMoveHitsCeiling(t *testing.T) {
	w := newTestWorld()
	w.AddSolid(gamemath.Rect{X: -2, Y: 3, W: 4, H: 1})
	b := w.AddBody(gamemath.V(0, 1.5), 0.5, 1, nil)

	res := b.Move(gamemath.V(0, 60), dt)
	assert.True(t, res.HitCeiling)
	assert.InDelta(t, 2, b.Position().Y, 1e-9)
}

func TestOneWayPlatform(t *testing.T) {
	w := newTestWorld()
	w.AddPlatform(gamemath.Rect{X: -2, Y: 2, W: 4, H: 0.2})

	t.Run("passes from below", func(t *testing.T) {
		b := w.AddBody(gamemath.V(0, 1), 0.5, 1, nil)
		defer w.RemoveBody(b)
		res := b.Move(gamemath.V(0, 60), dt)
		assert.False(t, res.HitCeiling)
		assert.InDelta(t, 2, b.Position().Y, 1e-9)
	})

	t.Run("lands from above", func(t *testing.T) {
		b := w.AddBody(gamemath.V(0, 2.5), 0.5, 1, nil)
		defer w.RemoveBody(b)
		res := b.Move(gamemath.V(0, -60), dt)
		assert.True(t, res.HitFloor)
		assert.InDelta(t, 2.2, b.Position().Y, 1e-9)
	})

	t.Run("drop through", func(t *testing.T) {
		b := w.AddBody(gamemath.V(0, 2.2), 0.5, 1, nil)
		defer w.RemoveBody(b)
		require.True(t, b.DropThrough(0.15, 0.4))
		assert.True(t, b.Dropping())
		assert.False(t, b.TouchingGround(0.01))

		res := b.Move(gamemath.V(0, -30), dt)
		assert.False(t, res.HitFloor)
		assert.Less(t, b.Position().Y, 2.2)

		b.TickIgnores(0.5)
		assert.False(t, b.Dropping())
	})
}

func TestRampSnap(t *testing.T) {
	w := newTestWorld()
	w.AddRamp(gamemath.Rect{X: 3, Y: 0, W: 2, H: 2}, true)
	b := w.AddBody(gamemath.V(3.5, 0.55), 0.5, 1, nil)

	res := b.Move(gamemath.V(0, -6), dt)
	assert.True(t, res.HitFloor)
	assert.InDelta(t, 0.5, b.Position().Y, 1e-9)
	assert.True(t, b.TouchingGround(0.01))
	assert.True(t, b.Raycast(b.Position().Add(gamemath.V(0, 0.01)), 0.1))
}

func TestOverlapCircle(t *testing.T) {
	w := newTestWorld()
	a := w.AddBody(gamemath.V(0, 0), 0.5, 1, "a")
	near := w.AddBody(gamemath.V(0.8, 0), 0.5, 1, "near")
	w.AddBody(gamemath.V(5, 0), 0.5, 1, "far")

	hits := w.OverlapCircle(gamemath.V(0.45, 0.5), 0.5, a)
	require.Len(t, hits, 1)
	assert.Same(t, near, hits[0])
	assert.Equal(t, "near", hits[0].Owner())

	w.RemoveBody(near)
	assert.Empty(t, w.OverlapCircle(gamemath.V(0.45, 0.5), 0.5, a))
	w.RemoveBody(near)
}

func TestQueriesAtSubCellOffsets(t *testing.T) {
	for _, x := range []float64{0, 0.2, 0.3, 0.5, 0.7, 0.95, -0.3} {
		w := newTestWorld()
		b := w.AddBody(gamemath.V(x, 0), 0.5, 1, "self")
		other := w.AddBody(gamemath.V(x+0.6, 0), 0.5, 1, "other")
		feet := b.Position()

		assert.True(t, b.TouchingGround(0.01), "touching at x=%v", x)
		assert.True(t, b.Raycast(feet.Add(gamemath.V(0, 0.01)), 0.3), "ray at x=%v", x)
		assert.True(t, b.BoxCast(feet.Add(gamemath.V(0, -0.05)), gamemath.V(0.5, 0.1), 0.1), "box at x=%v", x)
		assert.True(t, b.CircleCast(feet.Add(gamemath.V(0, 0.125)), 0.125, 0.1), "circle at x=%v", x)
		assert.NotEmpty(t, other.Object().TouchingCells, "cells at x=%v", x)

		hits := w.OverlapCircle(feet.Add(gamemath.V(0.4, 0.5)), 0.3, b)
		require.Len(t, hits, 1, "overlap at x=%v", x)
		assert.Same(t, other, hits[0])

		for i := 0; i < 60; i++ {
			b.Move(gamemath.V(0, -10), dt)
		}
		assert.InDelta(t, 0, b.Position().Y, 1e-9, "rests on the floor at x=%v", x)
		assert.InDelta(t, x, b.Position().X, 1e-9)
	}
}

func TestSpaceCoversBounds(t *testing.T) {
	w := NewWorld(gamemath.Rect{X: -10.5, Y: -4, W: 21, H: 9.5}, 2)
	sp := w.Space()
	assert.Equal(t, 2*PixelsPerUnit, sp.CellWidth)
	assert.Equal(t, 11, sp.Width())
	assert.Equal(t, 5, sp.Height())

	b := w.AddBody(gamemath.V(10.3, 5.2), 0.2, 0.2, nil)
	assert.NotEmpty(t, b.Object().TouchingCells)
}
