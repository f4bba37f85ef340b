package transport

import (
	"math/rand"
	"testing"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

type passenger struct {
	pos       gamemath.Vec
	alive     bool
	respawns  []gamemath.Vec
	carriedTo []gamemath.Vec
}

func newPassenger(pos gamemath.Vec) *passenger { return &passenger{pos: pos, alive: true} }

func (p *passenger) Position() gamemath.Vec { return p.pos }
func (p *passenger) Alive() bool            { return p.alive }

func (p *passenger) Carry(pos gamemath.Vec) {
	p.pos = pos
	p.carriedTo = append(p.carriedTo, pos)
}

func (p *passenger) CompleteRespawn(anchor gamemath.Vec) {
	p.pos = anchor
	p.respawns = append(p.respawns, anchor)
}

func run(t *testing.T, tr *Dispatcher, max int) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		tr.Update(dt)
		if len(tr.Drones()) == 0 {
			return i
		}
	}
	t.Fatalf("pickup still running after %d ticks", max)
	return 0
}

func TestPickupSequence(t *testing.T) {
	cfg := config.Default().Transport
	tr := NewDispatcher(cfg)
	p := newPassenger(gamemath.V(2, -11))
	anchor := gamemath.V(-3, 4)

	var launched, landed []*Drone
	tr.OnLaunch = func(d *Drone) { launched = append(launched, d) }
	tr.OnLand = func(d *Drone) { landed = append(landed, d) }

	require.True(t, tr.StartPickup(p, anchor))
	require.Len(t, launched, 1)
	d := launched[0]
	assert.Equal(t, gamemath.V(2, -11+cfg.SpawnHeight), d.Position())

	assert.False(t, tr.StartPickup(p, anchor), "already being carried")

	ticks := run(t, tr, 1000)
	dist := gamemath.V(2, -11).Dist(anchor)
	want := (dist/cfg.Speed + cfg.DropDelay) / dt
	assert.InDelta(t, want, float64(ticks), 3)

	assert.Equal(t, []gamemath.Vec{anchor}, p.respawns)
	assert.Equal(t, Done, d.Phase())
	assert.Equal(t, landed, launched)
	last := p.carriedTo[len(p.carriedTo)-1]
	assert.InDelta(t, anchor.X, last.X, 1e-4)
	assert.InDelta(t, anchor.Y, last.Y, 1e-4)

	for i := 1; i < len(p.carriedTo); i++ {
		assert.LessOrEqual(t, p.carriedTo[i].Dist(anchor), p.carriedTo[i-1].Dist(anchor)+1e-4)
	}
}

func TestPickupCancelledWhenPassengerDestroyed(t *testing.T) {
	tr := NewDispatcher(config.Default().Transport)
	p := newPassenger(gamemath.V(0, -11))
	var landed int
	tr.OnLand = func(*Drone) { landed++ }
	require.True(t, tr.StartPickup(p, gamemath.V(0, 5)))
	d := tr.Drones()[0]

	for i := 0; i < 30; i++ {
		tr.Update(dt)
	}
	require.Equal(t, Carry, d.Phase())
	p.alive = false
	tr.Update(dt)

	assert.Equal(t, Cancelled, d.Phase())
	assert.Empty(t, tr.Drones())
	assert.Empty(t, p.respawns)
	assert.Equal(t, 1, landed)
}

func TestDestroyedDroneRespawnsPassenger(t *testing.T) {
	tr := NewDispatcher(config.Default().Transport)
	p := newPassenger(gamemath.V(0, -11))
	anchor := gamemath.V(0, 5)
	require.True(t, tr.StartPickup(p, anchor))
	tr.Update(dt)
	tr.Cancel(p)
	for i := 0; i < 600; i++ {
		tr.Update(dt)
	}
	assert.Equal(t, []gamemath.Vec{anchor}, p.respawns)
	assert.Empty(t, tr.Drones())
}

func TestDeadPassengerIsRefused(t *testing.T) {
	tr := NewDispatcher(config.Default().Transport)
	p := newPassenger(gamemath.V(0, 0))
	p.alive = false
	assert.False(t, tr.StartPickup(p, gamemath.V(0, 5)))
}

func TestZeroSpeedIsInstant(t *testing.T) {
	cfg := config.Default().Transport
	cfg.Speed = 0
	cfg.DropDelay = 0
	tr := NewDispatcher(cfg)
	p := newPassenger(gamemath.V(0, -11))
	require.True(t, tr.StartPickup(p, gamemath.V(1, 2)))
	ticks := run(t, tr, 10)
	assert.LessOrEqual(t, ticks, 3)
	assert.Equal(t, []gamemath.Vec{gamemath.V(1, 2)}, p.respawns)
}

func TestEasingFallsBackToLinear(t *testing.T) {
	assert.NotNil(t, Easing("in_out_quad"))
	assert.NotNil(t, Easing("bogus"))
}

type kinematicBody struct {
	pos       gamemath.Vec
	kinematic bool
}

func (b *kinematicBody) Position() gamemath.Vec  { return b.pos }
func (b *kinematicBody) Halt()                   {}
func (b *kinematicBody) SetKinematic(on bool)    { b.kinematic = on }
func (b *kinematicBody) Teleport(p gamemath.Vec) { b.pos = p }

func TestKnockoutToRespawnThroughStats(t *testing.T) {
	body := &kinematicBody{pos: gamemath.V(0, 0)}
	anchors := []gamemath.Vec{{X: 3, Y: 2}}
	s := stats.New(config.Default().Stats, body, gamemath.Vec{}, anchors, rand.New(rand.NewSource(1)))
	tr := NewDispatcher(config.Default().Transport)
	s.SetTransport(tr)
	s.AddDamage(80)

	body.pos = gamemath.V(0, -12)
	require.True(t, s.Check())
	require.Len(t, tr.Drones(), 1)
	assert.True(t, body.kinematic)

	run(t, tr, 1000)
	assert.True(t, s.Active())
	assert.Zero(t, s.Damage())
	assert.Equal(t, anchors[0], body.pos)
	assert.False(t, body.kinematic)
}

func TestDestroyedDroneReleasesKnockedOutFighter(t *testing.T) {
	body := &kinematicBody{pos: gamemath.V(0, 0)}
	anchors := []gamemath.Vec{{X: -2, Y: 4}}
	s := stats.New(config.Default().Stats, body, gamemath.Vec{}, anchors, rand.New(rand.NewSource(1)))
	tr := NewDispatcher(config.Default().Transport)
	s.SetTransport(tr)

	body.pos = gamemath.V(0, -12)
	require.True(t, s.Check())
	tr.Update(dt)
	tr.Drones()[0].Destroy()
	tr.Update(dt)

	assert.Empty(t, tr.Drones())
	assert.True(t, s.Active())
	assert.False(t, body.kinematic)
	assert.Equal(t, anchors[0], body.pos)
}
