package match

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/automoto/rippto-brawl/bot"
	"github.com/automoto/rippto-brawl/components"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/fighter"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/stage"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

func newMatch(t *testing.T, cfg config.Config) *Match {
	t.Helper()
	st, err := stage.Default()
	require.NoError(t, err)
	m, err := New(cfg, st, Options{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))})
	require.NoError(t, err)
	return m
}

func duel(t *testing.T) (*Match, *fighter.Fighter, *fighter.Fighter) {
	t.Helper()
	m := newMatch(t, config.Default())
	a := m.AddFighter("a", nil, nil)
	b := m.AddFighter("b", nil, nil)
	return m, a, b
}

func teleport(f *fighter.Fighter, p gamemath.Vec) {
	f.Body().SetPosition(p)
	f.Movement().Reset(p)
}

func count(m *Match, c donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(c)).Count(m.ECS().World)
}

func TestNewRequiresStage(t *testing.T) {
	_, err := New(config.Default(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoStage)
}

func TestFightersTakeSpawnSlots(t *testing.T) {
	m, a, b := duel(t)
	assert.Equal(t, gamemath.V(-4, 0), a.Position())
	assert.Equal(t, gamemath.V(4, 0), b.Position())
	assert.Equal(t, 2, count(m, tags.Fighter))

	scores := m.Scores()
	require.Len(t, scores, 2)
	assert.Equal(t, "a", scores[0].Name)
	assert.Equal(t, "b", scores[1].Name)
}

func TestAdvanceFixedStep(t *testing.T) {
	m, _, _ := duel(t)
	dt := m.TickDuration()

	assert.Equal(t, 1, m.Advance(dt))
	assert.Equal(t, 0, m.Advance(dt/2))
	assert.Equal(t, 1, m.Advance(dt/2))
	assert.Equal(t, 2, m.Ticks())

	// a long stall runs at most MaxFrameTicks and drops the rest
	assert.Equal(t, m.Config().Match.MaxFrameTicks, m.Advance(1))
	assert.Equal(t, 0, m.Advance(0))
	assert.InDelta(t, float64(m.Ticks())*dt, m.Time(), 1e-9)
}

func TestEdgesSurviveFramesWithoutTicks(t *testing.T) {
	m, a, _ := duel(t)
	for i := 0; i < 5; i++ {
		m.Advance(m.TickDuration())
	}
	dt := m.TickDuration()

	a.PushInput(input.Intent{JumpPressed: true})
	assert.Equal(t, 0, m.Advance(dt/2))
	assert.Equal(t, 1, m.Advance(dt/2))
	assert.Equal(t, 1, a.Movement().JumpCount)
}

func TestAttackScoresDamage(t *testing.T) {
	m, a, b := duel(t)
	teleport(b, gamemath.V(-3.2, 0))
	for i := 0; i < 3; i++ {
		m.Advance(m.TickDuration())
	}

	var hits []Hit
	HitEvent.Subscribe(m.ECS().World, func(_ donburi.World, h Hit) { hits = append(hits, h) })

	a.PushInput(input.Intent{LightPressed: true})
	for i := 0; i < 30; i++ {
		m.Advance(m.TickDuration())
	}

	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Attacker)
	assert.Equal(t, 1, hits[0].Target)
	assert.InDelta(t, 5.5, b.Damage(), 1e-9)

	s := m.Scores()
	assert.InDelta(t, 5.5, s[0].DamageDealt, 1e-9)
	assert.InDelta(t, 5.5, s[1].DamageTaken, 1e-9)
	assert.Equal(t, 1, s[0].Hits)
	assert.Equal(t, 1, s[0].BestCombo)
}

func TestKnockoutRespawnsByDrone(t *testing.T) {
	m, _, b := duel(t)
	var respawns []Respawn
	RespawnEvent.Subscribe(m.ECS().World, func(_ donburi.World, r Respawn) { respawns = append(respawns, r) })

	m.Step()
	teleport(b, gamemath.V(0, -15))
	m.Step()

	assert.False(t, b.Active())
	assert.Equal(t, 1, m.Scores()[1].Falls)
	assert.Zero(t, m.Scores()[0].KOs, "no recent hit, no credit")
	require.Len(t, m.Drones(), 1)
	assert.Equal(t, 1, count(m, tags.Drone))

	m.Simulate(6)
	assert.True(t, b.Active())
	assert.Empty(t, m.Drones())
	assert.Zero(t, count(m, tags.Drone))
	require.Len(t, respawns, 1)
	assert.Equal(t, 1, respawns[0].Slot)
	nearest := 1e9
	for _, a := range m.Stage().RespawnAnchors() {
		nearest = math.Min(nearest, a.Dist(respawns[0].Pos))
	}
	assert.Less(t, nearest, 0.01)
}

func TestKnockoutCreditsLastAttacker(t *testing.T) {
	m, _, b := duel(t)
	HitEvent.Publish(m.ECS().World, Hit{Attacker: 0, Target: 1, Damage: 5})
	m.Step()
	assert.Equal(t, 0, components.Fighter.Get(m.entry(1)).LastHitBy)

	teleport(b, gamemath.V(0, -15))
	m.Step()

	s := m.Scores()
	assert.Equal(t, 1, s[0].KOs)
	assert.Equal(t, 1, s[1].Falls)
	assert.Equal(t, -1, components.Fighter.Get(m.entry(1)).LastHitBy)
	assert.Equal(t, 0, m.Leader())
}

func TestStaleHitEarnsNoCredit(t *testing.T) {
	cfg := config.Default()
	cfg.Match.KOCreditTime = 0.5
	m := newMatch(t, cfg)
	m.AddFighter("a", nil, nil)
	b := m.AddFighter("b", nil, nil)

	HitEvent.Publish(m.ECS().World, Hit{Attacker: 0, Target: 1, Damage: 5})
	m.Step()
	m.Simulate(1)
	teleport(b, gamemath.V(0, -15))
	m.Step()

	assert.Zero(t, m.Scores()[0].KOs)
	assert.Equal(t, 1, m.Scores()[1].Falls)
}

func TestSerumCollection(t *testing.T) {
	m, a, _ := duel(t)
	require.Len(t, m.Serums(), 4)
	assert.Equal(t, 4, count(m, tags.Serum))

	var picked []SerumPicked
	SerumEvent.Subscribe(m.ECS().World, func(_ donburi.World, p SerumPicked) { picked = append(picked, p) })

	teleport(a, gamemath.V(0, 0))
	m.Step()

	require.Len(t, picked, 1)
	assert.Equal(t, 0, picked[0].Slot)
	assert.Equal(t, gamemath.V(0, 0.5), picked[0].Pos)
	assert.Equal(t, 1, m.Scores()[0].Serums)
	assert.Len(t, m.Serums(), 3)
	assert.Equal(t, 3, count(m, tags.Serum))
}

func TestQueuedConfigAppliesOnNextTick(t *testing.T) {
	m, a, _ := duel(t)
	cfg := config.Default()
	cfg.Movement.GroundSpeed = 3
	m.QueueConfig(cfg)
	assert.Equal(t, 7.0, a.Movement().Config().GroundSpeed)

	m.Step()
	assert.Equal(t, 3.0, a.Movement().Config().GroundSpeed)
	assert.Equal(t, 3.0, m.Config().Movement.GroundSpeed)
}

func TestCameraFollowsTarget(t *testing.T) {
	m, _, b := duel(t)
	m.Follow(1)
	m.Advance(m.TickDuration())

	assert.InDelta(t, b.Position().X, m.Camera().Position().X, 0.5)
	cd := components.Camera.Get(m.ECS().World.Entry(m.view))
	assert.Equal(t, 1, cd.Target)
	assert.InDelta(t, m.Camera().View().X, cd.Position.X, 1e-9)
}

func TestBotMatchRuns(t *testing.T) {
	m := newMatch(t, config.Default())
	prog, err := bot.Simple()
	require.NoError(t, err)
	for _, name := range []string{"red", "blue"} {
		_, err := m.AddBot(name, prog)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, count(m, tags.Bot))

	m.Simulate(20)
	assert.Equal(t, 1200, m.Ticks())
	for _, f := range m.Fighters() {
		assert.False(t, math.IsNaN(f.Position().X))
		assert.False(t, math.IsNaN(f.Position().Y))
	}

	_, err = m.AddBot("none", nil)
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestRunStopsWithContext(t *testing.T) {
	m, _, _ := duel(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := m.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, m.Ticks())
}
