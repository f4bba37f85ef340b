package combat

import (
	"testing"

	"github.com/automoto/rippto-brawl/anim"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	triggers []anim.Param
	active   anim.Attack
}

func (s *recordingSink) Supports(anim.Param) bool     { return true }
func (s *recordingSink) SetBool(anim.Param, bool)     {}
func (s *recordingSink) SetFloat(anim.Param, float64) {}
func (s *recordingSink) SetInt(anim.Param, int)       {}
func (s *recordingSink) Trigger(p anim.Param)         { s.triggers = append(s.triggers, p) }
func (s *recordingSink) ActiveAttack() anim.Attack    { return s.active }

type dummy struct {
	pos       gamemath.Vec
	damage    float64
	knockback gamemath.Vec
	hits      int
}

func (d *dummy) Position() gamemath.Vec { return d.pos }
func (d *dummy) Damage() float64        { return d.damage }

func (d *dummy) TakeHit(damage float64, kb gamemath.Vec) {
	d.damage += damage
	d.knockback = d.knockback.Add(kb)
	d.hits++
}

func queryOf(targets ...*dummy) Query {
	return func(center gamemath.Vec, radius float64) []Target {
		var out []Target
		for _, t := range targets {
			if t.pos.Dist(center) <= radius {
				out = append(out, t)
			}
		}
		return out
	}
}

func newSim(t *testing.T) (*Sim, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return New(config.Default().Combat, anim.Bind(sink)), sink
}

func TestDecisionTable(t *testing.T) {
	c := config.Default().Combat
	tests := []struct {
		name   string
		heavy  bool
		stance Stance
		want   anim.Attack
		lunge  float64
	}{
		{"light grounded moving", false, Stance{Facing: 1, Grounded: true, Axis: 1}, anim.SideKickAttack, c.LightLunge * c.SideKickLungeMult},
		{"light grounded still", false, Stance{Facing: 1, Grounded: true}, anim.Light, c.LightLunge},
		{"light airborne", false, Stance{Facing: -1, Axis: -1}, anim.AirLightAttack, -c.LightLunge * c.AirLightLungeMult},
		{"heavy grounded moving", true, Stance{Facing: 1, Grounded: true, Axis: 0.5}, anim.FlyingChainAttack, c.HeavyLunge * c.FlyingLungeMult},
		{"heavy airborne moving", true, Stance{Facing: -1, Axis: -1}, anim.FlyingChainAttack, -c.HeavyLunge * c.FlyingLungeMult},
		{"heavy grounded still", true, Stance{Facing: 1, Grounded: true, Axis: 0.05}, anim.Heavy, c.HeavyLunge},
		{"heavy airborne still", true, Stance{Facing: 1}, anim.AirHeavyAttack, c.HeavyLunge * c.AirHeavyLungeMult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sink := newSim(t)
			try := s.TryLight
			if tt.heavy {
				try = s.TryHeavy
			}
			got, ok := try(tt.stance)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Attack)
			assert.InDelta(t, tt.lunge, got.Lunge.X, 1e-9)
			assert.Zero(t, got.Lunge.Y)
			assert.Equal(t, 1, s.Combo())
			assert.Equal(t, []anim.Param{tt.want.Trigger()}, sink.triggers)
		})
	}
}

func TestSameTickPressIsIdempotent(t *testing.T) {
	s, sink := newSim(t)
	st := Stance{Facing: 1, Grounded: true}
	_, ok := s.TryLight(st)
	require.True(t, ok)
	_, ok = s.TryLight(st)
	assert.False(t, ok)
	_, ok = s.TryHeavy(st)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Combo())
	assert.Len(t, sink.triggers, 1)
}

func TestCooldownRejectsSilently(t *testing.T) {
	s, _ := newSim(t)
	st := Stance{Facing: 1, Grounded: true}
	s.TryLight(st)
	s.Tick(0.1)
	_, ok := s.TryLight(st)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Combo())

	s.Tick(0.2)
	_, ok = s.TryLight(st)
	assert.True(t, ok)
	assert.Equal(t, 2, s.Combo())
}

func TestComboDecaysWhileIdle(t *testing.T) {
	s, _ := newSim(t)
	st := Stance{Facing: 1, Grounded: true}
	s.TryLight(st)
	s.Tick(0.5)
	s.TryLight(st)
	require.Equal(t, 2, s.Combo())

	for i := 0; i < 50; i++ {
		s.Tick(1.0 / 60)
	}
	assert.Equal(t, 2, s.Combo(), "inside the window")
	for i := 0; i < 20; i++ {
		s.Tick(1.0 / 60)
	}
	assert.Equal(t, 0, s.Combo())
}

// buildCombo lands n light presses spaced past the cooldown.
func buildCombo(s *Sim, n int) {
	st := Stance{Facing: 1, Grounded: true}
	for i := 0; i < n; i++ {
		s.TryLight(st)
		s.Tick(0.3)
	}
}

func TestComboDamageAndKnockback(t *testing.T) {
	s, sink := newSim(t)
	buildCombo(s, 3)
	require.Equal(t, 3, s.Combo())
	sink.active = anim.Light

	target := &dummy{pos: gamemath.V(0.6, 0.3), damage: 20}
	events, err := s.DealDamage(Stance{Facing: 1, Grounded: true}, queryOf(target))
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.InDelta(t, 6.5, events[0].Damage, 1e-9)
	assert.InDelta(t, 26.5, target.damage, 1e-9)
	assert.InDelta(t, 6.0, events[0].Knockback.Len(), 1e-9)
	dir := target.pos.Normalized()
	assert.InDelta(t, dir.X*6, target.knockback.X, 1e-9)
	assert.InDelta(t, dir.Y*6, target.knockback.Y, 1e-9)
}

func TestHeavyDamageFollowsActiveClip(t *testing.T) {
	for _, a := range []anim.Attack{anim.Heavy, anim.FlyingChainAttack, anim.AirHeavyAttack} {
		s, sink := newSim(t)
		sink.active = a
		target := &dummy{pos: gamemath.V(0.5, 0.4)}
		events, err := s.DealDamage(Stance{Facing: 1}, queryOf(target))
		require.NoError(t, err)
		require.Len(t, events, 1, a.String())
		assert.Equal(t, s.Config().HeavyDamage, events[0].Damage, a.String())
	}
}

func TestDamageFallsBackToLastAttackWithoutSink(t *testing.T) {
	s := New(config.Default().Combat, anim.Bind(nil))
	s.TryHeavy(Stance{Facing: 1, Grounded: true})
	assert.False(t, s.Locked())

	target := &dummy{pos: gamemath.V(0.5, 0.4)}
	events, err := s.DealDamage(Stance{Facing: 1}, queryOf(target))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.InDelta(t, s.Config().HeavyDamage*1.1, events[0].Damage, 1e-9)
}

func TestAttackOriginMirrorsWithFacing(t *testing.T) {
	s, _ := newSim(t)
	left := &dummy{pos: gamemath.V(-0.6, 0.3)}
	right := &dummy{pos: gamemath.V(0.6, 0.3)}
	q := queryOf(left, right)

	events, err := s.DealDamage(Stance{Facing: -1}, q)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Same(t, left, events[0].Target)
	assert.Less(t, left.knockback.X, 0.0)
	assert.Zero(t, right.hits)
}

func TestMissingAttackOriginIsNoop(t *testing.T) {
	cfg := config.Default().Combat
	cfg.AttackOrigin = nil
	s := New(cfg, anim.Bind(nil))
	target := &dummy{pos: gamemath.V(0.5, 0.5)}

	events, err := s.DealDamage(Stance{Facing: 1}, queryOf(target))
	assert.ErrorIs(t, err, ErrNoAttackOrigin)
	assert.Empty(t, events)
	assert.Zero(t, target.hits)
}

func TestKnockbackGrowsWithDamage(t *testing.T) {
	s, _ := newSim(t)
	prev := s.Knockback(0)
	for d := 10.0; d <= 300; d += 10 {
		kb := s.Knockback(d)
		assert.Greater(t, kb, prev)
		prev = kb
	}
}

func TestLockedWhileClipPlays(t *testing.T) {
	s, sink := newSim(t)
	assert.False(t, s.Locked())
	sink.active = anim.SideKickAttack
	assert.True(t, s.Locked())
}

func TestResetClearsCombo(t *testing.T) {
	s, _ := newSim(t)
	buildCombo(s, 2)
	s.Reset()
	assert.Zero(t, s.Combo())
	_, ok := s.TryHeavy(Stance{Facing: 1, Grounded: true})
	assert.True(t, ok)
}
