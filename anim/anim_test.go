package anim

import (
	"testing"

	"github.com/automoto/rippto-brawl/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// partialSink only knows a few params and records what reaches it.
type partialSink struct {
	known map[Param]bool
	got   []Param
}

func (s *partialSink) Supports(p Param) bool       { return s.known[p] }
func (s *partialSink) SetBool(p Param, _ bool)     { s.got = append(s.got, p) }
func (s *partialSink) SetFloat(p Param, _ float64) { s.got = append(s.got, p) }
func (s *partialSink) SetInt(p Param, _ int)       { s.got = append(s.got, p) }
func (s *partialSink) Trigger(p Param)             { s.got = append(s.got, p) }
func (s *partialSink) ActiveAttack() Attack        { return Heavy }

func TestBindDropsUnsupported(t *testing.T) {
	sink := &partialSink{known: map[Param]bool{Grounded: true, Jump: true}}
	b := Bind(sink)
	require.True(t, b.Bound())

	b.SetBool(Grounded, true)
	b.SetBool(Running, true)
	b.SetFloat(VerticalVelocity, 3)
	b.Trigger(Jump)
	// wrong kind for the param
	b.SetFloat(Grounded, 1)

	assert.Equal(t, []Param{Grounded, Jump}, sink.got)
	assert.Contains(t, b.Missing(), Running)
	assert.NotContains(t, b.Missing(), Grounded)
	assert.Equal(t, Heavy, b.ActiveAttack())
}

func TestUnboundIsNoop(t *testing.T) {
	b := Bind(nil)
	assert.False(t, b.Bound())
	b.SetBool(Grounded, true)
	b.Trigger(LightAttack)
	assert.Equal(t, NoAttack, b.ActiveAttack())
	assert.Len(t, b.Missing(), int(numParams))

	var zero *Binding
	assert.Equal(t, NoAttack, zero.ActiveAttack())
}

func TestMirrorPriority(t *testing.T) {
	th := Thresholds{Run: 0.1, Fall: -0.5}
	tests := []struct {
		name                      string
		snap                      Snapshot
		dash, fall, run, grounded bool
	}{
		{"dash beats fall", Snapshot{Dashing: true, VelY: -4, VelX: 14}, true, false, false, false},
		{"falling", Snapshot{VelY: -4}, false, true, false, false},
		{"rising is not falling", Snapshot{VelY: 3}, false, false, false, false},
		{"running", Snapshot{Grounded: true, VelX: 5}, false, false, true, true},
		{"idle", Snapshot{Grounded: true}, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewTimeline(config.Default().Animation)
			NewMirror(Bind(tl), th).Apply(tt.snap)
			assert.Equal(t, tt.dash, tl.Bool(Dashing))
			assert.Equal(t, tt.fall, tl.Bool(Falling))
			assert.Equal(t, tt.run, tl.Bool(Running))
			assert.Equal(t, tt.grounded, tl.Bool(Grounded))
		})
	}
}

func TestMirrorPulsesJumpOncePerJump(t *testing.T) {
	tl := NewTimeline(config.Default().Animation)
	m := NewMirror(Bind(tl), Thresholds{Run: 0.1, Fall: -0.5})

	m.Apply(Snapshot{Grounded: true})
	assert.Equal(t, 0, tl.Triggered(Jump))

	m.Apply(Snapshot{VelY: 10, JumpCount: 1, JumpSeq: 1})
	m.Apply(Snapshot{VelY: 9, JumpCount: 1, JumpSeq: 1})
	m.Apply(Snapshot{VelY: 9, JumpCount: 1, JumpSeq: 1})
	assert.Equal(t, 1, tl.Triggered(Jump))
	assert.Equal(t, 1, tl.Int(JumpNumber))
}

func TestTimelineHitInstant(t *testing.T) {
	cfg := config.Default().Animation
	tl := NewTimeline(cfg)
	var hits []Attack
	tl.OnHit = func(a Attack) { hits = append(hits, a) }

	tl.Trigger(HeavyAttack)
	assert.Equal(t, Heavy, tl.ActiveAttack())

	for elapsed := 0.0; elapsed < cfg.Heavy.Duration+0.05; elapsed += 1.0 / 60 {
		tl.Advance(1.0 / 60)
	}
	assert.Equal(t, []Attack{Heavy}, hits)
	assert.Equal(t, NoAttack, tl.ActiveAttack())
}

func TestAttackKinds(t *testing.T) {
	for _, a := range []Attack{Light, SideKickAttack, AirLightAttack, Heavy, FlyingChainAttack, AirHeavyAttack} {
		assert.Equal(t, a, AttackFor(a.Trigger()), a.String())
	}
	assert.True(t, FlyingChainAttack.IsHeavy())
	assert.False(t, SideKickAttack.IsHeavy())
}
