// Package combat resolves attack presses into attack variants, tracks the
// combo counter and applies damage and knockback at the hit instant.
package combat

import (
	"errors"
	"math"

	"github.com/automoto/rippto-brawl/anim"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
)

// ErrNoAttackOrigin is returned by DealDamage when no attack origin is
// configured. No damage is applied.
var ErrNoAttackOrigin = errors.New("combat: no attack origin configured")

// Stance is the slice of movement state an attack decision reads.
type Stance struct {
	Pos      gamemath.Vec
	Facing   float64
	Grounded bool
	Axis     float64
}

// Attempt is an accepted attack press.
type Attempt struct {
	Attack anim.Attack
	// Lunge is an impulse to add to the attacker's velocity.
	Lunge gamemath.Vec
	Combo int
}

// Target is anything a hit can land on.
type Target interface {
	Position() gamemath.Vec
	Damage() float64
	TakeHit(damage float64, knockback gamemath.Vec)
}

// Query returns the targets overlapping a circle, attacker excluded.
type Query func(center gamemath.Vec, radius float64) []Target

// AttackEvent describes one resolved hit.
type AttackEvent struct {
	Target    Target
	Attack    anim.Attack
	Damage    float64
	Knockback gamemath.Vec
	Combo     int
}

// Sim is one fighter's combat state. Cooldowns are timestamps on the sim
// clock advanced by Tick.
type Sim struct {
	cfg  config.CombatConfig
	anim *anim.Binding

	combo      int
	lastAttack float64
	last       anim.Attack

	now        float64
	lightReady float64
	heavyReady float64
	pressedAt  float64
	pressed    bool
}

func New(cfg config.CombatConfig, b *anim.Binding) *Sim {
	return &Sim{cfg: cfg, anim: b, lastAttack: math.Inf(-1)}
}

func (s *Sim) SetConfig(cfg config.CombatConfig) { s.cfg = cfg }

func (s *Sim) Combo() int                  { return s.combo }
func (s *Sim) Now() float64                { return s.now }
func (s *Sim) LastAttack() anim.Attack     { return s.last }
func (s *Sim) Config() config.CombatConfig { return s.cfg }

// Tick advances the combat clock and decays the combo.
func (s *Sim) Tick(dt float64) {
	s.now += dt
	if s.now-s.lastAttack > s.cfg.ComboResetTime {
		s.combo = 0
	}
}

// Locked reports whether an attack clip is playing. Movement suppresses
// horizontal input while it is.
func (s *Sim) Locked() bool {
	return s.anim.ActiveAttack() != anim.NoAttack
}

// TryLight handles a light attack press.
func (s *Sim) TryLight(st Stance) (Attempt, bool) {
	if !s.ready(s.lightReady) {
		return Attempt{}, false
	}
	c := s.cfg
	a, lunge := anim.Light, c.LightLunge
	switch {
	case !st.Grounded:
		a, lunge = anim.AirLightAttack, c.LightLunge*c.AirLightLungeMult
	case s.moving(st):
		a, lunge = anim.SideKickAttack, c.LightLunge*c.SideKickLungeMult
	}
	s.lightReady = s.now + c.LightCooldown
	return s.commit(a, lunge, st), true
}

// TryHeavy handles a heavy attack press.
func (s *Sim) TryHeavy(st Stance) (Attempt, bool) {
	if !s.ready(s.heavyReady) {
		return Attempt{}, false
	}
	c := s.cfg
	a, lunge := anim.Heavy, c.HeavyLunge
	switch {
	case s.moving(st):
		a, lunge = anim.FlyingChainAttack, c.HeavyLunge*c.FlyingLungeMult
	case !st.Grounded:
		a, lunge = anim.AirHeavyAttack, c.HeavyLunge*c.AirHeavyLungeMult
	}
	s.heavyReady = s.now + c.HeavyCooldown
	return s.commit(a, lunge, st), true
}

// ready rejects presses on cooldown and a second press in the same tick.
func (s *Sim) ready(at float64) bool {
	if s.pressed && s.pressedAt == s.now {
		return false
	}
	return s.now >= at
}

func (s *Sim) moving(st Stance) bool {
	return math.Abs(st.Axis) > s.cfg.MovingThreshold
}

func (s *Sim) commit(a anim.Attack, lunge float64, st Stance) Attempt {
	s.combo++
	s.lastAttack = s.now
	s.last = a
	s.pressed, s.pressedAt = true, s.now
	s.anim.Trigger(a.Trigger())

	facing := st.Facing
	if facing == 0 {
		facing = 1
	}
	return Attempt{
		Attack: a,
		Lunge:  gamemath.Vec{X: facing * lunge},
		Combo:  s.combo,
	}
}

// DealDamage applies the current attack to everything in range of the
// attack origin. Knockback is scaled by each target's damage from before
// this hit.
func (s *Sim) DealDamage(st Stance, q Query) ([]AttackEvent, error) {
	c := s.cfg
	if c.AttackOrigin == nil {
		return nil, ErrNoAttackOrigin
	}
	if q == nil {
		return nil, nil
	}
	facing := st.Facing
	if facing == 0 {
		facing = 1
	}
	origin := st.Pos.Add(gamemath.Vec{X: c.AttackOrigin.X * facing, Y: c.AttackOrigin.Y})

	a := s.anim.ActiveAttack()
	if a == anim.NoAttack {
		a = s.last
	}
	damage := c.LightDamage
	if a.IsHeavy() {
		damage = c.HeavyDamage
	}
	damage *= 1 + float64(s.combo)*c.ComboDamageStep

	var events []AttackEvent
	for _, t := range q(origin, c.AttackRange) {
		dir := t.Position().Sub(st.Pos).Normalized()
		if dir == gamemath.Zero {
			dir = gamemath.Vec{X: facing}
		}
		kb := dir.Scale(s.Knockback(t.Damage()))
		t.TakeHit(damage, kb)
		events = append(events, AttackEvent{
			Target:    t,
			Attack:    a,
			Damage:    damage,
			Knockback: kb,
			Combo:     s.combo,
		})
	}
	return events, nil
}

// Knockback is the launch magnitude against a target carrying damage.
func (s *Sim) Knockback(targetDamage float64) float64 {
	return s.cfg.KnockbackBase + targetDamage*s.cfg.KnockbackMult
}

// Reset clears the combo and cooldowns, as on respawn.
func (s *Sim) Reset() {
	s.combo = 0
	s.lastAttack = math.Inf(-1)
	s.last = anim.NoAttack
	s.lightReady = s.now
	s.heavyReady = s.now
	s.pressed = false
}
