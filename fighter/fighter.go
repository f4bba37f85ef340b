// Package fighter wires one combatant's movement, combat and stats to its
// collider and animation sink, and runs them in tick order.
package fighter

import (
	"log/slog"
	"math/rand"

	"github.com/automoto/rippto-brawl/anim"
	"github.com/automoto/rippto-brawl/combat"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/ground"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/movement"
	"github.com/automoto/rippto-brawl/physics"
	"github.com/automoto/rippto-brawl/stats"
)

// Options are the per-fighter collaborators. Everything but Spawn may be
// left zero.
type Options struct {
	Name    string
	Spawn   gamemath.Vec
	Anchors []gamemath.Vec
	Sink    anim.Sink
	Source  input.Source
	Rand    *rand.Rand
	Logger  *slog.Logger
	// NoGroundProbe runs the fighter without ground queries, as with a
	// collider that has no ground layer configured.
	NoGroundProbe bool
}

// Events is what one tick produced.
type Events struct {
	Movement  movement.Events
	Attack    *combat.Attempt
	Hits      []combat.AttackEvent
	KO        bool
	Respawned bool
}

// Fighter owns a combatant's simulation state for its whole life.
type Fighter struct {
	Name string

	cfg    config.Config
	world  *physics.World
	body   *physics.Body
	move   *movement.Sim
	combat *combat.Sim
	stats  *stats.Stats
	sensor *ground.Sensor

	binding  *anim.Binding
	mirror   *anim.Mirror
	timeline *anim.Timeline

	source  input.Source
	latch   input.Latch
	noProbe bool

	kinematic   bool
	pendingHits int
	respawned   bool
	diag        *diagnostics
}

func New(cfg config.Config, world *physics.World, opts Options) *Fighter {
	f := &Fighter{
		Name:    opts.Name,
		cfg:     cfg,
		world:   world,
		source:  opts.Source,
		noProbe: opts.NoGroundProbe,
		diag:    newDiagnostics(opts.Logger, opts.Name),
	}
	f.body = world.AddBody(opts.Spawn, cfg.Body.Width, cfg.Body.Height, f)
	f.move = movement.New(cfg.Movement, opts.Spawn)
	f.sensor = ground.NewSensor(cfg.Ground, cfg.Body.Width, cfg.Movement.CoyoteTime)

	f.binding = anim.Bind(opts.Sink)
	f.mirror = anim.NewMirror(f.binding, anim.Thresholds{
		Run:  cfg.Movement.RunThreshold,
		Fall: -cfg.Ground.RestSpeed,
	})
	if tl, ok := opts.Sink.(*anim.Timeline); ok {
		f.timeline = tl
		tl.OnHit = func(anim.Attack) { f.QueueHit() }
	}
	f.combat = combat.New(cfg.Combat, f.binding)

	f.stats = stats.New(cfg.Stats, (*statsBody)(f), opts.Spawn, opts.Anchors, opts.Rand)
	f.stats.OnRespawn = func(gamemath.Vec) { f.respawned = true }

	if !f.binding.Bound() {
		f.diag.report("anim.unbound", "no animation sink bound; attack lock and hit timing are disabled")
	} else if missing := f.binding.Missing(); len(missing) > 0 {
		f.diag.report("anim.missing", "animation sink is missing params", "params", paramNames(missing))
	}
	if opts.NoGroundProbe {
		f.diag.report("ground.none", "no ground probe; fighter is never grounded")
	}
	return f
}

func (f *Fighter) Body() *physics.Body      { return f.body }
func (f *Fighter) Movement() *movement.Sim  { return f.move }
func (f *Fighter) Combat() *combat.Sim      { return f.combat }
func (f *Fighter) Stats() *stats.Stats      { return f.stats }
func (f *Fighter) Binding() *anim.Binding   { return f.binding }
func (f *Fighter) Timeline() *anim.Timeline { return f.timeline }
func (f *Fighter) Kinematic() bool          { return f.kinematic }

func (f *Fighter) Position() gamemath.Vec { return f.body.Position() }
func (f *Fighter) Velocity() gamemath.Vec { return f.move.Vel }
func (f *Fighter) Damage() float64        { return f.stats.Damage() }

// Active reports whether the fighter is on the stage and simulated.
func (f *Fighter) Active() bool { return f.stats.Active() && !f.kinematic }

// SetTransport installs the collaborator that carries this fighter back
// after a knockout.
func (f *Fighter) SetTransport(t stats.Transport) { f.stats.SetTransport(t) }

// SetSource replaces the intent source.
func (f *Fighter) SetSource(s input.Source) { f.source = s }

// SetConfig swaps tunables between ticks.
func (f *Fighter) SetConfig(cfg config.Config) {
	f.cfg = cfg
	f.move.SetConfig(cfg.Movement)
	f.combat.SetConfig(cfg.Combat)
	f.stats.SetConfig(cfg.Stats)
	f.sensor = ground.NewSensor(cfg.Ground, cfg.Body.Width, cfg.Movement.CoyoteTime)
}

// PollInput reads the source once for this frame.
func (f *Fighter) PollInput() {
	if f.source != nil {
		f.latch.Push(f.source.Poll())
	}
}

// PushInput merges an intent directly, bypassing the source.
func (f *Fighter) PushInput(in input.Intent) { f.latch.Push(in) }

// QueueHit records a hit instant from the animation side. It is applied
// during the next tick's combat phase.
func (f *Fighter) QueueHit() { f.pendingHits++ }

// Tick runs one fixed step: timers, ground sensing, movement, combat and
// then the position commit.
func (f *Fighter) Tick(dt float64) Events {
	var ev Events
	in := f.latch.Consume()
	f.combat.Tick(dt)

	if f.respawned {
		ev.Respawned = true
		f.respawned = false
	}
	if f.kinematic || !f.stats.Active() {
		f.pendingHits = 0
		return ev
	}

	m := f.move
	m.Timers.Tick(dt)
	f.body.TickIgnores(dt)
	res := f.sensor.Sense(f.probe(), f.body.Position(), m.Vel, &m.Timers)

	ev.Movement = m.Step(in, movement.Env{
		Ground:       res,
		Probes:       f.body,
		AttackLocked: f.combat.Locked(),
	}, dt)

	f.resolveAttacks(in, &ev)

	mr := f.body.Move(m.Vel, dt)
	pos := m.ApplyCollision(f.body.Position(), mr.HitFloor, mr.HitCeiling, mr.HitWall)
	f.body.SetPosition(pos)

	if f.stats.Check() {
		ev.KO = true
	}
	if f.respawned {
		ev.Respawned = true
		f.respawned = false
	}
	return ev
}

func (f *Fighter) probe() ground.Probe {
	if f.noProbe {
		return nil
	}
	return f.body
}

func (f *Fighter) stance(in input.Intent) combat.Stance {
	return combat.Stance{
		Pos:      f.move.Pos,
		Facing:   f.move.Facing,
		Grounded: f.move.Grounded,
		Axis:     in.Axis,
	}
}

func (f *Fighter) resolveAttacks(in input.Intent, ev *Events) {
	st := f.stance(in)
	if in.LightPressed {
		if a, ok := f.combat.TryLight(st); ok {
			f.move.Impulse(a.Lunge)
			ev.Attack = &a
		}
	}
	if in.HeavyPressed && ev.Attack == nil {
		if a, ok := f.combat.TryHeavy(st); ok {
			f.move.Impulse(a.Lunge)
			ev.Attack = &a
		}
	}

	for ; f.pendingHits > 0; f.pendingHits-- {
		hits, err := f.combat.DealDamage(st, f.targets)
		if err != nil {
			f.diag.report("combat.origin", "hit skipped", "err", err)
			continue
		}
		ev.Hits = append(ev.Hits, hits...)
	}
}

// targets finds active fighters in range, this one excluded.
func (f *Fighter) targets(center gamemath.Vec, radius float64) []combat.Target {
	var out []combat.Target
	for _, b := range f.world.OverlapCircle(center, radius, f.body) {
		other, ok := b.Owner().(*Fighter)
		if !ok || other == f || !other.stats.Active() {
			continue
		}
		out = append(out, other)
	}
	return out
}

// TakeHit applies incoming damage and knockback.
func (f *Fighter) TakeHit(damage float64, knockback gamemath.Vec) {
	if !f.stats.Active() {
		return
	}
	f.stats.AddDamage(damage)
	f.move.Impulse(knockback)
}

// Snapshot is the read-only state for the cosmetic pass and observers.
func (f *Fighter) Snapshot() anim.Snapshot {
	m := f.move
	return anim.Snapshot{
		Grounded:    m.Grounded,
		Dashing:     m.Dashing,
		Sliding:     m.Sliding,
		WallSliding: m.WallSliding,
		VelX:        m.Vel.X,
		VelY:        m.Vel.Y,
		JumpCount:   m.JumpCount,
		JumpSeq:     m.JumpSeq,
	}
}

// Animate is the frame-rate cosmetic pass. It mirrors state to the sink
// and advances the built-in timeline if there is one.
func (f *Fighter) Animate(dt float64) {
	f.mirror.Apply(f.Snapshot())
	if f.timeline != nil {
		f.timeline.Advance(dt)
	}
}

// Remove takes the fighter out of the world. Any pickup carrying it is
// abandoned on the transport's next update.
func (f *Fighter) Remove() {
	f.stats.Destroy()
	f.world.RemoveBody(f.body)
}

func paramNames(ps []anim.Param) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
