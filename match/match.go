// Package match runs a set of fighters on one stage at a fixed tick rate
// and keeps score.
package match

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/automoto/rippto-brawl/anim"
	"github.com/automoto/rippto-brawl/archetypes"
	"github.com/automoto/rippto-brawl/bot"
	"github.com/automoto/rippto-brawl/camera"
	"github.com/automoto/rippto-brawl/components"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/fighter"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/physics"
	"github.com/automoto/rippto-brawl/pickup"
	"github.com/automoto/rippto-brawl/stage"
	"github.com/automoto/rippto-brawl/transport"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/features/math"
)

var (
	ErrNoStage   = errors.New("match: no stage")
	ErrNoProgram = errors.New("match: no bot program")
)

type Options struct {
	Logger *slog.Logger
	// Seed overrides the configured seed when non-zero.
	Seed int64
}

// Match owns the ECS world and everything living on the stage.
type Match struct {
	cfg config.Config
	ecs *ecs.ECS
	rng *rand.Rand
	log *slog.Logger
	dt  float64
	acc float64

	stage      *stage.Stage
	world      *physics.World
	serums     *pickup.Spawner
	dispatcher *transport.Dispatcher
	camera     *camera.Camera

	fighters []*fighter.Fighter
	entities []donburi.Entity
	drones   map[*transport.Drone]donburi.Entity
	launched []*transport.Drone
	pickups  map[*pickup.Serum]donburi.Entity
	clock    donburi.Entity
	view     donburi.Entity

	mu      sync.Mutex
	pending *config.Config
}

func New(cfg config.Config, st *stage.Stage, opts Options) (*Match, error) {
	if st == nil {
		return nil, ErrNoStage
	}
	seed := cfg.Match.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	rate := cfg.Match.TickRate
	if rate <= 0 {
		rate = 60
	}
	if cfg.Camera.BoundsEnabled && cfg.Camera.Bounds.W == 0 {
		cfg.Camera.Bounds = st.Bounds
	}

	m := &Match{
		cfg:     cfg,
		ecs:     ecs.NewECS(donburi.NewWorld()),
		rng:     rand.New(rand.NewSource(seed)),
		log:     opts.Logger.With("stage", st.Name),
		dt:      1 / float64(rate),
		stage:   st,
		world:   st.Build(1),
		drones:  make(map[*transport.Drone]donburi.Entity),
		pickups: make(map[*pickup.Serum]donburi.Entity),
	}

	m.dispatcher = transport.NewDispatcher(cfg.Transport)
	m.dispatcher.OnLaunch = m.droneLaunched
	m.dispatcher.OnLand = m.droneLanded

	m.serums = pickup.NewSpawner(cfg.Pickups, m.world, st.SerumPoints, m.rng)
	m.serums.CanCollect = func(owner interface{}) bool {
		f, ok := owner.(*fighter.Fighter)
		return ok && f.Active()
	}
	m.serums.OnSpawn = m.serumSpawned
	m.serums.OnRemove = m.serumRemoved

	se := archetypes.Stage.Spawn(m.ecs)
	components.Stage.SetValue(se, components.StageData{
		Stage:      st,
		World:      m.world,
		Serums:     m.serums,
		Dispatcher: m.dispatcher,
	})
	m.clock = archetypes.Match.Spawn(m.ecs).Entity()

	start := st.Spawn(0)
	m.camera = camera.New(cfg.Camera, start)
	ce := archetypes.Camera.Spawn(m.ecs)
	components.Camera.SetValue(ce, components.CameraData{
		Position: math.Vec2{X: start.X, Y: start.Y},
		Zoom:     m.camera.Zoom(),
		Camera:   m.camera,
	})
	m.view = ce.Entity()

	m.ecs.AddSystem(m.updateBots)
	m.ecs.AddSystem(m.updateFighters)
	m.ecs.AddSystem(m.updateTransport)
	m.ecs.AddSystem(m.updateSerums)
	m.ecs.AddSystem(m.updateClock)

	w := m.ecs.World
	ShakeEvent.Subscribe(w, m.onShake)
	HitEvent.Subscribe(w, m.onHit)
	KOEvent.Subscribe(w, m.onKO)
	SerumEvent.Subscribe(w, m.onSerum)

	m.serums.Start()
	return m, nil
}

// AddFighter puts a fighter on the next spawn point. A nil sink gets a
// Timeline with the configured clip timings.
func (m *Match) AddFighter(name string, src input.Source, sink anim.Sink) *fighter.Fighter {
	f, _ := m.add(archetypes.Fighter, name, src, sink)
	return f
}

// AddBot adds a fighter driven by prog.
func (m *Match) AddBot(name string, prog *bot.Program) (*fighter.Fighter, error) {
	if prog == nil {
		return nil, ErrNoProgram
	}
	f, entry := m.add(archetypes.Bot, name, nil, nil)
	b, err := prog.New(m.cfg.Bot, f, m.agents, m.rng, m.log)
	if err != nil {
		return nil, err
	}
	f.SetSource(b)
	components.Bot.SetValue(entry, components.BotData{Bot: b})
	return f, nil
}

type spawner interface {
	Spawn(*ecs.ECS, ...donburi.IComponentType) *donburi.Entry
}

func (m *Match) add(a spawner, name string, src input.Source, sink anim.Sink) (*fighter.Fighter, *donburi.Entry) {
	slot := len(m.fighters)
	if sink == nil {
		sink = anim.NewTimeline(m.cfg.Animation)
	}
	f := fighter.New(m.cfg, m.world, fighter.Options{
		Name:    name,
		Spawn:   m.stage.Spawn(slot),
		Anchors: m.stage.RespawnAnchors(),
		Sink:    sink,
		Source:  src,
		Rand:    m.rng,
		Logger:  m.log,
	})
	f.SetTransport(m.dispatcher)

	entry := a.Spawn(m.ecs)
	components.Fighter.SetValue(entry, components.FighterData{
		Slot:      slot,
		Fighter:   f,
		LastHitBy: -1,
	})
	m.fighters = append(m.fighters, f)
	m.entities = append(m.entities, entry.Entity())
	m.scores().Score(slot).Name = name
	return f, entry
}

func (m *Match) agents() []bot.Agent {
	out := make([]bot.Agent, 0, len(m.fighters))
	for _, f := range m.fighters {
		out = append(out, f)
	}
	return out
}

func (m *Match) ECS() *ecs.ECS                { return m.ecs }
func (m *Match) World() *physics.World        { return m.world }
func (m *Match) Stage() *stage.Stage          { return m.stage }
func (m *Match) Camera() *camera.Camera       { return m.camera }
func (m *Match) Fighters() []*fighter.Fighter { return m.fighters }
func (m *Match) Drones() []*transport.Drone   { return m.dispatcher.Drones() }
func (m *Match) Serums() []*pickup.Serum      { return m.serums.Serums() }
func (m *Match) TickDuration() float64        { return m.dt }
func (m *Match) Config() config.Config        { return m.cfg }
func (m *Match) Time() float64                { return m.scores().Time }
func (m *Match) Ticks() int                   { return m.scores().Ticks }

func (m *Match) scores() *components.MatchData {
	return components.Match.Get(m.ecs.World.Entry(m.clock))
}

func (m *Match) entry(slot int) *donburi.Entry { return m.ecs.World.Entry(m.entities[slot]) }

func (m *Match) cam() *components.CameraData {
	return components.Camera.Get(m.ecs.World.Entry(m.view))
}

// Scores returns a copy of the scoreboard.
func (m *Match) Scores() []components.Score {
	s := m.scores().Scores
	return append([]components.Score(nil), s...)
}

// Leader is the slot in the lead, -1 on a tie.
func (m *Match) Leader() int { return m.scores().Leader() }

// Follow points the camera at a slot.
func (m *Match) Follow(slot int) {
	if slot < 0 || slot >= len(m.fighters) {
		return
	}
	m.cam().Target = slot
	m.camera.Snap(m.fighters[slot].Position())
}

// QueueConfig schedules cfg to be applied before the next tick. It is
// safe to call from another goroutine.
func (m *Match) QueueConfig(cfg config.Config) {
	m.mu.Lock()
	m.pending = &cfg
	m.mu.Unlock()
}

func (m *Match) applyPending() {
	m.mu.Lock()
	cfg := m.pending
	m.pending = nil
	m.mu.Unlock()
	if cfg == nil {
		return
	}
	if cfg.Camera.BoundsEnabled && cfg.Camera.Bounds.W == 0 {
		cfg.Camera.Bounds = m.stage.Bounds
	}
	m.cfg = *cfg
	for _, f := range m.fighters {
		f.SetConfig(*cfg)
	}
	components.Bot.Each(m.ecs.World, func(e *donburi.Entry) {
		components.Bot.Get(e).SetConfig(cfg.Bot)
	})
	m.dispatcher.SetConfig(cfg.Transport)
	m.serums.SetConfig(cfg.Pickups)
	m.camera.SetConfig(cfg.Camera)
	m.log.Info("config applied")
}

// Step runs exactly one tick and delivers its events.
func (m *Match) Step() {
	m.applyPending()
	m.ecs.Update()
	events.ProcessAllEvents(m.ecs.World)
}

// Advance is called once per rendered frame. It polls input, runs as many
// fixed ticks as the elapsed time allows, then runs the cosmetic pass. A
// backlog beyond MaxFrameTicks is dropped. It returns the ticks run.
func (m *Match) Advance(frameDt float64) int {
	for _, f := range m.fighters {
		f.PollInput()
	}
	m.acc += frameDt
	limit := m.cfg.Match.MaxFrameTicks
	if limit <= 0 {
		limit = 1
	}
	ticks := 0
	for m.acc >= m.dt && ticks < limit {
		m.Step()
		m.acc -= m.dt
		ticks++
	}
	if m.acc >= m.dt {
		m.log.Debug("dropping tick backlog", "seconds", m.acc)
		m.acc = 0
	}
	m.Animate(frameDt)
	return ticks
}

// Animate mirrors fighter state to their sinks and moves the camera.
func (m *Match) Animate(dt float64) {
	for _, f := range m.fighters {
		f.Animate(dt)
	}
	if len(m.fighters) == 0 {
		return
	}
	cd := m.cam()
	f := m.fighters[cd.Target]
	mv := f.Movement()
	m.camera.Update(camera.Subject{
		Pos:         f.Position(),
		Vel:         f.Velocity(),
		Grounded:    mv.Grounded,
		Dashing:     mv.Dashing,
		FastFalling: mv.FastFalling,
	}, dt)
	v := m.camera.View()
	cd.Position = math.Vec2{X: v.X, Y: v.Y}
	cd.Zoom = m.camera.Zoom()
}

// Simulate runs headless for the given number of seconds of game time.
func (m *Match) Simulate(seconds float64) {
	n := int(seconds/m.dt + 0.5)
	for i := 0; i < n; i++ {
		m.Advance(m.dt)
	}
}

// Close removes every fighter and drone from the stage.
func (m *Match) Close() {
	for _, f := range m.fighters {
		f.Remove()
	}
	m.dispatcher.Update(0)
}
