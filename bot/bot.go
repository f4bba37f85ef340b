// Package bot drives fighters from tengo scripts.
//
// A script is run at each decision point with these globals set:
//
//	self_x, self_y, self_damage
//	target_x, target_y, target_damage, has_target
//	roll           uniform 0..1, drawn from the match RNG
//	attack_range, dash_chance
//
// and is expected to assign axis (float) and any of jump, dash, light and
// heavy (bool). Undefined outputs read as zero.
package bot

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/input"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var builtin embed.FS

// ErrNoSelf is returned when a bot is created without a fighter to drive.
var ErrNoSelf = errors.New("bot: no fighter")

var inputs = []string{
	"self_x", "self_y", "self_damage",
	"target_x", "target_y", "target_damage",
	"roll", "attack_range", "dash_chance",
}

// Agent is what a bot can observe about a fighter.
type Agent interface {
	Position() gamemath.Vec
	Damage() float64
	Active() bool
}

// Program is a compiled script. Each bot runs its own clone.
type Program struct {
	name     string
	compiled *tengo.Compiled
}

// Compile builds a program from source.
func Compile(name string, src []byte) (*Program, error) {
	script := tengo.NewScript(src)
	for _, in := range inputs {
		if err := script.Add(in, 0.0); err != nil {
			return nil, fmt.Errorf("bot: %s: %w", name, err)
		}
	}
	if err := script.Add("has_target", false); err != nil {
		return nil, fmt.Errorf("bot: %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("bot: compile %s: %w", name, err)
	}
	return &Program{name: name, compiled: compiled}, nil
}

// Load compiles a script file from fsys.
func Load(fsys fs.FS, path string) (*Program, error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("bot: read %s: %w", path, err)
	}
	return Compile(path, src)
}

// Simple is the built-in chase-and-attack program.
func Simple() (*Program, error) {
	return Load(builtin, "scripts/simple.tengo")
}

func (p *Program) Name() string { return p.name }

// Bot is an input.Source that re-decides on a random interval.
type Bot struct {
	cfg       config.BotConfig
	compiled  *tengo.Compiled
	self      Agent
	opponents func() []Agent
	rng       *rand.Rand
	log       *slog.Logger

	timer   float64
	held    input.Intent
	pending input.Intent
	failed  bool
}

// New creates a bot driving self. opponents is called at each decision.
func (p *Program) New(cfg config.BotConfig, self Agent, opponents func() []Agent, rng *rand.Rand, logger *slog.Logger) (*Bot, error) {
	if self == nil {
		return nil, ErrNoSelf
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		cfg:       cfg,
		compiled:  p.compiled.Clone(),
		self:      self,
		opponents: opponents,
		rng:       rng,
		log:       logger.With("bot", p.name),
	}
	b.timer = b.interval()
	return b, nil
}

func (b *Bot) SetConfig(cfg config.BotConfig) { b.cfg = cfg }

// Update advances the decision timer and runs the script when it fires.
func (b *Bot) Update(dt float64) {
	if !b.self.Active() {
		b.held = input.Intent{}
		return
	}
	b.timer -= dt
	if b.timer > 0 {
		return
	}
	b.timer = b.interval()
	if err := b.Decide(); err != nil && !b.failed {
		b.failed = true
		b.log.Warn("script failed, bot idles", "err", err)
	}
}

// Decide runs the script once against the current observation.
func (b *Bot) Decide() error {
	self := b.self.Position()
	target, ok := b.nearest(self)

	c := b.compiled
	set := map[string]interface{}{
		"self_x":        self.X,
		"self_y":        self.Y,
		"self_damage":   b.self.Damage(),
		"has_target":    ok,
		"roll":          b.rng.Float64(),
		"attack_range":  b.cfg.AttackRange,
		"dash_chance":   b.cfg.DashChance,
		"target_x":      0.0,
		"target_y":      0.0,
		"target_damage": 0.0,
	}
	if ok {
		pos := target.Position()
		set["target_x"] = pos.X
		set["target_y"] = pos.Y
		set["target_damage"] = target.Damage()
	}
	for k, v := range set {
		if err := c.Set(k, v); err != nil {
			return fmt.Errorf("bot: set %s: %w", k, err)
		}
	}
	if err := c.Run(); err != nil {
		b.held = input.Intent{}
		return fmt.Errorf("bot: run: %w", err)
	}

	b.held = input.Intent{Axis: gamemath.Clamp(b.number("axis"), -1, 1)}
	b.pending.JumpPressed = b.pending.JumpPressed || b.flag("jump")
	b.pending.DashPressed = b.pending.DashPressed || b.flag("dash")
	b.pending.LightPressed = b.pending.LightPressed || b.flag("light")
	b.pending.HeavyPressed = b.pending.HeavyPressed || b.flag("heavy")
	return nil
}

// Poll returns the held axis plus any decision edges not yet delivered.
func (b *Bot) Poll() input.Intent {
	out := b.held
	out.JumpPressed = b.pending.JumpPressed
	out.DashPressed = b.pending.DashPressed
	out.LightPressed = b.pending.LightPressed
	out.HeavyPressed = b.pending.HeavyPressed
	b.pending = input.Intent{}
	return out
}

func (b *Bot) nearest(from gamemath.Vec) (Agent, bool) {
	if b.opponents == nil {
		return nil, false
	}
	var best Agent
	bestDist := 0.0
	for _, o := range b.opponents() {
		if o == b.self || !o.Active() {
			continue
		}
		d := from.Dist(o.Position())
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

func (b *Bot) interval() float64 {
	lo, hi := b.cfg.DecisionMin, b.cfg.DecisionMax
	if hi <= lo {
		return lo
	}
	return lo + b.rng.Float64()*(hi-lo)
}

func (b *Bot) number(name string) float64 {
	if !b.compiled.IsDefined(name) {
		return 0
	}
	return b.compiled.Get(name).Float()
}

func (b *Bot) flag(name string) bool {
	if !b.compiled.IsDefined(name) {
		return false
	}
	return b.compiled.Get(name).Bool()
}
