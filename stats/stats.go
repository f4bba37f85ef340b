// Package stats holds a fighter's damage accumulator and runs the
// knockout and respawn cycle.
package stats

import (
	"math/rand"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
)

type State uint8

const (
	Active State = iota
	KnockedOut
)

func (s State) String() string {
	if s == KnockedOut {
		return "ko"
	}
	return "active"
}

// Body is the physical side of the fighter that a knockout suspends.
type Body interface {
	Position() gamemath.Vec
	Halt()
	SetKinematic(on bool)
	Teleport(pos gamemath.Vec)
}

// Passenger is a knocked-out fighter as seen by a transport.
type Passenger interface {
	Position() gamemath.Vec
	Carry(pos gamemath.Vec)
	CompleteRespawn(anchor gamemath.Vec)
	Alive() bool
}

// Transport relocates a knocked-out fighter over several ticks and calls
// CompleteRespawn when it arrives. StartPickup returns false if no
// sequence could be started.
type Transport interface {
	StartPickup(p Passenger, anchor gamemath.Vec) bool
}

// Stats is a fighter's damage and knockout state.
type Stats struct {
	cfg       config.StatsConfig
	body      Body
	transport Transport
	anchors   []gamemath.Vec
	spawn     gamemath.Vec
	rng       *rand.Rand

	damage float64
	state  State
	kos    int
	alive  bool

	// OnKO and OnRespawn run on the matching transitions.
	OnKO      func(at gamemath.Vec)
	OnRespawn func(at gamemath.Vec)
}

// New returns active stats. The spawn point is used when there are no
// respawn anchors.
func New(cfg config.StatsConfig, body Body, spawn gamemath.Vec, anchors []gamemath.Vec, rng *rand.Rand) *Stats {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Stats{
		cfg:     cfg,
		body:    body,
		spawn:   spawn,
		anchors: anchors,
		rng:     rng,
		alive:   true,
	}
}

func (s *Stats) SetTransport(t Transport)         { s.transport = t }
func (s *Stats) SetConfig(cfg config.StatsConfig) { s.cfg = cfg }

func (s *Stats) Damage() float64 { return s.damage }
func (s *Stats) State() State    { return s.state }
func (s *Stats) Active() bool    { return s.state == Active }
func (s *Stats) KOs() int        { return s.kos }

// AddDamage raises the accumulator. Negative amounts are ignored.
func (s *Stats) AddDamage(amount float64) {
	if amount > 0 && s.state == Active {
		s.damage += amount
	}
}

// OutOfBounds reports whether pos is below the fall limit or outside the
// horizontal bounds.
func (s *Stats) OutOfBounds(pos gamemath.Vec) bool {
	c := s.cfg
	return pos.Y < c.MaxFallY || pos.X < c.MinX || pos.X > c.MaxX
}

// Check knocks the fighter out if it has left the stage. It reports
// whether a knockout happened.
func (s *Stats) Check() bool {
	if s.state != Active || !s.alive {
		return false
	}
	if !s.OutOfBounds(s.body.Position()) {
		return false
	}
	s.KO()
	return true
}

// KO suspends the fighter and hands it to the transport.
func (s *Stats) KO() {
	if s.state == KnockedOut {
		return
	}
	at := s.body.Position()
	s.state = KnockedOut
	s.kos++
	s.body.Halt()
	s.body.SetKinematic(true)
	if s.OnKO != nil {
		s.OnKO(at)
	}

	anchor := s.pickAnchor()
	if s.transport != nil && len(s.anchors) > 0 && s.transport.StartPickup(s, anchor) {
		return
	}
	s.CompleteRespawn(anchor)
}

func (s *Stats) pickAnchor() gamemath.Vec {
	if len(s.anchors) == 0 {
		return s.spawn
	}
	return s.anchors[s.rng.Intn(len(s.anchors))]
}

// CompleteRespawn places the fighter at anchor with no damage and resumes
// physics.
func (s *Stats) CompleteRespawn(anchor gamemath.Vec) {
	if s.state != KnockedOut {
		return
	}
	s.damage = 0
	s.body.Teleport(anchor)
	s.body.Halt()
	s.body.SetKinematic(false)
	s.state = Active
	if s.OnRespawn != nil {
		s.OnRespawn(anchor)
	}
}

func (s *Stats) Position() gamemath.Vec { return s.body.Position() }

// Carry moves a knocked-out fighter along with its transport.
func (s *Stats) Carry(pos gamemath.Vec) {
	if s.state == KnockedOut {
		s.body.Teleport(pos)
	}
}

func (s *Stats) Alive() bool { return s.alive }

// Destroy marks the fighter removed. A transport carrying it abandons
// the sequence.
func (s *Stats) Destroy() { s.alive = false }
