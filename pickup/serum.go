// Package pickup spawns serum pickups around the stage and reports who
// collects them.
package pickup

import (
	"math/rand"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/physics"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/solarlune/resolv"
)

// Serum is one pickup on the stage.
type Serum struct {
	ID  int
	Pos gamemath.Vec
	Age float64
	obj *resolv.Object
}

// Pick is a serum collected by a fighter, identified by its body owner.
type Pick struct {
	Serum *Serum
	By    interface{}
}

// Spawner keeps serums on the stage. The first wave is larger; once every
// serum is gone a smaller wave follows after a delay.
type Spawner struct {
	cfg    config.PickupConfig
	world  *physics.World
	points []gamemath.Vec
	rng    *rand.Rand

	serums  []*Serum
	nextID  int
	refill  float64
	waiting bool

	// CanCollect filters body owners; nil lets anything collect.
	CanCollect func(owner interface{}) bool
	OnSpawn    func(*Serum)
	OnRemove   func(*Serum)
}

func NewSpawner(cfg config.PickupConfig, world *physics.World, points []gamemath.Vec, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{cfg: cfg, world: world, points: points, rng: rng}
}

func (s *Spawner) SetConfig(cfg config.PickupConfig) { s.cfg = cfg }

func (s *Spawner) Serums() []*Serum { return s.serums }

// Start places the first wave.
func (s *Spawner) Start() { s.spawn(s.cfg.InitialCount) }

func (s *Spawner) spawn(n int) {
	if len(s.points) == 0 {
		return
	}
	// distinct points while they last, then around again
	order := s.rng.Perm(len(s.points))
	for i := 0; i < n; i++ {
		p := s.points[order[i%len(order)]]
		s.nextID++
		sr := &Serum{ID: s.nextID, Pos: p}
		sr.obj = s.world.AddSensor(s.rect(p), sr, tags.ResolvSerum)
		s.serums = append(s.serums, sr)
		if s.OnSpawn != nil {
			s.OnSpawn(sr)
		}
	}
}

func (s *Spawner) rect(center gamemath.Vec) gamemath.Rect {
	return gamemath.RectAround(center, s.cfg.Size, s.cfg.Size)
}

// Update ages serums, removes expired ones, collects touched ones and runs
// the refill timer.
func (s *Spawner) Update(dt float64) []Pick {
	var picks []Pick
	kept := s.serums[:0]
	for _, sr := range s.serums {
		sr.Age += dt
		if by, ok := s.collector(sr); ok {
			picks = append(picks, Pick{Serum: sr, By: by})
			s.remove(sr)
			continue
		}
		if sr.Age >= s.cfg.Lifetime {
			s.remove(sr)
			continue
		}
		kept = append(kept, sr)
	}
	for i := len(kept); i < len(s.serums); i++ {
		s.serums[i] = nil
	}
	s.serums = kept

	switch {
	case len(s.serums) == 0 && !s.waiting:
		s.waiting = true
		s.refill = s.cfg.RespawnDelay
	case s.waiting:
		s.refill -= dt
		if s.refill <= 0 {
			s.waiting = false
			s.spawn(s.cfg.RefillCount)
		}
	}
	return picks
}

func (s *Spawner) collector(sr *Serum) (interface{}, bool) {
	for _, obj := range s.world.OverlapRect(s.rect(sr.Pos), tags.ResolvFighter) {
		b, ok := obj.Data.(*physics.Body)
		if !ok {
			continue
		}
		if s.CanCollect == nil || s.CanCollect(b.Owner()) {
			return b.Owner(), true
		}
	}
	return nil, false
}

func (s *Spawner) remove(sr *Serum) {
	s.world.Remove(sr.obj)
	if s.OnRemove != nil {
		s.OnRemove(sr)
	}
}
