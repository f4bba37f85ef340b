package transport

import (
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/stats"
)

// Dispatcher runs every active pickup. It satisfies stats.Transport.
type Dispatcher struct {
	cfg    config.TransportConfig
	drones []*Drone

	// OnLaunch and OnLand run when a drone is created and when it is
	// removed, finished or cancelled.
	OnLaunch func(*Drone)
	OnLand   func(*Drone)
}

var _ stats.Transport = (*Dispatcher)(nil)

func NewDispatcher(cfg config.TransportConfig) *Dispatcher {
	return &Dispatcher{cfg: cfg}
}

func (t *Dispatcher) SetConfig(cfg config.TransportConfig) { t.cfg = cfg }

func (t *Dispatcher) Drones() []*Drone { return t.drones }

// StartPickup launches a drone for p unless one is already carrying it.
func (t *Dispatcher) StartPickup(p stats.Passenger, anchor gamemath.Vec) bool {
	if p == nil || !p.Alive() {
		return false
	}
	for _, d := range t.drones {
		if d.passenger == p && !d.Finished() {
			return false
		}
	}
	d := newDrone(t.cfg, p, anchor)
	t.drones = append(t.drones, d)
	if t.OnLaunch != nil {
		t.OnLaunch(d)
	}
	return true
}

// Update advances every drone and drops finished ones. A passenger whose
// drone was destroyed under it respawns at the anchor straight away.
func (t *Dispatcher) Update(dt float64) {
	kept := t.drones[:0]
	for _, d := range t.drones {
		d.Update(dt)
		if d.Finished() {
			if d.phase == Cancelled && d.passenger.Alive() {
				d.passenger.CompleteRespawn(d.anchor)
			}
			if t.OnLand != nil {
				t.OnLand(d)
			}
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(t.drones); i++ {
		t.drones[i] = nil
	}
	t.drones = kept
}

// Cancel abandons any pickup carrying p.
func (t *Dispatcher) Cancel(p stats.Passenger) {
	for _, d := range t.drones {
		if d.passenger == p {
			d.Destroy()
		}
	}
}
