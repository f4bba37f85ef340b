package match

import (
	"github.com/automoto/rippto-brawl/archetypes"
	"github.com/automoto/rippto-brawl/camera"
	"github.com/automoto/rippto-brawl/components"
	"github.com/automoto/rippto-brawl/fighter"
	"github.com/automoto/rippto-brawl/pickup"
	"github.com/automoto/rippto-brawl/transport"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// updateBots runs AI decisions and feeds them straight into this tick.
func (m *Match) updateBots(e *ecs.ECS) {
	components.Bot.Each(e.World, func(entry *donburi.Entry) {
		components.Bot.Get(entry).Update(m.dt)
		components.Fighter.Get(entry).PollInput()
	})
}

func (m *Match) updateFighters(e *ecs.ECS) {
	now := m.scores().Time
	components.Fighter.Each(e.World, func(entry *donburi.Entry) {
		fd := components.Fighter.Get(entry)
		ev := fd.Tick(m.dt)

		mv := ev.Movement
		if mv.Landed && mv.LandingSpeed >= m.cfg.Camera.LandShakeSpeed {
			ShakeEvent.Publish(e.World, Shake{Slot: fd.Slot, Kind: camera.LandShake})
		}
		if mv.DashStarted {
			ShakeEvent.Publish(e.World, Shake{Slot: fd.Slot, Kind: camera.DashShake})
		}
		if ev.Attack != nil {
			s := m.scores().Score(fd.Slot)
			if ev.Attack.Combo > s.BestCombo {
				s.BestCombo = ev.Attack.Combo
			}
		}
		for _, h := range ev.Hits {
			target, ok := h.Target.(*fighter.Fighter)
			if !ok {
				continue
			}
			HitEvent.Publish(e.World, Hit{
				Attacker:  fd.Slot,
				Target:    m.slotOf(target),
				Attack:    h.Attack,
				Damage:    h.Damage,
				Knockback: h.Knockback,
				Combo:     h.Combo,
			})
		}
		if ev.KO {
			credit := -1
			if fd.LastHitBy >= 0 && now-fd.LastHitAt <= m.cfg.Match.KOCreditTime {
				credit = fd.LastHitBy
			}
			fd.LastHitBy = -1
			KOEvent.Publish(e.World, KO{Slot: fd.Slot, CreditedTo: credit, Time: now})
		}
		if ev.Respawned {
			RespawnEvent.Publish(e.World, Respawn{Slot: fd.Slot, Pos: fd.Position()})
		}
	})
}

func (m *Match) updateTransport(e *ecs.ECS) {
	for _, d := range m.launched {
		de := archetypes.Drone.Spawn(e)
		components.Drone.SetValue(de, components.DroneData{Drone: d})
		m.drones[d] = de.Entity()
	}
	m.launched = m.launched[:0]
	m.dispatcher.Update(m.dt)
}

func (m *Match) updateSerums(e *ecs.ECS) {
	for _, p := range m.serums.Update(m.dt) {
		f, ok := p.By.(*fighter.Fighter)
		if !ok {
			continue
		}
		SerumEvent.Publish(e.World, SerumPicked{Slot: m.slotOf(f), Serum: p.Serum.ID, Pos: p.Serum.Pos})
	}
}

func (m *Match) updateClock(e *ecs.ECS) {
	md := m.scores()
	md.Ticks++
	md.Time += m.dt
}

func (m *Match) slotOf(f *fighter.Fighter) int {
	for i, other := range m.fighters {
		if other == f {
			return i
		}
	}
	return -1
}

func (m *Match) onShake(w donburi.World, ev Shake) {
	if ev.Slot != m.cam().Target {
		return
	}
	m.camera.Trigger(ev.Kind)
}

func (m *Match) onHit(w donburi.World, ev Hit) {
	md := m.scores()
	att := md.Score(ev.Attacker)
	att.DamageDealt += ev.Damage
	att.Hits++
	if ev.Target < 0 {
		return
	}
	md.Score(ev.Target).DamageTaken += ev.Damage

	fd := components.Fighter.Get(m.entry(ev.Target))
	fd.LastHitBy = ev.Attacker
	fd.LastHitAt = md.Time
	m.camera.Trigger(camera.HitShake)
}

func (m *Match) onKO(w donburi.World, ev KO) {
	md := m.scores()
	md.Score(ev.Slot).Falls++
	if ev.CreditedTo >= 0 && ev.CreditedTo != ev.Slot {
		md.Score(ev.CreditedTo).KOs++
	}
	m.log.Info("knockout", "slot", ev.Slot, "credit", ev.CreditedTo, "time", ev.Time)
}

func (m *Match) onSerum(w donburi.World, ev SerumPicked) {
	if ev.Slot >= 0 {
		m.scores().Score(ev.Slot).Serums++
	}
}

// droneLaunched runs while fighters are being iterated, so the entity is
// created by the transport system instead.
func (m *Match) droneLaunched(d *transport.Drone) {
	m.launched = append(m.launched, d)
}

func (m *Match) droneLanded(d *transport.Drone) {
	if ent, ok := m.drones[d]; ok {
		m.ecs.World.Remove(ent)
		delete(m.drones, d)
		return
	}
	for i, q := range m.launched {
		if q == d {
			m.launched = append(m.launched[:i], m.launched[i+1:]...)
			break
		}
	}
}

func (m *Match) serumSpawned(s *pickup.Serum) {
	e := archetypes.Serum.Spawn(m.ecs)
	components.Serum.SetValue(e, components.SerumData{Serum: s})
	m.pickups[s] = e.Entity()
}

func (m *Match) serumRemoved(s *pickup.Serum) {
	if ent, ok := m.pickups[s]; ok {
		m.ecs.World.Remove(ent)
		delete(m.pickups, s)
	}
}
