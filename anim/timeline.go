package anim

import "github.com/automoto/rippto-brawl/config"

// Timeline is a minimal sink that plays fixed-length attack clips and
// fires a hit callback partway through each. Headless runs use it in
// place of a real animation system.
type Timeline struct {
	clips map[Attack]config.ClipConfig

	bools    [numParams]bool
	floats   [numParams]float64
	ints     [numParams]int
	triggers [numParams]int

	active  Attack
	elapsed float64
	hitDone bool

	// OnHit runs at the hit instant of every clip.
	OnHit func(Attack)
}

func NewTimeline(cfg config.AnimationConfig) *Timeline {
	return &Timeline{
		clips: map[Attack]config.ClipConfig{
			Light:             cfg.Light,
			SideKickAttack:    cfg.SideKick,
			AirLightAttack:    cfg.AirLight,
			Heavy:             cfg.Heavy,
			FlyingChainAttack: cfg.FlyingChain,
			AirHeavyAttack:    cfg.AirHeavy,
		},
	}
}

func (t *Timeline) Supports(Param) bool { return true }

func (t *Timeline) SetBool(p Param, v bool)     { t.bools[p] = v }
func (t *Timeline) SetFloat(p Param, v float64) { t.floats[p] = v }
func (t *Timeline) SetInt(p Param, v int)       { t.ints[p] = v }

func (t *Timeline) Trigger(p Param) {
	t.triggers[p]++
	if a := AttackFor(p); a != NoAttack {
		t.active = a
		t.elapsed = 0
		t.hitDone = false
	}
}

func (t *Timeline) ActiveAttack() Attack { return t.active }

// Advance moves the playing clip forward by dt.
func (t *Timeline) Advance(dt float64) {
	if t.active == NoAttack {
		return
	}
	clip := t.clips[t.active]
	t.elapsed += dt
	if !t.hitDone && t.elapsed >= clip.HitAt {
		t.hitDone = true
		if t.OnHit != nil {
			t.OnHit(t.active)
		}
	}
	if t.elapsed >= clip.Duration {
		t.active = NoAttack
	}
}

func (t *Timeline) Bool(p Param) bool     { return t.bools[p] }
func (t *Timeline) Float(p Param) float64 { return t.floats[p] }
func (t *Timeline) Int(p Param) int       { return t.ints[p] }
func (t *Timeline) Triggered(p Param) int { return t.triggers[p] }
