package anim

// Sink is an animation system. The simulation only pushes to it, apart
// from ActiveAttack.
type Sink interface {
	// Supports is asked once per Param when the sink is bound.
	Supports(p Param) bool
	SetBool(p Param, v bool)
	SetFloat(p Param, v float64)
	SetInt(p Param, v int)
	Trigger(p Param)
	// ActiveAttack is the attack-tagged clip currently playing, or NoAttack.
	ActiveAttack() Attack
}

// Binding is a Sink validated at bind time. Pushes to unsupported params
// are dropped. The zero Binding, or one bound to nil, drops everything.
type Binding struct {
	sink      Sink
	supported [numParams]bool
}

func Bind(s Sink) *Binding {
	b := &Binding{sink: s}
	if s == nil {
		return b
	}
	for _, p := range AllParams() {
		b.supported[p] = s.Supports(p)
	}
	return b
}

func (b *Binding) Bound() bool { return b != nil && b.sink != nil }

// Missing lists params the sink declined.
func (b *Binding) Missing() []Param {
	var out []Param
	if !b.Bound() {
		return AllParams()
	}
	for _, p := range AllParams() {
		if !b.supported[p] {
			out = append(out, p)
		}
	}
	return out
}

func (b *Binding) ok(p Param, k Kind) bool {
	return b.Bound() && p < numParams && b.supported[p] && p.Kind() == k
}

func (b *Binding) SetBool(p Param, v bool) {
	if b.ok(p, Bool) {
		b.sink.SetBool(p, v)
	}
}

func (b *Binding) SetFloat(p Param, v float64) {
	if b.ok(p, Float) {
		b.sink.SetFloat(p, v)
	}
}

func (b *Binding) SetInt(p Param, v int) {
	if b.ok(p, Int) {
		b.sink.SetInt(p, v)
	}
}

func (b *Binding) Trigger(p Param) {
	if b.ok(p, Trigger) {
		b.sink.Trigger(p)
	}
}

func (b *Binding) ActiveAttack() Attack {
	if !b.Bound() {
		return NoAttack
	}
	return b.sink.ActiveAttack()
}
