// Package anim defines the typed signals the simulation pushes to an
// animation system, and the single query it reads back.
package anim

// Param is one animation signal.
type Param uint8

const (
	Grounded Param = iota
	Running
	Falling
	Dashing
	Sliding
	WallSliding
	VerticalVelocity
	HorizontalSpeed
	JumpNumber
	Jump

	LightAttack
	SideKick
	AirLight
	HeavyAttack
	FlyingChain
	AirHeavy

	numParams
)

// Kind is the value type a Param carries.
type Kind uint8

const (
	Bool Kind = iota
	Float
	Int
	Trigger
)

var params = [numParams]struct {
	name string
	kind Kind
}{
	Grounded:         {"grounded", Bool},
	Running:          {"running", Bool},
	Falling:          {"falling", Bool},
	Dashing:          {"dashing", Bool},
	Sliding:          {"sliding", Bool},
	WallSliding:      {"wall_sliding", Bool},
	VerticalVelocity: {"vertical_velocity", Float},
	HorizontalSpeed:  {"horizontal_speed", Float},
	JumpNumber:       {"jump_number", Int},
	Jump:             {"jump", Trigger},
	LightAttack:      {"light_attack", Trigger},
	SideKick:         {"side_kick", Trigger},
	AirLight:         {"air_light", Trigger},
	HeavyAttack:      {"heavy_attack", Trigger},
	FlyingChain:      {"flying_chain", Trigger},
	AirHeavy:         {"air_heavy", Trigger},
}

func (p Param) String() string {
	if p >= numParams {
		return "unknown"
	}
	return params[p].name
}

func (p Param) Kind() Kind {
	if p >= numParams {
		return Trigger
	}
	return params[p].kind
}

// AllParams lists every signal in declaration order.
func AllParams() []Param {
	out := make([]Param, numParams)
	for i := range out {
		out[i] = Param(i)
	}
	return out
}

// Attack names an attack-tagged clip.
type Attack uint8

const (
	NoAttack Attack = iota
	Light
	SideKickAttack
	AirLightAttack
	Heavy
	FlyingChainAttack
	AirHeavyAttack
)

var attackNames = [...]string{"none", "light", "side_kick", "air_light", "heavy", "flying_chain", "air_heavy"}

func (a Attack) String() string {
	if int(a) >= len(attackNames) {
		return "unknown"
	}
	return attackNames[a]
}

// IsHeavy reports whether the clip deals heavy damage.
func (a Attack) IsHeavy() bool {
	return a == Heavy || a == FlyingChainAttack || a == AirHeavyAttack
}

// Trigger is the signal that starts the clip.
func (a Attack) Trigger() Param {
	switch a {
	case Light:
		return LightAttack
	case SideKickAttack:
		return SideKick
	case AirLightAttack:
		return AirLight
	case Heavy:
		return HeavyAttack
	case FlyingChainAttack:
		return FlyingChain
	case AirHeavyAttack:
		return AirHeavy
	}
	return numParams
}

// AttackFor maps an attack trigger back to its clip.
func AttackFor(p Param) Attack {
	switch p {
	case LightAttack:
		return Light
	case SideKick:
		return SideKickAttack
	case AirLight:
		return AirLightAttack
	case HeavyAttack:
		return Heavy
	case FlyingChain:
		return FlyingChainAttack
	case AirHeavy:
		return AirHeavyAttack
	}
	return NoAttack
}
