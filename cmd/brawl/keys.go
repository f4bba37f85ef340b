package main

import (
	"github.com/automoto/rippto-brawl/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// Action is a logical fighter control.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionDash
	ActionLight
	ActionHeavy
	ActionDown
	ActionCount
)

// Bindings maps each action to the keys that trigger it.
type Bindings [ActionCount][]ebiten.Key

// Player one uses WASD, player two the arrows.
var (
	PlayerOneKeys = Bindings{
		ActionLeft:  {ebiten.KeyA},
		ActionRight: {ebiten.KeyD},
		ActionJump:  {ebiten.KeyW, ebiten.KeySpace},
		ActionDash:  {ebiten.KeyShiftLeft},
		ActionLight: {ebiten.KeyJ},
		ActionHeavy: {ebiten.KeyK},
		ActionDown:  {ebiten.KeyS},
	}
	PlayerTwoKeys = Bindings{
		ActionLeft:  {ebiten.KeyLeft},
		ActionRight: {ebiten.KeyRight},
		ActionJump:  {ebiten.KeyUp},
		ActionDash:  {ebiten.KeyShiftRight},
		ActionLight: {ebiten.KeyNumpad1, ebiten.KeyComma},
		ActionHeavy: {ebiten.KeyNumpad2, ebiten.KeyPeriod},
		ActionDown:  {ebiten.KeyDown},
	}
)

func (b Bindings) pressed(a Action) bool {
	for _, k := range b[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// keyboard is an input.Source reading held keys once per frame.
type keyboard struct {
	keys    Bindings
	tracker input.Tracker
}

func (k *keyboard) Poll() input.Intent {
	return k.tracker.Update(input.Buttons{
		Left:  k.keys.pressed(ActionLeft),
		Right: k.keys.pressed(ActionRight),
		Jump:  k.keys.pressed(ActionJump),
		Dash:  k.keys.pressed(ActionDash),
		Light: k.keys.pressed(ActionLight),
		Heavy: k.keys.pressed(ActionHeavy),
		Down:  k.keys.pressed(ActionDown),
	})
}
