package archetypes

import (
	"github.com/automoto/rippto-brawl/components"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// LayerDefault is the only layer; the simulation has no draw order.
const LayerDefault ecs.LayerID = 0

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Fighter,
	)
	Bot = newArchetype(
		tags.Fighter,
		tags.Bot,
		components.Fighter,
		components.Bot,
	)
	Drone = newArchetype(
		tags.Drone,
		components.Drone,
	)
	Serum = newArchetype(
		tags.Serum,
		components.Serum,
	)
	Camera = newArchetype(
		tags.Camera,
		components.Camera,
	)
	Stage = newArchetype(
		components.Stage,
	)
	Match = newArchetype(
		components.Match,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		LayerDefault,
		append(a.components, cs...)...,
	))
	return e
}
