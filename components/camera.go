package components

import (
	"github.com/automoto/rippto-brawl/camera"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	// Position is the view center including shake, copied out for
	// renderers after each camera update.
	Position math.Vec2
	Zoom     float64
	// Target is the fighter slot being followed.
	Target int
	*camera.Camera
}

var Camera = donburi.NewComponentType[CameraData]()
