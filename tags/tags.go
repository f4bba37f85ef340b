package tags

import "github.com/yohamta/donburi"

var (
	Fighter = donburi.NewTag().SetName("Fighter")
	Bot     = donburi.NewTag().SetName("Bot")
	Drone   = donburi.NewTag().SetName("Drone")
	Serum   = donburi.NewTag().SetName("Serum")
	Camera  = donburi.NewTag().SetName("Camera")
)

// Resolv tags for the collision space
const (
	ResolvSolid    = "solid"
	ResolvPlatform = "platform"
	ResolvWall     = "wall"
	ResolvRamp     = "ramp"
	ResolvFighter  = "fighter"
	ResolvSerum    = "serum"
	ResolvProbe    = "probe"

	// Slope type tags
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)
