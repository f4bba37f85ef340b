package gamemath

import "math"

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speedX, friction float64) float64 {
	if speedX > friction {
		return speedX - friction
	}
	if speedX < -friction {
		return speedX + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// JumpForce is the launch speed that reaches height under gravity g.
func JumpForce(gravity, height float64) float64 {
	if gravity < 0 {
		gravity = -gravity
	}
	return math.Sqrt(2 * gravity * height)
}
