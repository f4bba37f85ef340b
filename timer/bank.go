// Package timer holds the per-fighter countdown timers that drive the
// forgiveness windows and multi-tick movement states.
package timer

import "math"

// ID names one timer slot in a Bank.
type ID uint8

const (
	Coyote ID = iota
	JumpBuffer
	LandingGrace
	DashCooldown
	DashDuration
	Slide
	TapLeft
	TapRight
	DropThrough

	numTimers
)

var names = [numTimers]string{
	Coyote:       "coyote",
	JumpBuffer:   "jump_buffer",
	LandingGrace: "landing_grace",
	DashCooldown: "dash_cooldown",
	DashDuration: "dash_duration",
	Slide:        "slide",
	TapLeft:      "tap_left",
	TapRight:     "tap_right",
	DropThrough:  "drop_through",
}

func (id ID) String() string {
	if id >= numTimers {
		return "unknown"
	}
	return names[id]
}

// Bank is a fixed set of countdown timers. The zero value has every timer
// expired.
type Bank struct {
	remaining [numTimers]float64
	expired   [numTimers]bool
}

// Start arms a timer. Negative durations are clamped to zero.
func (b *Bank) Start(id ID, seconds float64) {
	b.remaining[id] = math.Max(0, seconds)
	b.expired[id] = false
}

// Clear stops the given timers without reporting them as expired.
func (b *Bank) Clear(ids ...ID) {
	for _, id := range ids {
		b.remaining[id] = 0
		b.expired[id] = false
	}
}

func (b *Bank) Remaining(id ID) float64 { return b.remaining[id] }

// Active reports whether the timer still has time left.
func (b *Bank) Active(id ID) bool { return b.remaining[id] > 0 }

// JustExpired reports whether the timer ran out during the last Tick.
func (b *Bank) JustExpired(id ID) bool { return b.expired[id] }

// Tick decrements every running timer by dt. Timers never go below zero.
func (b *Bank) Tick(dt float64) {
	for i := range b.remaining {
		b.expired[i] = false
		if b.remaining[i] <= 0 {
			continue
		}
		b.remaining[i] -= dt
		if b.remaining[i] <= 0 {
			b.remaining[i] = 0
			b.expired[i] = true
		}
	}
}

// Reset expires every timer.
func (b *Bank) Reset() {
	*b = Bank{}
}
