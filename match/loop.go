package match

import (
	"context"
	"time"
)

// Run advances the match in real time until ctx is done. Each ticker beat
// is treated as one frame.
func (m *Match) Run(ctx context.Context) error {
	period := time.Duration(m.dt * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	m.log.Info("match loop started", "tps", int(1/m.dt+0.5), "fighters", len(m.fighters))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			m.log.Info("match loop stopped", "ticks", m.Ticks())
			return ctx.Err()
		case now := <-ticker.C:
			m.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}
