package fighter

import "log/slog"

// diagnostics logs each degraded-feature warning once per fighter.
type diagnostics struct {
	log  *slog.Logger
	seen map[string]bool
}

func newDiagnostics(l *slog.Logger, name string) *diagnostics {
	if l == nil {
		l = slog.Default()
	}
	return &diagnostics{
		log:  l.With("fighter", name),
		seen: map[string]bool{},
	}
}

func (d *diagnostics) report(key, msg string, args ...any) {
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.log.Warn(msg, args...)
}

// Reported lists the diagnostics raised so far.
func (f *Fighter) Reported() []string {
	out := make([]string, 0, len(f.diag.seen))
	for k := range f.diag.seen {
		out = append(out, k)
	}
	return out
}
