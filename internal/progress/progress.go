// Package progress emits periodic structured log lines for the pipeline's
// long-running stages (erosion droplets, river/flood simulation):
// informational only, logged at Debug every ~10,000 iterations.
package progress

import "log/slog"

// DefaultCadence is the iteration interval between erosion and waters
// progress lines.
const DefaultCadence = 10_000

// Logger ticks a named counter and logs its advancement at Debug every
// cadence iterations. A nil *slog.Logger makes every method a no-op, so
// callers can pass a disabled logger without branching.
type Logger struct {
	log     *slog.Logger
	label   string
	total   int
	cadence int
}

// New returns a Logger that reports progress toward total under label,
// ticking every cadence iterations. cadence <= 0 falls back to
// DefaultCadence.
func New(log *slog.Logger, label string, total, cadence int) *Logger {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &Logger{log: log, label: label, total: total, cadence: cadence}
}

// Tick logs progress if i is a multiple of the configured cadence (i == 0
// always logs the starting line).
func (l *Logger) Tick(i int) {
	if l == nil || l.log == nil || l.cadence <= 0 {
		return
	}
	if i%l.cadence != 0 {
		return
	}
	l.log.Debug(l.label, "iteration", i, "total", l.total, "percent", percent(i, l.total))
}

// Done logs a final 100% line.
func (l *Logger) Done() {
	if l == nil || l.log == nil {
		return
	}
	l.log.Debug(l.label, "iteration", l.total, "total", l.total, "percent", percent(l.total, l.total))
}

func percent(i, total int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(i) / float64(total) * 100
}
