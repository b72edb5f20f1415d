package core

import (
	"context"
	"time"
)

// Duration wraps time.Duration so domain code can express timeouts
// without importing time directly.
type Duration time.Duration

const (
	Nanosecond  Duration = Duration(time.Nanosecond)
	Microsecond          = Duration(time.Microsecond)
	Millisecond          = Duration(time.Millisecond)
	Second               = Duration(time.Second)
	Minute               = Duration(time.Minute)
	Hour                 = Duration(time.Hour)
)

// Std converts back to the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider abstracts the clock. The real adapter delegates to the
// time package; tests substitute a fixed or movable clock so daily
// reward resets, crash multipliers and stale-hand sweeps are
// deterministic.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
	Until(t time.Time) Duration
	Sleep(d Duration)
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
	ParseDuration(s string) (Duration, error)
}
