package engine

import "time"

// Clock is a source of wall time for the frame loop
type Clock interface {
	Now() time.Time
}

// TimeProvider provides the real system time with monotonic clock readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// FrameTimer turns successive clock readings into frame deltas
type FrameTimer struct {
	clock Clock
	last  time.Time
	max   time.Duration
}

// NewFrameTimer starts measuring from the clock's current reading
// Deltas longer than maxDelta are clamped; zero disables clamping
func NewFrameTimer(clock Clock, maxDelta time.Duration) *FrameTimer {
	return &FrameTimer{clock: clock, last: clock.Now(), max: maxDelta}
}

// Tick returns time since the previous Tick and restarts the measurement
func (f *FrameTimer) Tick() time.Duration {
	now := f.clock.Now()
	dt := now.Sub(f.last)
	f.last = now
	if dt < 0 {
		return 0
	}
	if f.max > 0 && dt > f.max {
		return f.max
	}
	return dt
}
