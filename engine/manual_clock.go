package engine

import (
	"sync"
	"time"
)

// ManualClock is a Clock that only moves when told to
// Tests and headless replays drive FrameTimer with it
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d; negative durations are ignored
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Frames advances by n frames of length frame and returns the new reading
func (c *ManualClock) Frames(n int, frame time.Duration) time.Time {
	c.Advance(time.Duration(n) * frame)
	return c.Now()
}
