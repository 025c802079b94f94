package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/ringfall/constants"
)

// TimeProvider supplies wall-clock time to the host loop
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads time.Now, which carries a monotonic clock reading
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualClock is a TimeProvider moved only by Set and Advance, for tests and headless runs
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FrameClock tracks host-loop timing for the overlay: elapsed wall time since
// start and the frame rate averaged over the last constants.FPSWindow frames
// Purely informational, never fed back into the simulation
type FrameClock struct {
	source TimeProvider
	start  time.Time

	// Ring of frame instants; count saturates at len(frames)
	frames [constants.FPSWindow + 1]time.Time
	head   int
	count  int
}

func NewFrameClock(source TimeProvider) *FrameClock {
	return &FrameClock{source: source, start: source.Now()}
}

// Frame records a frame boundary at the current time
func (c *FrameClock) Frame() {
	c.frames[c.head] = c.source.Now()
	c.head = (c.head + 1) % len(c.frames)
	if c.count < len(c.frames) {
		c.count++
	}
}

// FPS returns frames per second over the recorded window, 0 until two frames exist
func (c *FrameClock) FPS() float64 {
	if c.count < 2 {
		return 0
	}
	newest := c.frames[(c.head-1+len(c.frames))%len(c.frames)]
	oldest := c.frames[(c.head-c.count+len(c.frames))%len(c.frames)]
	span := newest.Sub(oldest)
	if span <= 0 {
		return 0
	}
	return float64(c.count-1) / span.Seconds()
}

// Elapsed returns wall time since the clock was created or last restarted
func (c *FrameClock) Elapsed() time.Duration {
	return c.source.Now().Sub(c.start)
}

// Restart zeroes elapsed time and drops the frame history
func (c *FrameClock) Restart() {
	c.start = c.source.Now()
	c.head = 0
	c.count = 0
}
