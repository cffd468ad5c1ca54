package clock

import (
	"sync"
	"time"
)

// Clock abstracts the wall clock so scan timings and build id timestamps are
// reproducible under test.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since reports the time elapsed on clk since start.
func Since(clk Clock, start time.Time) time.Duration {
	return clk.Now().Sub(start)
}

// StepClock is a fake clock that returns a fixed instant and moves forward
// by Step after every call to Now. A zero Step makes it a frozen clock.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStepClock returns a StepClock starting at t and advancing by step.
func NewStepClock(t time.Time, step time.Duration) *StepClock {
	return &StepClock{current: t, step: step}
}

// Now returns the current fake time, then advances it by the step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the fake time forward by d.
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}
