package scheduler

import "time"

// Timer is a pending callback that can be stopped.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer already fired or was stopped.
	Stop() bool
}

// Clock is the time source of a view.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// LoopClock is a real-time Clock whose callbacks run on a Loop.
type LoopClock struct {
	loop *Loop
}

// NewLoopClock creates a Clock delivering its callbacks through loop.
func NewLoopClock(loop *Loop) *LoopClock {
	return &LoopClock{loop: loop}
}

// Now returns the wall clock time.
func (c *LoopClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on the loop after d.
func (c *LoopClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		c.loop.Post(f)
	})
}
