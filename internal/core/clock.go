package core

import (
	"sort"
	"time"
)

// StepClock is a manual clock. Callbacks registered with Every run only
// inside Advance, on the caller's goroutine, in due-time order.
type StepClock struct {
	now    time.Duration
	nextID int
	timers map[int]*stepTimer
}

type stepTimer struct {
	id       int
	interval time.Duration
	due      time.Duration
	fn       func()
}

// NewStepClock returns a clock at time zero.
func NewStepClock() *StepClock {
	return &StepClock{timers: make(map[int]*stepTimer)}
}

// Every calls fn once per interval of advanced time until cancel is called.
// Panics on a non-positive interval.
func (c *StepClock) Every(interval time.Duration, fn func()) (cancel func()) {
	if interval <= 0 {
		panic("core: non-positive clock interval")
	}
	id := c.nextID
	c.nextID++
	c.timers[id] = &stepTimer{id: id, interval: interval, due: c.now + interval, fn: fn}
	return func() { delete(c.timers, id) }
}

// Advance moves the clock forward by d and fires every callback that falls
// due. Callbacks may cancel or register timers.
func (c *StepClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.earliest(target)
		if t == nil {
			break
		}
		c.now = t.due
		t.due += t.interval
		t.fn()
	}
	c.now = target
}

func (c *StepClock) earliest(limit time.Duration) *stepTimer {
	due := make([]*stepTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

// Now returns the total time advanced.
func (c *StepClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of active timers.
func (c *StepClock) Pending() int {
	return len(c.timers)
}
