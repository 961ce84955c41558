// Package frame schedules callbacks against display refreshes.
//
// A Clock queues callbacks with Request and runs them on the next Step,
// mirroring a browser's animation-frame queue: callbacks requested while a
// step is running wait for the following step. A Clock is not safe for
// concurrent use; it belongs to the goroutine that steps it.
package frame

import "time"

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Callback receives the timestamp of the step that runs it.
type Callback func(now time.Duration)

type entry struct {
	id Handle
	cb Callback
}

type Clock struct {
	last    Handle
	queue   []entry
	batch   []entry
	now     time.Duration
	stepped bool
}

func NewClock() *Clock {
	return &Clock{
		queue: make([]entry, 0, 4),
		batch: make([]entry, 0, 4),
	}
}

// Request queues cb for the next Step.
func (c *Clock) Request(cb Callback) Handle {
	c.last++
	c.queue = append(c.queue, entry{id: c.last, cb: cb})
	return c.last
}

// Cancel revokes a pending callback. It reports whether the callback was still pending.
func (c *Clock) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range c.queue {
		if c.queue[i].id == h && c.queue[i].cb != nil {
			c.queue[i].cb = nil
			return true
		}
	}
	for i := range c.batch {
		if c.batch[i].id == h && c.batch[i].cb != nil {
			c.batch[i].cb = nil
			return true
		}
	}
	return false
}

// Step runs every callback queued before the call, in request order.
// Timestamps are expected to be non-decreasing; an earlier one is raised to the last.
func (c *Clock) Step(now time.Duration) {
	if c.stepped && now < c.now {
		now = c.now
	}
	c.now = now
	c.stepped = true

	c.batch, c.queue = c.queue, c.batch[:0]
	for i := range c.batch {
		cb := c.batch[i].cb
		if cb == nil {
			continue
		}
		c.batch[i].cb = nil
		cb(now)
	}
	c.batch = c.batch[:0]
}

// Pending reports the number of live callbacks waiting for a step.
func (c *Clock) Pending() int {
	n := 0
	for _, e := range c.queue {
		if e.cb != nil {
			n++
		}
	}
	return n
}

// Now returns the timestamp of the most recent step.
func (c *Clock) Now() time.Duration { return c.now }
