package we

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a Clock that only moves when Advance is called.
type ManualClock struct {
	lk     sync.Mutex
	cond   *sync.Cond
	now    time.Time
	timers []manualTimer
}

type manualTimer struct {
	deadline time.Time
	ch       chan time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	c := &ManualClock{now: start}
	c.cond = sync.NewCond(&c.lk)
	return c
}

func (c *ManualClock) Now() time.Time {
	c.lk.Lock()
	defer c.lk.Unlock()

	return c.now
}

func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	c.lk.Lock()
	defer c.lk.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}

	c.timers = append(c.timers, manualTimer{deadline: c.now.Add(d), ch: ch})
	c.cond.Broadcast()

	return ch
}

// Advance moves the clock forward and fires every timer that is due, earliest
// deadline first.
func (c *ManualClock) Advance(d time.Duration) {
	c.lk.Lock()
	defer c.lk.Unlock()

	c.now = c.now.Add(d)

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})

	pending := c.timers[:0]
	for _, timer := range c.timers {
		if timer.deadline.After(c.now) {
			pending = append(pending, timer)
			continue
		}
		timer.ch <- c.now
	}
	c.timers = pending
	c.cond.Broadcast()
}

// Waiters returns the number of timers that have not fired yet.
func (c *ManualClock) Waiters() int {
	c.lk.Lock()
	defer c.lk.Unlock()

	return len(c.timers)
}

// BlockUntil waits until at least n timers are pending.
func (c *ManualClock) BlockUntil(n int) {
	c.lk.Lock()
	defer c.lk.Unlock()

	for len(c.timers) < n {
		c.cond.Wait()
	}
}
