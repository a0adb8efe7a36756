package carousel

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules periodic callbacks. The returned stop function cancels the
// schedule and may be called more than once.
type Clock interface {
	Every(d time.Duration, fn func()) (stop func())
}

type systemClock struct{}

// SystemClock returns a Clock backed by time.Ticker.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualClock is a Clock driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance, in due-time order.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	id     int
	period time.Duration
	due    time.Time
	fn     func()
}

// NewManualClock returns a clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, timers: make(map[int]*manualTimer)}
}

// Every schedules fn every d of simulated time. A non-positive d schedules
// nothing.
func (c *ManualClock) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.timers[id] = &manualTimer{id: id, period: d, due: c.now.Add(d), fn: fn}
	return func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()
	}
}

// Now returns the simulated time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves simulated time forward by d, firing every callback that
// falls due on the way.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.earliestDue(target)
		if t == nil {
			break
		}
		c.now = t.due
		t.due = t.due.Add(t.period)
		fn := t.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending reports how many schedules are active.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) earliestDue(limit time.Time) *manualTimer {
	due := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.due.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}
