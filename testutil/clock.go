package testutil

import (
	"fmt"
	"sync"
	"time"
)

// BaseTime is the first instant returned by a new StepClock
var BaseTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// StepClock is a deterministic clock that advances by a fixed step on
// every call to Now, so successive timestamps are strictly increasing.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock creates a clock starting at BaseTime advancing one second
// per call
func NewStepClock() *StepClock {
	return &StepClock{next: BaseTime, step: time.Second}
}

// Now returns the current instant and advances the clock
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

// Peek returns the instant the next call to Now will return
func (c *StepClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
