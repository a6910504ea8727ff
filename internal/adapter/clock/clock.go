// Package clock provides the time sources injected into the inventory
// service: Real for production and Fake for deterministic tests and demos.
package clock

import (
	"sync"
	"time"
)

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake reports a fixed time until it is moved with Set or Advance.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
