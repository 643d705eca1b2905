// Package sched provides cancellable delayed callbacks.
//
// The stack controller never sleeps: it schedules its settle step through a
// Scheduler so hosts and tests can decide how time passes.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Func adapts a function to the Scheduler interface.
type Func func(d time.Duration, fn func()) Timer

// AfterFunc implements Scheduler.
func (f Func) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// Real schedules callbacks on the runtime timer. Callbacks run on their own
// goroutine.
type Real struct{}

// Ensure Real implements Scheduler.
var _ Scheduler = Real{}

// AfterFunc implements Scheduler.
func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance, in deadline
// order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

// Ensure Manual implements Scheduler.
var _ Scheduler = (*Manual)(nil)

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualTimer struct {
	m        *Manual
	deadline time.Time
	seq      int
	fn       func()
	done     bool
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, deadline: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves the clock forward by d and runs every callback whose
// deadline has been reached. Callbacks scheduled by a running callback also
// run if their deadline falls inside the advanced window.
// It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	ran := 0
	for {
		m.mu.Lock()
		t := m.nextDue(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return ran
		}
		t.done = true
		m.remove(t)
		m.now = t.deadline
		m.mu.Unlock()

		// Run outside the lock so fn may schedule or stop timers.
		t.fn()
		ran++
	}
}

// nextDue returns the earliest pending timer due by target.
// Must be called with m.mu held.
func (m *Manual) nextDue(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})
	if m.pending[0].deadline.After(target) {
		return nil
	}
	return m.pending[0]
}

// remove drops t from the pending list. Must be called with m.mu held.
func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
