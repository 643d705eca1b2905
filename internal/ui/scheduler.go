package ui

import (
	"sync"
	"time"

	"cardstack/internal/sched"

	tea "github.com/charmbracelet/bubbletea"
)

// settleMsg delivers a due callback to the Bubble Tea loop.
type settleMsg struct {
	timer *programTimer
}

// ProgramScheduler is a sched.Scheduler whose callbacks run inside Update.
// AfterFunc only queues the request; Drain turns queued requests into tick
// commands, and the settleMsg each tick produces runs the callback on the
// program goroutine. Controller state is then only ever touched from Update.
type ProgramScheduler struct {
	mu     sync.Mutex
	queued []*programTimer

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd // test hook
}

// Ensure ProgramScheduler implements sched.Scheduler.
var _ sched.Scheduler = (*ProgramScheduler)(nil)

// NewProgramScheduler creates a scheduler backed by tea.Tick.
func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{tick: tea.Tick}
}

type programTimer struct {
	d  time.Duration
	fn func()

	mu   sync.Mutex
	done bool // fired or stopped
}

// Stop prevents the callback from running. It returns false if the callback
// already ran or was already stopped.
func (t *programTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// fire runs the callback unless it was stopped.
func (t *programTimer) fire() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.mu.Unlock()
	t.fn()
}

// AfterFunc queues fn to run d after the next Drain.
func (s *ProgramScheduler) AfterFunc(d time.Duration, fn func()) sched.Timer {
	t := &programTimer{d: d, fn: fn}
	s.mu.Lock()
	s.queued = append(s.queued, t)
	s.mu.Unlock()
	return t
}

// Drain returns a command arming every queued request, or nil when none.
func (s *ProgramScheduler) Drain() tea.Cmd {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(queued))
	for _, t := range queued {
		cmds = append(cmds, s.tick(t.d, func(time.Time) tea.Msg {
			return settleMsg{timer: t}
		}))
	}
	return tea.Batch(cmds...)
}
