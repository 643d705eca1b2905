package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramScheduler_DrainNothingQueued(t *testing.T) {
	s := NewProgramScheduler()
	assert.Nil(t, s.Drain())
}

func TestProgramScheduler_RunsOnlyWhenDelivered(t *testing.T) {
	s := NewProgramScheduler()
	s.tick = instantTick

	ran := 0
	s.AfterFunc(300*time.Millisecond, func() { ran++ })
	assert.Zero(t, ran, "AfterFunc must not run the callback")

	msgs := collectMsgs(t, s.Drain())
	require.Len(t, msgs, 1)
	assert.Zero(t, ran, "draining only arms the tick")

	msg, ok := msgs[0].(settleMsg)
	require.True(t, ok)
	msg.timer.fire()
	assert.Equal(t, 1, ran)

	msg.timer.fire()
	assert.Equal(t, 1, ran, "a timer fires at most once")
	assert.Nil(t, s.Drain(), "drained requests are not re-armed")
}

func TestProgramScheduler_Stop(t *testing.T) {
	s := NewProgramScheduler()
	s.tick = instantTick

	ran := false
	timer := s.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports nothing to stop")

	for _, msg := range collectMsgs(t, s.Drain()) {
		msg.(settleMsg).timer.fire()
	}
	assert.False(t, ran)
}

func TestProgramScheduler_StopAfterFire(t *testing.T) {
	s := NewProgramScheduler()
	s.tick = instantTick

	timer := s.AfterFunc(time.Second, func() {})
	for _, msg := range collectMsgs(t, s.Drain()) {
		msg.(settleMsg).timer.fire()
	}
	assert.False(t, timer.Stop())
}

func TestProgramScheduler_TickDuration(t *testing.T) {
	s := NewProgramScheduler()
	var got []time.Duration
	s.tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		got = append(got, d)
		return instantTick(d, fn)
	}
	s.AfterFunc(300*time.Millisecond, func() {})
	s.AfterFunc(50*time.Millisecond, func() {})

	assert.Len(t, collectMsgs(t, s.Drain()), 2)
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 50 * time.Millisecond}, got)
}
