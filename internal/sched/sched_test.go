package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)

func TestManual_RunsOnlyWhenDue(t *testing.T) {
	m := NewManual(epoch)
	calls := 0
	m.AfterFunc(300*time.Millisecond, func() { calls++ })

	assert.Equal(t, 0, m.Advance(299*time.Millisecond))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, m.Pending())

	assert.Equal(t, 1, m.Advance(time.Millisecond))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Pending())

	m.Advance(time.Hour)
	assert.Equal(t, 1, calls, "callback must run exactly once")
	assert.Equal(t, epoch.Add(time.Hour+300*time.Millisecond), m.Now())
}

func TestManual_Stop(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	timer := m.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second Stop reports already stopped")
	m.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestManual_StopAfterRun(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(time.Second, func() {})
	m.Advance(time.Second)
	assert.False(t, timer.Stop())
}

func TestManual_DeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	require.Equal(t, 3, m.Advance(time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManual_CallbackMaySchedule(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Time
	m.AfterFunc(10*time.Millisecond, func() {
		at = append(at, m.Now())
		m.AfterFunc(10*time.Millisecond, func() { at = append(at, m.Now()) })
	})

	assert.Equal(t, 2, m.Advance(25*time.Millisecond))
	assert.Equal(t, []time.Time{epoch.Add(10 * time.Millisecond), epoch.Add(20 * time.Millisecond)}, at)
}

func TestReal_StopCancels(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := Real{}.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	assert.True(t, timer.Stop())
	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}
}

func TestReal_Fires(t *testing.T) {
	fired := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestFunc_Adapter(t *testing.T) {
	m := NewManual(epoch)
	var got time.Duration
	s := Func(func(d time.Duration, fn func()) Timer {
		got = d
		return m.AfterFunc(d, fn)
	})
	s.AfterFunc(42*time.Millisecond, func() {})
	assert.Equal(t, 42*time.Millisecond, got)
	assert.Equal(t, 1, m.Pending())
}
