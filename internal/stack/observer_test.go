package stack

import (
	"testing"
	"time"

	"cardstack/internal/geometry"
	"cardstack/internal/gesture"
	"cardstack/internal/sched"
	"cardstack/internal/trace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingObserver captures events as strings in call order.
type recordingObserver struct {
	events []string
}

func (r *recordingObserver) OnDragBegin(shown int) { r.add("begin", shown) }
func (r *recordingObserver) OnSwipe(d gesture.Direction, shown int) {
	r.add("swipe:"+d.String(), shown)
}
func (r *recordingObserver) OnSnapBack(shown int) { r.add("snap", shown) }
func (r *recordingObserver) OnSettle(shown int) { r.add("settle", shown) }
func (r *recordingObserver) OnClose() { r.events = append(r.events, "close") }

func (r *recordingObserver) add(name string, shown int) {
	r.events = append(r.events, name+"@"+string(rune('0'+shown)))
}

type panickyObserver struct{ NoopObserver }

func (panickyObserver) OnSwipe(gesture.Direction, int) { panic("boom") }

func TestObserver_EventOrder(t *testing.T) {
	rec := &recordingObserver{}
	c, clock, _ := newTestController(t, WithObserver(rec))

	swipe(c, geometry.Vector{DX: 50})
	swipe(c, flickLeft)
	clock.Advance(DefaultSettleDelay)
	c.Close()

	assert.Equal(t, []string{
		"begin@0", "snap@0",
		"begin@0", "swipe:left@0",
		"settle@1",
		"close",
	}, rec.events)
}

func TestMultiObserver_IsolatesPanics(t *testing.T) {
	rec := &recordingObserver{}
	core, logs := observer.New(zap.ErrorLevel)
	multi := NewMultiObserver(zap.New(core), nil, panickyObserver{}, rec)
	c, _, swipes := newTestController(t, WithObserver(multi))

	assert.NotPanics(t, func() { swipe(c, flickLeft) })
	assert.Len(t, *swipes, 1)
	assert.Contains(t, rec.events, "swipe:left@0")

	entries := logs.FilterMessage("observer panicked").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "swipe", fields["event"])
	assert.Equal(t, "boom", fields["panic"])
}

func TestMultiObserver_NilLogger(t *testing.T) {
	multi := NewMultiObserver(nil, panickyObserver{})
	assert.NotPanics(t, func() { multi.OnSwipe(gesture.Up, 0) })
}

func TestTracingObserver_RecordsSession(t *testing.T) {
	mgr := trace.NewManager(5, nil)
	now := epoch
	tick := func() time.Time {
		now = now.Add(50 * time.Millisecond)
		return now
	}
	obs := newTracingObserver(mgr, "card-stack", map[string]string{"total": "6"}, tick)

	clock := sched.NewManual(epoch)
	c := New([]string{"A", "B", "C"}, WithContainer(container), WithScheduler(clock), WithObserver(obs))

	swipe(c, geometry.Vector{DX: 10})
	swipe(c, geometry.Vector{DY: 601})
	clock.Advance(DefaultSettleDelay)
	swipe(c, flickLeft)
	c.Close() // pending removal is cancelled

	tr := mgr.GetTrace(obs.TraceID())
	require.NotNil(t, tr)
	assert.Equal(t, "completed", tr.Status)
	assert.Equal(t, "card-stack", tr.RootSpan.Name)
	assert.Equal(t, "3", tr.RootSpan.Attributes["gestures"])
	assert.Equal(t, "2", tr.RootSpan.Attributes["swipes"])

	var names []string
	for _, s := range tr.RootSpan.Children {
		names = append(names, s.Name)
		assert.Positive(t, s.Duration, "span %s closed", s.Name)
	}
	assert.Equal(t, []string{"gesture-1", "gesture-2", "removal-1", "gesture-3", "removal-2"}, names)

	byName := map[string]*trace.Span{}
	for _, s := range tr.RootSpan.Children {
		byName[s.Name] = s
	}
	assert.Equal(t, "none", byName["gesture-1"].Attributes["direction"])
	assert.Equal(t, "down", byName["gesture-2"].Attributes["direction"])
	assert.Equal(t, "1", byName["removal-1"].Attributes["settled_index"])
	assert.Equal(t, "true", byName["removal-2"].Attributes["cancelled"])

	// Events after close are dropped.
	obs.OnDragBegin(0)
	assert.Len(t, mgr.GetTrace(obs.TraceID()).RootSpan.Children, 5)
}
