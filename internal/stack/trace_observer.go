package stack

import (
	"strconv"
	"sync"
	"time"

	"cardstack/internal/gesture"
	"cardstack/internal/trace"
)

// TracingObserver records a controller's lifetime as a trace session: one
// child span per gesture and one per removal.
type TracingObserver struct {
	manager *trace.Manager
	now     func() time.Time // test hook

	mu            sync.Mutex
	traceID       string
	sessionSpanID string
	gestureSpanID string
	removalSpanID string
	gestures      int
	removals      int
	closed        bool
}

// Ensure TracingObserver implements Observer.
var _ Observer = (*TracingObserver)(nil)

// NewTracingObserver starts a session named name on manager. attrs are
// attached to the session span.
func NewTracingObserver(manager *trace.Manager, name string, attrs map[string]string) *TracingObserver {
	return newTracingObserver(manager, name, attrs, time.Now)
}

func newTracingObserver(manager *trace.Manager, name string, attrs map[string]string, now func() time.Time) *TracingObserver {
	o := &TracingObserver{
		manager:       manager,
		now:           now,
		traceID:       trace.NewTraceID(),
		sessionSpanID: trace.NewSpanID(),
	}
	o.manager.HandleEvent(trace.TraceEvent{
		TraceID:    o.traceID,
		SpanID:     o.sessionSpanID,
		Type:       trace.EventSessionStart,
		Name:       name,
		Timestamp:  o.now(),
		Attributes: attrs,
	})
	return o
}

// TraceID returns the session's trace ID.
func (o *TracingObserver) TraceID() string {
	return o.traceID
}

// emit must be called with o.mu held.
func (o *TracingObserver) emit(typ trace.EventType, spanID, name string, attrs map[string]string) {
	parent := o.sessionSpanID
	if spanID == o.sessionSpanID {
		parent = ""
	}
	o.manager.HandleEvent(trace.TraceEvent{
		TraceID:    o.traceID,
		SpanID:     spanID,
		ParentID:   parent,
		Type:       typ,
		Name:       name,
		Timestamp:  o.now(),
		Attributes: attrs,
	})
}

// OnDragBegin opens a gesture span.
func (o *TracingObserver) OnDragBegin(shownIndex int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.gestures++
	o.gestureSpanID = trace.NewSpanID()
	o.emit(trace.EventGestureStart, o.gestureSpanID, "gesture-"+strconv.Itoa(o.gestures), map[string]string{
		"shown_index": strconv.Itoa(shownIndex),
	})
}

// OnSwipe closes the gesture span and opens a removal span.
func (o *TracingObserver) OnSwipe(dir gesture.Direction, shownIndex int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.endGesture(dir)
	o.removals++
	o.removalSpanID = trace.NewSpanID()
	o.emit(trace.EventRemovalStart, o.removalSpanID, "removal-"+strconv.Itoa(o.removals), map[string]string{
		"direction":   dir.String(),
		"shown_index": strconv.Itoa(shownIndex),
	})
}

// OnSnapBack closes the gesture span with no direction.
func (o *TracingObserver) OnSnapBack(int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.endGesture(gesture.None)
}

// endGesture must be called with o.mu held.
func (o *TracingObserver) endGesture(dir gesture.Direction) {
	if o.gestureSpanID == "" {
		return
	}
	o.emit(trace.EventGestureEnd, o.gestureSpanID, "gesture-end", map[string]string{
		"direction": dir.String(),
	})
	o.gestureSpanID = ""
}

// OnSettle closes the removal span.
func (o *TracingObserver) OnSettle(shownIndex int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.removalSpanID == "" {
		return
	}
	o.emit(trace.EventRemovalEnd, o.removalSpanID, "removal-end", map[string]string{
		"settled_index": strconv.Itoa(shownIndex),
	})
	o.removalSpanID = ""
}

// OnClose closes any open spans, marking them cancelled, and ends the session.
func (o *TracingObserver) OnClose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	cancelled := map[string]string{"cancelled": "true"}
	if o.gestureSpanID != "" {
		o.emit(trace.EventGestureEnd, o.gestureSpanID, "gesture-end", cancelled)
		o.gestureSpanID = ""
	}
	if o.removalSpanID != "" {
		o.emit(trace.EventRemovalEnd, o.removalSpanID, "removal-end", cancelled)
		o.removalSpanID = ""
	}
	o.emit(trace.EventSessionEnd, o.sessionSpanID, "session-end", map[string]string{
		"gestures": strconv.Itoa(o.gestures),
		"swipes":   strconv.Itoa(o.removals),
	})
}
