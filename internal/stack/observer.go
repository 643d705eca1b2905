package stack

import (
	"cardstack/internal/gesture"

	"go.uber.org/zap"
)

// Observer receives controller lifecycle events. Methods are called after the
// controller has released its lock, on the goroutine that caused the event
// (the settle timer's goroutine for OnSettle).
type Observer interface {
	OnDragBegin(shownIndex int)
	OnSwipe(dir gesture.Direction, shownIndex int)
	OnSnapBack(shownIndex int)
	OnSettle(shownIndex int)
	OnClose()
}

// NoopObserver implements Observer with no-ops. Embed it to implement only
// the events you need.
type NoopObserver struct{}

// Ensure NoopObserver implements Observer.
var _ Observer = NoopObserver{}

func (NoopObserver) OnDragBegin(int) {}
func (NoopObserver) OnSwipe(gesture.Direction, int) {}
func (NoopObserver) OnSnapBack(int) {}
func (NoopObserver) OnSettle(int) {}
func (NoopObserver) OnClose() {}

// MultiObserver fans events out to several observers. A panicking observer
// is logged and skipped.
type MultiObserver struct {
	observers []Observer
	logger    *zap.Logger
}

// Ensure MultiObserver implements Observer.
var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver creates a MultiObserver that reports observer panics to
// logger, which may be nil. Nil observers are dropped.
func NewMultiObserver(logger *zap.Logger, observers ...Observer) *MultiObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered, logger: logger}
}

// safeCall runs fn and logs a panic instead of propagating it.
func (m *MultiObserver) safeCall(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("observer panicked",
				zap.String("event", event),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	fn()
}

// OnDragBegin forwards the call to all observers.
func (m *MultiObserver) OnDragBegin(shownIndex int) {
	for _, obs := range m.observers {
		m.safeCall("drag_begin", func() { obs.OnDragBegin(shownIndex) })
	}
}

// OnSwipe forwards the call to all observers.
func (m *MultiObserver) OnSwipe(dir gesture.Direction, shownIndex int) {
	for _, obs := range m.observers {
		m.safeCall("swipe", func() { obs.OnSwipe(dir, shownIndex) })
	}
}

// OnSnapBack forwards the call to all observers.
func (m *MultiObserver) OnSnapBack(shownIndex int) {
	for _, obs := range m.observers {
		m.safeCall("snap_back", func() { obs.OnSnapBack(shownIndex) })
	}
}

// OnSettle forwards the call to all observers.
func (m *MultiObserver) OnSettle(shownIndex int) {
	for _, obs := range m.observers {
		m.safeCall("settle", func() { obs.OnSettle(shownIndex) })
	}
}

// OnClose forwards the call to all observers.
func (m *MultiObserver) OnClose() {
	for _, obs := range m.observers {
		m.safeCall("close", obs.OnClose)
	}
}
