// Package stack implements the swipeable card-stack state machine.
//
// A Controller owns the cursor into an ordered item collection, interprets
// drag input and sequences the two-step removal of a swiped card. It renders
// nothing: hosts read CurrentSlice and TransformFor on each frame and feed
// BeginDrag, OnDragChanged and OnDragEnded from their pointer events.
//
// # Lifecycle
//
//	Idle --BeginDrag--> Dragging --OnDragEnded(none)--> Idle
//	Dragging --OnDragEnded(swipe)--> Removing --settle delay--> Idle (cursor+1)
//
// While Removing every input is ignored. Close cancels a pending settle.
package stack

import (
	"slices"
	"sync"
	"time"

	"cardstack/internal/geometry"
	"cardstack/internal/gesture"
	"cardstack/internal/sched"
	"cardstack/internal/window"

	"go.uber.org/zap"
)

// Controller drives one card stack. The zero value is not usable; call New.
//
// Hosts are expected to serialize calls. The controller also guards its
// state with a mutex so a settle firing on a timer goroutine is safe, and it
// never holds the lock while calling back into the host.
type Controller[T any] struct {
	mu sync.Mutex

	items        []T
	visibleCount int
	shownIndex   int
	removing     bool
	offset       geometry.Vector
	phase        Phase
	container    geometry.Size
	closed       bool

	// generation invalidates settle callbacks that were cancelled or
	// superseded; each scheduled settle advances the cursor at most once.
	generation uint64
	pending    sched.Timer

	params      geometry.Params
	settleDelay time.Duration
	scheduler   sched.Scheduler
	onSwipe     func(gesture.Direction)
	observer    Observer
	logger      *zap.Logger
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	ShownIndex      int
	RemovingTopCard bool
	DragOffset      geometry.Vector
	VisibleCount    int
	Phase           Phase
	Total           int
	Container       geometry.Size
}

// Remaining returns the number of items not yet swiped away.
func (s Snapshot) Remaining() int {
	return max(s.Total-s.ShownIndex, 0)
}

// Slot pairs a visible item with its transform.
type Slot[T any] struct {
	Index     int
	Item      T
	Transform geometry.SlotTransform
}

// New creates a controller over items. The slice is retained, clipped so
// Append never writes into the caller's spare capacity; hosts add items
// with Append rather than mutating it.
func New[T any](items []T, opts ...Option) *Controller[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		items:        slices.Clip(items),
		visibleCount: max(o.visibleCount, 1),
		container:    o.container,
		params:       o.params,
		settleDelay:  o.settleDelay,
		scheduler:    o.scheduler,
		onSwipe:      o.onSwipe,
		observer:     o.observer,
		logger:       o.logger,
	}
}

// State returns a snapshot of the current state.
func (c *Controller[T]) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot {
	return Snapshot{
		ShownIndex:      c.shownIndex,
		RemovingTopCard: c.removing,
		DragOffset:      c.offset,
		VisibleCount:    c.visibleCount,
		Phase:           c.phase,
		Total:           len(c.items),
		Container:       c.container,
	}
}

// Phase returns the interaction phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CurrentSlice returns the items eligible for rendering, front card first.
// It is empty once the collection is exhausted.
func (c *Controller[T]) CurrentSlice() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sliceLocked()
}

func (c *Controller[T]) sliceLocked() []T {
	return window.SliceOf(c.items, c.shownIndex, c.visibleCount, c.removing)
}

// TransformFor returns the transform for a slot of the current slice.
// ok is false when slot is outside the slice.
func (c *Controller[T]) TransformFor(slot int) (t geometry.SlotTransform, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot < 0 || slot >= len(c.sliceLocked()) {
		return geometry.SlotTransform{}, false
	}
	return c.transformLocked(slot), true
}

func (c *Controller[T]) transformLocked(slot int) geometry.SlotTransform {
	st := geometry.State{RemovingTopCard: c.removing, DragOffset: c.offset}
	return c.params.TransformFor(slot, st, c.container)
}

// Frame returns every visible slot with its transform, read under a single
// lock so items and transforms agree.
func (c *Controller[T]) Frame() []Slot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	slice := c.sliceLocked()
	frame := make([]Slot[T], len(slice))
	for i, item := range slice {
		frame[i] = Slot[T]{Index: i, Item: item, Transform: c.transformLocked(i)}
	}
	return frame
}

// Draggable returns the item in slot 0, the only one that follows the drag.
func (c *Controller[T]) Draggable() (item T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removing {
		// Slot 0 is the departing card; nothing is draggable until settle.
		return item, false
	}
	slice := c.sliceLocked()
	if len(slice) == 0 {
		return item, false
	}
	return slice[0], true
}

// Exhausted reports whether every item has been swiped away.
func (c *Controller[T]) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shownIndex >= len(c.items)
}

// BeginDrag starts a gesture. It returns false when the gesture was refused
// because a removal is in flight, another gesture is active, or the
// controller is closed. An exhausted stack accepts the gesture but has
// nothing to move.
func (c *Controller[T]) BeginDrag() bool {
	c.mu.Lock()
	if !c.beginLocked() {
		phase := c.phase
		c.mu.Unlock()
		c.logger.Debug("drag refused", zap.Stringer("phase", phase))
		return false
	}
	shown := c.shownIndex
	c.mu.Unlock()

	c.logger.Debug("drag began", zap.Int("shown_index", shown))
	c.observer.OnDragBegin(shown)
	return true
}

// beginLocked moves Idle to Dragging. Must be called with c.mu held.
func (c *Controller[T]) beginLocked() bool {
	if c.closed || c.phase != PhaseIdle {
		return false
	}
	c.phase = PhaseDragging
	c.offset = geometry.Zero
	return true
}

// OnDragChanged records the current drag translation. A change arriving
// while Idle starts the gesture implicitly. It is ignored during removal.
func (c *Controller[T]) OnDragChanged(translation geometry.Vector) {
	c.mu.Lock()
	began := false
	if c.phase == PhaseIdle {
		began = c.beginLocked()
	}
	if c.closed || c.phase != PhaseDragging {
		c.mu.Unlock()
		return
	}
	c.offset = translation
	shown := c.shownIndex
	c.mu.Unlock()

	if began {
		c.observer.OnDragBegin(shown)
	}
}

// OnDragEnded resolves the gesture from its predicted end translation and
// returns the outcome. A swipe fires the onSwipe callback before returning
// and schedules the cursor advance; None snaps the card back. Calls outside
// a gesture are ignored and return None.
func (c *Controller[T]) OnDragEnded(predicted geometry.Vector) gesture.Direction {
	c.mu.Lock()
	if c.closed || c.phase != PhaseDragging {
		c.mu.Unlock()
		return gesture.None
	}

	dir := gesture.Classify(predicted, c.container)
	if !dir.IsSwipe() || c.shownIndex >= len(c.items) {
		c.offset = geometry.Zero
		c.phase = PhaseIdle
		shown := c.shownIndex
		c.mu.Unlock()

		c.logger.Debug("snap back", zap.Int("shown_index", shown))
		c.observer.OnSnapBack(shown)
		return gesture.None
	}

	c.removing = true
	c.offset = predicted.Scale(2)
	c.phase = PhaseRemoving
	c.generation++
	gen := c.generation
	c.pending = c.scheduler.AfterFunc(c.settleDelay, func() { c.settle(gen) })
	shown := c.shownIndex
	onSwipe := c.onSwipe
	c.mu.Unlock()

	c.logger.Info("card swiped",
		zap.Stringer("direction", dir),
		zap.Int("shown_index", shown))
	if onSwipe != nil {
		onSwipe(dir)
	}
	c.observer.OnSwipe(dir, shown)
	return dir
}

// settle finishes a removal: the offset resets, the cursor advances and the
// next card is promoted.
func (c *Controller[T]) settle(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.phase != PhaseRemoving {
		c.mu.Unlock()
		return
	}
	c.offset = geometry.Zero
	c.shownIndex = min(c.shownIndex+1, len(c.items))
	c.removing = false
	c.phase = PhaseIdle
	c.pending = nil
	shown := c.shownIndex
	remaining := len(c.items) - shown
	c.mu.Unlock()

	c.logger.Debug("removal settled",
		zap.Int("shown_index", shown),
		zap.Int("remaining", remaining))
	c.observer.OnSettle(shown)
}

// Append adds items to the end of the collection. The cursor is unchanged,
// so an exhausted stack becomes live again.
func (c *Controller[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, items...)
	total := len(c.items)
	c.mu.Unlock()
	c.logger.Debug("items appended", zap.Int("added", len(items)), zap.Int("total", total))
}

// SetVisibleCount changes how many cards are stacked, clamped to at least 1.
func (c *Controller[T]) SetVisibleCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visibleCount = max(n, 1)
}

// SetContainer updates the container size, typically on host resize.
func (c *Controller[T]) SetContainer(size geometry.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.container = size
}

// Close tears the controller down. A pending settle is cancelled and every
// later input is ignored. Close is idempotent.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()

	c.logger.Debug("controller closed")
	c.observer.OnClose()
}
