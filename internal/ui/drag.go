package ui

import (
	"time"

	"cardstack/internal/geometry"
)

// Velocity projection defaults.
const (
	DefaultVelocityWindow = 100 * time.Millisecond
	DefaultProjection     = 500 * time.Millisecond
)

type dragSample struct {
	at  time.Time
	pos geometry.Vector
}

// DragTracker turns pointer positions into a drag translation and a
// predicted end translation. Positions are in points relative to any fixed
// origin. The prediction extends the translation by the pointer velocity,
// measured over the last Window, for Projection more time.
type DragTracker struct {
	Window     time.Duration
	Projection time.Duration

	now     func() time.Time // test hook
	active  bool
	origin  geometry.Vector
	samples []dragSample
}

// NewDragTracker creates a tracker with the default window and projection.
func NewDragTracker() *DragTracker {
	return &DragTracker{
		Window:     DefaultVelocityWindow,
		Projection: DefaultProjection,
		now:        time.Now,
	}
}

// Active reports whether a drag is being tracked.
func (d *DragTracker) Active() bool {
	return d.active
}

// Begin starts tracking at pos.
func (d *DragTracker) Begin(pos geometry.Vector) {
	d.active = true
	d.origin = pos
	d.samples = d.samples[:0]
	d.record(pos)
}

// Move records pos and returns the translation from the start.
func (d *DragTracker) Move(pos geometry.Vector) geometry.Vector {
	if !d.active {
		return geometry.Zero
	}
	d.record(pos)
	return d.translation(pos)
}

// End records the final position and stops tracking. It returns the final
// translation and the predicted end translation.
func (d *DragTracker) End(pos geometry.Vector) (translation, predicted geometry.Vector) {
	if !d.active {
		return geometry.Zero, geometry.Zero
	}
	d.record(pos)
	translation = d.translation(pos)
	v := d.velocity()
	secs := d.Projection.Seconds()
	predicted = geometry.Vector{
		DX: translation.DX + v.DX*secs,
		DY: translation.DY + v.DY*secs,
	}
	d.Cancel()
	return translation, predicted
}

// Cancel stops tracking without producing a result.
func (d *DragTracker) Cancel() {
	d.active = false
	d.samples = d.samples[:0]
}

func (d *DragTracker) translation(pos geometry.Vector) geometry.Vector {
	return geometry.Vector{DX: pos.DX - d.origin.DX, DY: pos.DY - d.origin.DY}
}

func (d *DragTracker) record(pos geometry.Vector) {
	now := d.now()
	d.samples = append(d.samples, dragSample{at: now, pos: pos})
	cutoff := now.Add(-d.Window)
	// Keep one sample at or before the cutoff so the window is spanned.
	drop := 0
	for drop+1 < len(d.samples) && !d.samples[drop+1].at.After(cutoff) {
		drop++
	}
	d.samples = d.samples[drop:]
}

// velocity returns points per second across the retained samples.
func (d *DragTracker) velocity() geometry.Vector {
	if len(d.samples) < 2 {
		return geometry.Zero
	}
	first, last := d.samples[0], d.samples[len(d.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geometry.Zero
	}
	return geometry.Vector{
		DX: (last.pos.DX - first.pos.DX) / dt,
		DY: (last.pos.DY - first.pos.DY) / dt,
	}
}
