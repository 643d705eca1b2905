package ui

import (
	"testing"
	"time"

	"cardstack/internal/geometry"

	"github.com/stretchr/testify/assert"
)

func newTestTracker() (*DragTracker, *fakeClock) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	d := NewDragTracker()
	d.now = clock.Now
	return d, clock
}

func TestDragTracker_Translation(t *testing.T) {
	d, clock := newTestTracker()
	d.Begin(geometry.Vector{DX: 100, DY: 50})
	assert.True(t, d.Active())

	clock.Advance(10 * time.Millisecond)
	got := d.Move(geometry.Vector{DX: 130, DY: 40})
	assert.Equal(t, geometry.Vector{DX: 30, DY: -10}, got)
}

func TestDragTracker_ProjectsVelocity(t *testing.T) {
	d, clock := newTestTracker()
	d.Begin(geometry.Vector{DX: 0})
	clock.Advance(50 * time.Millisecond)
	d.Move(geometry.Vector{DX: 50})
	clock.Advance(50 * time.Millisecond)

	translation, predicted := d.End(geometry.Vector{DX: 100})
	assert.Equal(t, geometry.Vector{DX: 100}, translation)
	// 100 points in 100ms is 1000 pt/s, projected 500ms ahead.
	assert.InDelta(t, 600, predicted.DX, 1e-9)
	assert.InDelta(t, 0, predicted.DY, 1e-9)
	assert.False(t, d.Active())
}

func TestDragTracker_OnlyRecentSamplesCount(t *testing.T) {
	d, clock := newTestTracker()
	d.Begin(geometry.Vector{})
	clock.Advance(50 * time.Millisecond)
	d.Move(geometry.Vector{DX: 200})
	// The pointer then rests for a long time before release.
	clock.Advance(time.Second)
	d.Move(geometry.Vector{DX: 200})
	clock.Advance(50 * time.Millisecond)

	_, predicted := d.End(geometry.Vector{DX: 200})
	assert.InDelta(t, 200, predicted.DX, 1e-9, "a resting pointer has no momentum")
}

func TestDragTracker_NoElapsedTime(t *testing.T) {
	d, _ := newTestTracker()
	d.Begin(geometry.Vector{})
	translation, predicted := d.End(geometry.Vector{DX: 40})
	assert.Equal(t, translation, predicted)
}

func TestDragTracker_Inactive(t *testing.T) {
	d, _ := newTestTracker()
	assert.Equal(t, geometry.Zero, d.Move(geometry.Vector{DX: 5}))
	translation, predicted := d.End(geometry.Vector{DX: 5})
	assert.Equal(t, geometry.Zero, translation)
	assert.Equal(t, geometry.Zero, predicted)

	d.Begin(geometry.Vector{})
	d.Cancel()
	assert.False(t, d.Active())
}
