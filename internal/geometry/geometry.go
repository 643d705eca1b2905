// Package geometry computes per-slot visual transforms for a stacked card deck.
//
// Everything here is a pure function of slot index, stack state and container
// size. Hosts call TransformFor on every render pass.
package geometry

import "math"

// Size is a container's width and height in host units (points, cells, ...).
type Size struct {
	Width  float64
	Height float64
}

// Vector is a two-dimensional displacement.
type Vector struct {
	DX float64
	DY float64
}

// Zero is the zero displacement.
var Zero = Vector{}

// Scale returns v with both components multiplied by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{DX: v.DX * f, DY: v.DY * f}
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

// State is the slice of stack state the geometry depends on.
type State struct {
	RemovingTopCard bool
	DragOffset      Vector
}

// SlotTransform describes how to draw the card at one slot.
type SlotTransform struct {
	ScaleX float64
	ScaleY float64

	// TranslateX and TranslateY are the stacking offset, applied before the drag.
	TranslateX float64
	TranslateY float64

	// DragX and DragY are the live drag offset. Only slot 0 ever moves.
	DragX float64
	DragY float64

	RotationDegrees float64
	Opacity         float64

	// ZIndex orders slots back to front: higher values draw on top.
	ZIndex int
}

// Params holds the tunable stacking constants.
type Params struct {
	ScaleYStep         float64 // Vertical shrink per depth step
	ScaleXStep         float64 // Horizontal shrink per depth step
	StackOffsetFactor  float64 // Fraction of container height each step pushes down
	RotationFactor     float64 // Degrees of tilt per unit of horizontal drag
	MaxRotationDegrees float64 // Absolute tilt limit
}

// DefaultParams returns the stock stacking constants.
func DefaultParams() Params {
	return Params{
		ScaleYStep:         0.03,
		ScaleXStep:         0.05,
		StackOffsetFactor:  0.02,
		RotationFactor:     0.05,
		MaxRotationDegrees: 5,
	}
}

// TransformFor computes the transform for slot using DefaultParams.
func TransformFor(slot int, st State, container Size) SlotTransform {
	return DefaultParams().TransformFor(slot, st, container)
}

// TransformFor computes the transform for slot.
//
// While the top card is being removed it still occupies slot 0, so the
// stacking rank of every slot is shifted down by one and the removed card is
// hidden.
func (p Params) TransformFor(slot int, st State, container Size) SlotTransform {
	working := slot
	if st.RemovingTopCard {
		working--
	}
	w := float64(working)

	t := SlotTransform{
		ScaleX:     1 - p.ScaleXStep*w,
		ScaleY:     1 - p.ScaleYStep*w,
		TranslateY: w * (container.Height * p.StackOffsetFactor),
		Opacity:    1,
		ZIndex:     -slot,
	}

	if slot != 0 {
		return t
	}

	t.DragX = st.DragOffset.DX
	t.DragY = st.DragOffset.DY
	t.RotationDegrees = p.Rotation(st.DragOffset.DX)
	if st.RemovingTopCard {
		t.Opacity = 0
	}
	return t
}

// Rotation returns the tilt for a horizontal drag of dx, clamped to
// ±MaxRotationDegrees and carrying the sign of dx.
func (p Params) Rotation(dx float64) float64 {
	deg := dx * p.RotationFactor
	return math.Max(-p.MaxRotationDegrees, math.Min(p.MaxRotationDegrees, deg))
}
