package gesture

import (
	"math"

	"cardstack/internal/geometry"
)

// Classify decides the swipe outcome from the predicted end translation of a
// gesture. A swipe requires the projected displacement to exceed the whole
// container dimension on that axis, so only a decisive flick removes a card.
// The vertical axis is checked first; at most one axis wins.
func Classify(predicted geometry.Vector, container geometry.Size) Direction {
	if math.Abs(predicted.DY) > math.Abs(container.Height) {
		if predicted.DY < 0 {
			return Up
		}
		return Down
	}
	if math.Abs(predicted.DX) > math.Abs(container.Width) {
		if predicted.DX < 0 {
			return Left
		}
		return Right
	}
	return None
}

// FlickReach is how far past the container a synthesized flick lands, as a
// multiple of the container dimension on its axis.
const FlickReach = 1.5

// Flick returns the predicted end translation of a decisive flick in dir,
// far enough past the container that Classify resolves it to dir. None
// yields the zero vector.
func Flick(dir Direction, container geometry.Size) geometry.Vector {
	switch dir {
	case Up:
		return geometry.Vector{DY: -FlickReach * container.Height}
	case Down:
		return geometry.Vector{DY: FlickReach * container.Height}
	case Left:
		return geometry.Vector{DX: -FlickReach * container.Width}
	case Right:
		return geometry.Vector{DX: FlickReach * container.Width}
	}
	return geometry.Zero
}
