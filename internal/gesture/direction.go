// Package gesture resolves a completed drag gesture into a discrete swipe.
package gesture

import (
	"encoding/json"
	"fmt"
)

// Direction is the outcome of a completed gesture.
type Direction int

const (
	None Direction = iota // Gesture snapped back
	Up
	Down
	Left
	Right
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Label returns the title-case name shown to users.
func (d Direction) Label() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return ""
	}
}

// IsSwipe reports whether d removes the top card.
func (d Direction) IsSwipe() bool {
	return d >= Up && d <= Right
}

// ParseDirection converts a name produced by String back into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "none", "":
		return None, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return None, fmt.Errorf("unknown Direction: %s", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so directions can be
// read from YAML and flags.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
