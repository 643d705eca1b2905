package gesture

import (
	"encoding/json"
	"testing"

	"cardstack/internal/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	const w, h = 300.0, 600.0
	size := geometry.Size{Width: w, Height: h}

	tests := []struct {
		name      string
		predicted geometry.Vector
		want      Direction
	}{
		{"up", geometry.Vector{DY: -h - 1}, Up},
		{"down", geometry.Vector{DY: h + 1}, Down},
		{"left", geometry.Vector{DX: -w - 1}, Left},
		{"right", geometry.Vector{DX: w + 1}, Right},
		{"half way snaps back", geometry.Vector{DX: w * 0.5, DY: h * 0.5}, None},
		{"exactly at threshold snaps back", geometry.Vector{DX: w, DY: h}, None},
		{"zero", geometry.Vector{}, None},
		{"vertical wins over horizontal", geometry.Vector{DX: -5 * w, DY: h + 1}, Down},
		{"horizontal when vertical short", geometry.Vector{DX: -400, DY: h - 1}, Left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.predicted, size))
		})
	}
}

func TestFlick_ClearsThreshold(t *testing.T) {
	size := geometry.Size{Width: 640, Height: 448}
	for _, dir := range []Direction{Up, Down, Left, Right} {
		t.Run(dir.String(), func(t *testing.T) {
			assert.Equal(t, dir, Classify(Flick(dir, size), size))
		})
	}
	assert.Equal(t, geometry.Vector{DX: -960}, Flick(Left, size))
	assert.Equal(t, geometry.Zero, Flick(None, size))
}

func TestDirection_String(t *testing.T) {
	tests := []struct {
		d     Direction
		want  string
		label string
	}{
		{None, "none", ""},
		{Up, "up", "Up"},
		{Down, "down", "Down"},
		{Left, "left", "Left"},
		{Right, "right", "Right"},
		{Direction(99), "unknown", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
		assert.Equal(t, tt.label, tt.d.Label())
	}
	assert.False(t, None.IsSwipe())
	assert.True(t, Left.IsSwipe())
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(Right)
	require.NoError(t, err)
	assert.Equal(t, `"right"`, string(data))

	var d Direction
	require.NoError(t, json.Unmarshal([]byte(`"up"`), &d))
	assert.Equal(t, Up, d)

	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`3`), &d))
}

func TestDirection_Text(t *testing.T) {
	text, err := Down.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "down", string(text))

	var d Direction
	require.NoError(t, d.UnmarshalText(text))
	assert.Equal(t, Down, d)
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
}

func TestParseDirection_Unknown(t *testing.T) {
	_, err := ParseDirection("diagonal")
	assert.EqualError(t, err, "unknown Direction: diagonal")
}
