// Package deck provides the demo cards shown by the terminal host.
package deck

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Card is one swipeable card. Cards are compared by ID, never by content.
type Card struct {
	ID    uuid.UUID
	Label string
	Color string // lipgloss color (ANSI index or hex)
}

// Swatch is a named color.
type Swatch struct {
	Name  string
	Color string
}

// Palette is the stock set of card colors.
var Palette = []Swatch{
	{Name: "red", Color: "196"},
	{Name: "orange", Color: "208"},
	{Name: "yellow", Color: "226"},
	{Name: "green", Color: "46"},
	{Name: "blue", Color: "33"},
	{Name: "purple", Color: "129"},
	{Name: "pink", Color: "213"},
	{Name: "black", Color: "16"},
}

// New creates a card with a fresh identity.
func New(label, color string) Card {
	return Card{ID: uuid.New(), Label: label, Color: color}
}

// FromSwatch creates a card labelled with the swatch name.
func FromSwatch(s Swatch) Card {
	return New(s.Name, s.Color)
}

// Default returns one card per palette entry, in palette order.
func Default() []Card {
	cards := make([]Card, len(Palette))
	for i, s := range Palette {
		cards[i] = FromSwatch(s)
	}
	return cards
}

// Random returns a card with a random palette color. r may be nil to use
// the global source.
func Random(r *rand.Rand) Card {
	var i int
	if r != nil {
		i = r.IntN(len(Palette))
	} else {
		i = rand.IntN(len(Palette))
	}
	return FromSwatch(Palette[i])
}

// ColorFor returns the palette color for name, or name itself when it is not
// a palette entry (so raw lipgloss colors pass through).
func ColorFor(name string) string {
	for _, s := range Palette {
		if s.Name == name {
			return s.Color
		}
	}
	return name
}
