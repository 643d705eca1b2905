package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_OnePerSwatch(t *testing.T) {
	cards := Default()
	assert.Len(t, cards, len(Palette))
	seen := map[string]bool{}
	for i, c := range cards {
		assert.Equal(t, Palette[i].Name, c.Label)
		assert.Equal(t, Palette[i].Color, c.Color)
		assert.False(t, seen[c.ID.String()], "duplicate id %s", c.ID)
		seen[c.ID.String()] = true
	}
}

func TestNew_DistinctIdentity(t *testing.T) {
	a := New("red", "196")
	b := New("red", "196")
	assert.NotEqual(t, a.ID, b.ID, "equal content must not share identity")
}

func TestRandom_UsesPalette(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		c := Random(r)
		assert.Equal(t, ColorFor(c.Label), c.Color)
	}
	c := Random(nil)
	assert.NotEmpty(t, c.Label)
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "33", ColorFor("blue"))
	assert.Equal(t, "#ff00ff", ColorFor("#ff00ff"))
}
