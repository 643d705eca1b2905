package trace

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceID(t *testing.T) {
	id := NewTraceID()
	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewTraceID(), "IDs must be unique")
}

func TestNewSpanID(t *testing.T) {
	id := NewSpanID()
	require.Len(t, id, 16)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewSpanID(), "IDs must be unique")
}

func TestEventType_StartEnd(t *testing.T) {
	starts := []EventType{EventSessionStart, EventGestureStart, EventRemovalStart}
	ends := []EventType{EventSessionEnd, EventGestureEnd, EventRemovalEnd}
	for _, e := range starts {
		assert.True(t, e.IsStart(), e)
		assert.False(t, e.IsEnd(), e)
	}
	for _, e := range ends {
		assert.True(t, e.IsEnd(), e)
		assert.False(t, e.IsStart(), e)
	}
	assert.False(t, EventType("bogus").IsStart())
	assert.False(t, EventType("bogus").IsEnd())
}
