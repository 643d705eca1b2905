// Package trace records card-stack interaction sessions as span trees and
// optionally exports them over OTLP.
//
// A session is one controller's lifetime. Each gesture is a child span of the
// session; each swipe additionally opens a removal span that closes when the
// cursor advances.
package trace

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// EventType identifies the kind of trace event
type EventType string

const (
	EventSessionStart EventType = "session_start" // Controller created
	EventSessionEnd   EventType = "session_end"   // Controller closed
	EventGestureStart EventType = "gesture_start" // Drag began
	EventGestureEnd   EventType = "gesture_end"   // Drag resolved to a direction
	EventRemovalStart EventType = "removal_start" // Swiped card leaving
	EventRemovalEnd   EventType = "removal_end"   // Cursor advanced
)

// IsStart reports whether t opens a span.
func (t EventType) IsStart() bool {
	return t == EventSessionStart || t == EventGestureStart || t == EventRemovalStart
}

// IsEnd reports whether t closes a span.
func (t EventType) IsEnd() bool {
	return t == EventSessionEnd || t == EventGestureEnd || t == EventRemovalEnd
}

// TraceEvent is a single span boundary within a session trace.
type TraceEvent struct {
	TraceID    string            `json:"trace_id"`
	SpanID     string            `json:"span_id"`
	ParentID   string            `json:"parent_id"` // Empty for the session span
	Type       EventType         `json:"type"`
	Name       string            `json:"name"`
	Timestamp  time.Time         `json:"timestamp"`
	Attributes map[string]string `json:"attributes"`
}

// NewTraceID generates a random 16-byte trace ID as hex string (32 characters)
func NewTraceID() string {
	return randomHex(16)
}

// NewSpanID generates a random 8-byte span ID as hex string (16 characters)
func NewSpanID() string {
	return randomHex(8)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
