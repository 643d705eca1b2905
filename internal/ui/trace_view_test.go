package ui

import (
	"strings"
	"testing"
	"time"

	"cardstack/internal/trace"

	"github.com/stretchr/testify/assert"
)

func TestTraceView_NoSession(t *testing.T) {
	v := NewTraceView(trace.NewManager(1, nil), "missing")
	v.SetSize(40, 10)
	assert.Contains(t, plain(v.View()), "No session trace")
}

func TestTraceView_RendersSpans(t *testing.T) {
	m := trace.NewManager(1, nil)
	start := time.Unix(0, 0)
	id := trace.NewTraceID()
	root := trace.NewSpanID()
	child := trace.NewSpanID()
	m.HandleEvent(trace.TraceEvent{TraceID: id, SpanID: root, Type: trace.EventSessionStart, Name: "cardstack", Timestamp: start})
	m.HandleEvent(trace.TraceEvent{TraceID: id, SpanID: child, ParentID: root, Type: trace.EventGestureStart, Name: "gesture-1", Timestamp: start})
	m.HandleEvent(trace.TraceEvent{
		TraceID: id, SpanID: child, Type: trace.EventGestureEnd, Timestamp: start.Add(120 * time.Millisecond),
		Attributes: map[string]string{"direction": "down"},
	})

	v := NewTraceView(m, id)
	v.SetSize(60, 10)
	out := plain(v.View())
	assert.Contains(t, out, "Session "+id[:16])
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "└─ gesture-1 down 120ms")

	m.HandleEvent(trace.TraceEvent{TraceID: id, SpanID: root, Type: trace.EventSessionEnd, Timestamp: start.Add(2 * time.Second)})
	out = plain(v.View())
	assert.Contains(t, out, "(2s)")
	assert.Contains(t, out, "completed")
}

func TestTraceView_EmptySession(t *testing.T) {
	m := trace.NewManager(1, nil)
	id := trace.NewTraceID()
	m.HandleEvent(trace.TraceEvent{TraceID: id, SpanID: trace.NewSpanID(), Type: trace.EventSessionStart, Timestamp: time.Now()})

	v := NewTraceView(m, id)
	v.SetSize(60, 10)
	assert.Contains(t, plain(v.View()), "(no gestures yet)")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{120 * time.Millisecond, "120ms"},
		{1500 * time.Millisecond, "2s"},
		{75 * time.Second, "1m15s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSpanLine_Cancelled(t *testing.T) {
	line := plain(renderSpanLine(&trace.Span{
		Name:       "removal-2",
		Attributes: map[string]string{"direction": "up", "cancelled": "true"},
	}, false))
	assert.True(t, strings.HasPrefix(line, "├─ removal-2 up cancelled"), line)
	assert.Contains(t, line, "open")
}
