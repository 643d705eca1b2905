package trace

import (
	"context"
	"sync"
	"time"
)

// Span is a span with start time and duration. Duration is zero while the
// span is still open.
type Span struct {
	TraceID    string
	SpanID     string
	ParentID   string
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Attributes map[string]string
	Children   []*Span
}

// Trace is one stack session.
type Trace struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	RootSpan  *Span
	Status    string // "running" or "completed"
}

// Manager assembles trace events into span trees and keeps the most recent
// sessions in memory.
type Manager struct {
	mu           sync.RWMutex
	traces       map[string]*Trace      // traceID -> Trace
	pendingSpans map[string]*TraceEvent // spanID -> start event (waiting for end)
	recentIDs    []string               // Oldest first
	maxTraces    int
	onChange     func()
	exporter     *OTLPExporter
	exportErr    error
}

// NewManager creates a manager keeping up to maxTraces sessions (default 10).
// exporter may be nil to disable OTLP export.
func NewManager(maxTraces int, exporter *OTLPExporter) *Manager {
	if maxTraces <= 0 {
		maxTraces = 10
	}
	return &Manager{
		traces:       make(map[string]*Trace),
		pendingSpans: make(map[string]*TraceEvent),
		recentIDs:    make([]string, 0, maxTraces),
		maxTraces:    maxTraces,
		exporter:     exporter,
	}
}

// HandleEvent processes an incoming trace event
//   - start events create the span immediately with Duration=0 (open)
//   - end events find the matching span and set its Duration
//
// Returns the affected Trace, or nil if the event was ignored.
func (m *Manager) HandleEvent(event TraceEvent) *Trace {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case event.Type.IsStart():
		return m.handleStartEvent(event)
	case event.Type.IsEnd():
		return m.handleEndEvent(event)
	}
	return nil
}

// handleStartEvent must be called with m.mu held.
func (m *Manager) handleStartEvent(event TraceEvent) *Trace {
	m.pendingSpans[event.SpanID] = &event

	span := &Span{
		TraceID:    event.TraceID,
		SpanID:     event.SpanID,
		ParentID:   event.ParentID,
		Name:       event.Name,
		StartTime:  event.Timestamp,
		Attributes: copyAttrs(nil, event.Attributes),
	}

	tr, exists := m.traces[event.TraceID]
	if event.Type == EventSessionStart {
		if !exists {
			tr = &Trace{ID: event.TraceID}
			m.traces[event.TraceID] = tr
			m.addToRecentIDs(event.TraceID)
		}
		tr.StartTime = event.Timestamp
		tr.Status = "running"
		tr.RootSpan = span
		m.callOnChange()
		return tr
	}

	// Gesture and removal spans hang off the session span; a child without a
	// known session is dropped.
	if !exists || tr.RootSpan == nil {
		delete(m.pendingSpans, event.SpanID)
		return nil
	}
	parent := findSpanByID(tr.RootSpan, event.ParentID)
	if parent == nil {
		parent = tr.RootSpan
	}
	parent.Children = append(parent.Children, span)
	m.callOnChange()
	return tr
}

// handleEndEvent must be called with m.mu held.
func (m *Manager) handleEndEvent(event TraceEvent) *Trace {
	start, found := m.pendingSpans[event.SpanID]
	if !found {
		return nil
	}
	delete(m.pendingSpans, event.SpanID)

	tr := m.traces[event.TraceID]
	if tr == nil || tr.RootSpan == nil {
		return nil
	}
	if span := findSpanByID(tr.RootSpan, event.SpanID); span != nil {
		span.Duration = event.Timestamp.Sub(start.Timestamp)
		span.Attributes = copyAttrs(span.Attributes, event.Attributes)
	}

	if event.Type == EventSessionEnd {
		tr.EndTime = event.Timestamp
		tr.Status = "completed"
		if m.exporter != nil {
			// Exported synchronously: the session end is usually the last
			// thing that happens before the process exits.
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			m.exportErr = m.exporter.ExportTrace(ctx, tr)
			cancel()
		}
	}

	m.callOnChange()
	return tr
}

func copyAttrs(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// findSpanByID searches the span tree rooted at root.
func findSpanByID(root *Span, spanID string) *Span {
	if root == nil || spanID == "" {
		return nil
	}
	if root.SpanID == spanID {
		return root
	}
	for _, child := range root.Children {
		if found := findSpanByID(child, spanID); found != nil {
			return found
		}
	}
	return nil
}

// addToRecentIDs records traceID, evicting the oldest trace past maxTraces.
// Must be called with m.mu held.
func (m *Manager) addToRecentIDs(traceID string) {
	m.recentIDs = append(m.recentIDs, traceID)
	if len(m.recentIDs) > m.maxTraces {
		oldest := m.recentIDs[0]
		m.recentIDs = m.recentIDs[1:]
		delete(m.traces, oldest)
	}
}

// callOnChange must be called with m.mu held.
func (m *Manager) callOnChange() {
	if m.onChange != nil {
		m.onChange()
	}
}

// GetTrace returns a trace by ID
func (m *Manager) GetTrace(id string) *Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.traces[id]
}

// GetActiveTrace returns a running trace, if any.
func (m *Manager) GetActiveTrace() *Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.recentIDs) - 1; i >= 0; i-- {
		if tr := m.traces[m.recentIDs[i]]; tr != nil && tr.Status == "running" {
			return tr
		}
	}
	return nil
}

// GetRecentTraces returns recent traces (newest first)
func (m *Manager) GetRecentTraces() []*Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Trace, 0, len(m.recentIDs))
	for i := len(m.recentIDs) - 1; i >= 0; i-- {
		if tr, ok := m.traces[m.recentIDs[i]]; ok {
			result = append(result, tr)
		}
	}
	return result
}

// LastExportError returns the error from the most recent OTLP export.
func (m *Manager) LastExportError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exportErr
}

// SetOnChange sets callback for state changes (thread-safe)
func (m *Manager) SetOnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Shutdown flushes pending exports and closes the OTLP exporter.
// Must be called before process exit to ensure traces are exported.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	exporter := m.exporter
	m.mu.Unlock()

	if exporter != nil {
		return exporter.Shutdown(ctx)
	}
	return nil
}
