package ui

import (
	"fmt"
	"strings"
	"time"

	"cardstack/internal/trace"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TraceView displays a stack session as an ASCII span tree.
type TraceView struct {
	manager  *trace.Manager
	traceID  string
	viewport viewport.Model
	width    int
	height   int
}

// Ensure TraceView implements View
var _ View = (*TraceView)(nil)

// NewTraceView creates a view of session traceID held by manager.
func NewTraceView(manager *trace.Manager, traceID string) *TraceView {
	vp := viewport.New(50, 20)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	return &TraceView{
		manager:  manager,
		traceID:  traceID,
		viewport: vp,
		width:    50,
		height:   20,
	}
}

// Init implements View
func (v *TraceView) Init() tea.Cmd {
	v.refreshContent()
	return v.viewport.Init()
}

// Update implements View
func (v *TraceView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			v.viewport.LineDown(1)
			return v, nil
		case "k", "up":
			v.viewport.LineUp(1)
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *TraceView) View() string {
	v.refreshContent()
	return v.viewport.View()
}

// SetSize sets the outer size of the trace view, border included.
func (v *TraceView) SetSize(width, height int) {
	v.width = width
	v.height = height
	frameW, frameH := v.viewport.Style.GetFrameSize()
	v.viewport.Width = max(width-frameW, 0)
	v.viewport.Height = max(height-frameH, 0)
	v.refreshContent()
}

// refreshContent rebuilds the viewport content from the session trace.
func (v *TraceView) refreshContent() {
	var tr *trace.Trace
	if v.manager != nil {
		tr = v.manager.GetTrace(v.traceID)
	}
	if tr == nil || tr.RootSpan == nil {
		v.viewport.SetContent("No session trace")
		return
	}

	root := tr.RootSpan
	statusIcon, statusColor := "✓", ColorSuccess
	if tr.Status == "running" {
		statusIcon, statusColor = "●", ColorHighlight
	}
	elapsed := root.Duration
	if elapsed == 0 {
		elapsed = time.Since(root.StartTime)
	}
	lines := []string{
		Styles.Title.Render(fmt.Sprintf("Session %s (%s)", shortTraceID(tr.ID), formatDuration(elapsed))) +
			" " + lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(statusIcon+" "+tr.Status),
		"",
	}
	if len(root.Children) == 0 {
		lines = append(lines, Styles.Muted.Render("  (no gestures yet)"))
	}
	for i, span := range root.Children {
		lines = append(lines, renderSpanLine(span, i == len(root.Children)-1))
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderSpanLine renders one gesture or removal span.
func renderSpanLine(span *trace.Span, isLast bool) string {
	connector := "├─"
	if isLast {
		connector = "└─"
	}
	name := span.Name
	if name == "" {
		name = "(unnamed)"
	}
	line := connector + " " + name
	if dir := span.Attributes["direction"]; dir != "" {
		line += " " + dir
	}
	if span.Attributes["cancelled"] == "true" {
		line += " " + Styles.Muted.Render("cancelled")
	}
	if span.Duration > 0 {
		line += " " + Styles.Muted.Render(formatDuration(span.Duration))
	} else {
		line += " " + Styles.Muted.Render("open")
	}
	return line
}

// formatDuration formats a duration at millisecond precision below a second.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d - m*time.Minute) / time.Second
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// shortTraceID returns a shortened version of the trace ID for display
func shortTraceID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}
