package ui

import (
	"testing"
	"time"

	"cardstack/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// instantTick replaces tea.Tick so settle messages are produced without
// waiting.
func instantTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

// collectMsgs runs cmd and every command batched inside it.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// fakeClock is a settable time source for DragTracker.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func cardsOf(labels ...string) []deck.Card {
	cards := make([]deck.Card, len(labels))
	for i, l := range labels {
		cards[i] = deck.New(l, deck.ColorFor("blue"))
	}
	return cards
}

// plain strips styling from rendered output.
func plain(s string) string {
	return ansi.Strip(s)
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}
