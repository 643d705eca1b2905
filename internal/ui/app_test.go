package ui

import (
	"testing"

	"cardstack/internal/gesture"
	"cardstack/internal/stack"
	"cardstack/internal/trace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, withTrace bool) (*AppModel, tea.Model) {
	t.Helper()
	opts := Options{Cards: cardsOf("alpha", "beta", "gamma"), VisibleCount: 3}
	if withTrace {
		traces := trace.NewManager(5, nil)
		obs := stack.NewTracingObserver(traces, "test", nil)
		opts.Observer = obs
		opts.Traces = traces
		opts.TraceID = obs.TraceID()
	}
	app := NewAppModel(opts)
	app.Swipe.Scheduler.tick = instantTick
	t.Cleanup(app.Swipe.Controller.Close)

	model := app.AsTeaModel()
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, model
}

// press sends a key and feeds the resulting messages back into the model.
func press(t *testing.T, model tea.Model, k string) []tea.Msg {
	t.Helper()
	_, cmd := model.Update(keyMsg(k))
	return pump(t, model, cmd)
}

// pump delivers every message from cmd, returning the ones that were not
// consumed by the model (such as tea.QuitMsg).
func pump(t *testing.T, model tea.Model, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var unhandled []tea.Msg
	for _, msg := range collectMsgs(t, cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			unhandled = append(unhandled, msg)
			continue
		}
		_, next := model.Update(msg)
		unhandled = append(unhandled, pump(t, model, next)...)
	}
	return unhandled
}

func TestAppModel_ArrowKeySwipesAndSettles(t *testing.T) {
	app, model := newTestApp(t, false)

	press(t, model, "right")
	assert.Equal(t, gesture.Right, app.Swipe.LastSwipe)
	assert.Equal(t, 1, app.Swipe.Controller.State().ShownIndex)

	press(t, model, "k")
	assert.Equal(t, gesture.Up, app.Swipe.LastSwipe)
	assert.Equal(t, 2, app.Swipe.Controller.State().ShownIndex)
}

func TestAppModel_AddAndVisibleKeys(t *testing.T) {
	app, model := newTestApp(t, false)

	press(t, model, "a")
	assert.Equal(t, 4, app.Swipe.Controller.State().Total)

	press(t, model, "+")
	press(t, model, "=")
	assert.Equal(t, 5, app.Swipe.Requested)
	press(t, model, "-")
	assert.Equal(t, 4, app.Swipe.Requested)
}

func TestAppModel_Quit(t *testing.T) {
	_, model := newTestApp(t, false)
	for _, k := range []string{"q", "ctrl+c"} {
		msgs := press(t, model, k)
		require.Len(t, msgs, 1, k)
		assert.IsType(t, tea.QuitMsg{}, msgs[0])
	}
}

func TestAppModel_HelpToggleReservesRows(t *testing.T) {
	app, model := newTestApp(t, false)
	short := app.Swipe.Controller.State().Container.Height

	press(t, model, "?")
	assert.True(t, app.ShowHelp)
	assert.Greater(t, app.Swipe.Reserve, 1)
	assert.Less(t, app.Swipe.Controller.State().Container.Height, short)

	press(t, model, "?")
	assert.False(t, app.ShowHelp)
	assert.Equal(t, short, app.Swipe.Controller.State().Container.Height)
}

func TestAppModel_ViewIncludesHelp(t *testing.T) {
	_, model := newTestApp(t, false)
	out := plain(model.View())
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "swipe left")
	assert.NotContains(t, out, "trace", "no trace binding without a manager")
}

func TestAppModel_TraceScreen(t *testing.T) {
	app, model := newTestApp(t, true)

	// Start a swipe, then open the trace screen before it settles.
	_, cmd := model.Update(keyMsg("left"))
	var settles []tea.Msg
	for _, msg := range collectMsgs(t, cmd) {
		_, next := model.Update(msg)
		settles = append(settles, collectMsgs(t, next)...)
	}
	require.Len(t, settles, 1)
	require.Equal(t, stack.PhaseRemoving, app.Swipe.Controller.Phase())

	press(t, model, "t")
	require.Equal(t, ModeTrace, app.Mode)

	// Flick keys scroll the trace instead of swiping.
	press(t, model, "left")
	assert.Equal(t, 1, app.Swipe.Swipes)

	// The removal still settles while the trace is shown.
	model.Update(settles[0])
	assert.Equal(t, 1, app.Swipe.Controller.State().ShownIndex)

	out := plain(model.View())
	assert.Contains(t, out, "Session")
	assert.Contains(t, out, "gesture-1 left")
	assert.Contains(t, out, "removal-1 left")

	press(t, model, "esc")
	assert.Equal(t, ModeStack, app.Mode)
	assert.Contains(t, plain(model.View()), "beta")
}
