package ui

import (
	"cardstack/internal/gesture"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToggleHelpMsg switches between the short and the full key help.
type ToggleHelpMsg struct{}

// ShowTraceMsg opens the session trace screen.
type ShowTraceMsg struct{}

// ShowStackMsg returns to the card stack.
type ShowStackMsg struct{}

// helpColumn is the number of bindings per full-help column.
const helpColumn = 4

// AppModel is the root model. It switches between the card stack and the
// session trace, with the key help beneath either.
type AppModel struct {
	Mode       AppMode
	Swipe      *SwipeView
	Trace      *TraceView // nil when tracing is disabled
	KeyHandler *KeyHandler
	Help       help.Model
	ShowHelp   bool

	width, height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	if a.Trace != nil {
		return tea.Batch(a.Swipe.Init(), a.Trace.Init())
	}
	return a.Swipe.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleHelpMsg:
		a.ShowHelp = !a.ShowHelp
		a.layout()
		return a, nil
	case ShowTraceMsg:
		if a.Trace != nil {
			a.Mode = ModeTrace
			a.layout()
		}
		return a, nil
	case ShowStackMsg:
		a.Mode = ModeStack
		a.layout()
		return a, nil
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Help.Width = msg.Width
		a.Swipe.Reserve = a.helpHeight()
		if a.Trace != nil {
			a.Trace.SetSize(msg.Width, max(msg.Height-a.helpHeight(), 0))
		}
		return a, a.updateSwipe(msg)
	case settleMsg:
		// Removals keep settling while the trace screen is open.
		return a, a.updateSwipe(msg)
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
				return a, keyCmd
			}
		}
	}

	if a.Mode == ModeTrace && a.Trace != nil {
		v, cmd := a.Trace.Update(msg)
		if t, ok := v.(*TraceView); ok {
			a.Trace = t
		}
		return a, cmd
	}
	return a, a.updateSwipe(msg)
}

func (a *AppModel) updateSwipe(msg tea.Msg) tea.Cmd {
	v, cmd := a.Swipe.Update(msg)
	if s, ok := v.(*SwipeView); ok {
		a.Swipe = s
	}
	return cmd
}

// layout recomputes sizes after the help height changes.
func (a *AppModel) layout() {
	h := a.helpHeight()
	a.Swipe.SetReserve(h)
	if a.Trace != nil && a.width > 0 {
		a.Trace.SetSize(a.width, max(a.height-h, 0))
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var base string
	if a.Mode == ModeTrace && a.Trace != nil {
		base = a.Trace.View()
	} else {
		base = a.Swipe.View()
	}
	return base + "\n" + a.renderHelp()
}

func (a *AppModel) renderHelp() string {
	if a.KeyHandler == nil {
		return ""
	}
	return RenderKeybindHelp(a.Help, NewKeyMap(a.KeyHandler.Registry, a.Mode, helpColumn), a.ShowHelp)
}

func (a *AppModel) helpHeight() int {
	return lipgloss.Height(a.renderHelp())
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// NewKeybinds returns the stock key bindings. The trace screen binding is
// only offered when tracing is enabled.
func NewKeybinds(withTrace bool) *KeybindRegistry {
	stackOnly := []AppMode{ModeStack}
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("swipe left", send(FlickMsg{Direction: gesture.Left}), stackOnly, "left", "h")
	reg.BindWithDescForMode("swipe right", send(FlickMsg{Direction: gesture.Right}), stackOnly, "right", "l")
	reg.BindWithDescForMode("swipe up", send(FlickMsg{Direction: gesture.Up}), stackOnly, "up", "k")
	reg.BindWithDescForMode("swipe down", send(FlickMsg{Direction: gesture.Down}), stackOnly, "down", "j")
	reg.BindWithDescForMode("add card", send(AddCardMsg{}), stackOnly, "a")
	reg.BindWithDescForMode("more visible", send(VisibleDeltaMsg{Delta: 1}), stackOnly, "+", "=")
	reg.BindWithDescForMode("fewer visible", send(VisibleDeltaMsg{Delta: -1}), stackOnly, "-")
	if withTrace {
		reg.BindWithDescForMode("trace", send(ShowTraceMsg{}), stackOnly, "t")
		reg.BindWithDescForMode("back", send(ShowStackMsg{}), []AppMode{ModeTrace}, "esc", "t")
	}
	reg.BindWithDesc("help", send(ToggleHelpMsg{}), "?")
	reg.BindWithDesc("quit", tea.Quit, "q")
	reg.Bind(tea.Quit, "ctrl+c")
	return reg
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) *AppModel {
	m := &AppModel{
		Mode:       ModeStack,
		Swipe:      NewSwipeView(opts),
		KeyHandler: NewKeyHandler(NewKeybinds(opts.Traces != nil)),
		Help:       newHelpModel(),
	}
	if opts.Traces != nil {
		m.Trace = NewTraceView(opts.Traces, opts.TraceID)
	}
	return m
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
