package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen region with its own model, update and view. The root
// AppModel adapts a View into a tea.Model.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
