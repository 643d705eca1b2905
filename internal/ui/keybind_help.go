package ui

import (
	"github.com/charmbracelet/bubbles/help"
)

// newHelpModel returns a help model with the shared styling.
func newHelpModel() help.Model {
	m := help.New()
	m.Styles.ShortKey = Styles.HelpKey
	m.Styles.ShortDesc = Styles.HelpDesc
	m.Styles.ShortSeparator = Styles.HelpSep
	m.Styles.FullKey = Styles.HelpKey
	m.Styles.FullDesc = Styles.HelpDesc
	m.Styles.FullSeparator = Styles.HelpSep
	return m
}

// RenderKeybindHelp renders the key help for km. The short form is a single
// line; the full form is boxed and split into columns.
func RenderKeybindHelp(m help.Model, km help.KeyMap, full bool) string {
	if !full {
		return m.ShortHelpView(km.ShortHelp())
	}
	content := m.FullHelpView(km.FullHelp())
	if content == "" {
		return ""
	}
	return Styles.HelpBox.Render(content)
}
