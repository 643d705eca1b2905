package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps keys to commands. Keys use tea.KeyMsg.String()
// notation ("q", "ctrl+c", "left") except that space is written "SPC".
// A key may carry different commands in different modes.
type KeybindRegistry struct {
	bindings map[string][]modeCmd
	help     []hint // registration order, described bindings only
}

type modeCmd struct {
	cmd   tea.Cmd
	modes []AppMode // nil/empty = applies to all modes
}

type hint struct {
	binding key.Binding
	modes   []AppMode
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string][]modeCmd)}
}

// Bind registers keys to a command in every mode, without a help entry.
// Overwrites any existing binding for those keys.
func (r *KeybindRegistry) Bind(cmd tea.Cmd, keys ...string) {
	r.BindForMode(cmd, nil, keys...)
}

// BindForMode registers keys to a command that only applies in modes.
// If modes is nil or empty, the binding applies to all modes. Existing
// bindings of the same keys in overlapping modes are replaced.
func (r *KeybindRegistry) BindForMode(cmd tea.Cmd, modes []AppMode, keys ...string) {
	for _, k := range keys {
		n := normalizeKey(k)
		kept := slices.DeleteFunc(r.bindings[n], func(mc modeCmd) bool {
			return modesOverlap(mc.modes, modes)
		})
		r.bindings[n] = append(kept, modeCmd{cmd: cmd, modes: modes})
	}
}

// BindWithDesc registers keys in every mode and lists them in the help view
// under desc.
func (r *KeybindRegistry) BindWithDesc(desc string, cmd tea.Cmd, keys ...string) {
	r.BindWithDescForMode(desc, cmd, nil, keys...)
}

// BindWithDescForMode registers keys with a description and mode filter.
// The help label joins the keys with "/".
func (r *KeybindRegistry) BindWithDescForMode(desc string, cmd tea.Cmd, modes []AppMode, keys ...string) {
	r.BindForMode(cmd, modes, keys...)
	if desc == "" || len(keys) == 0 {
		return
	}
	r.help = append(r.help, hint{
		binding: key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		),
		modes: modes,
	})
}

// Lookup returns the command for a key in mode, or nil if not bound there.
func (r *KeybindRegistry) Lookup(k string, mode AppMode) tea.Cmd {
	for _, mc := range r.bindings[normalizeKey(k)] {
		if appliesToMode(mc.modes, mode) {
			return mc.cmd
		}
	}
	return nil
}

// Hints returns the described bindings for mode in registration order.
func (r *KeybindRegistry) Hints(mode AppMode) []key.Binding {
	var out []key.Binding
	for _, h := range r.help {
		if appliesToMode(h.modes, mode) {
			out = append(out, h.binding)
		}
	}
	return out
}

func appliesToMode(modes []AppMode, mode AppMode) bool {
	return len(modes) == 0 || slices.Contains(modes, mode)
}

func modesOverlap(a, b []AppMode) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, m := range a {
		if slices.Contains(b, m) {
			return true
		}
	}
	return false
}

// normalizeKey converts tea key strings to our canonical format.
func normalizeKey(k string) string {
	if k == " " || k == "space" {
		return "SPC"
	}
	return k
}

// KeyHandler dispatches key messages to the registry.
type KeyHandler struct {
	Registry *KeybindRegistry
}

// NewKeyHandler creates a handler over reg.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Handle processes a KeyMsg in mode. Returns (consumed, cmd).
// If consumed is true, the key was bound and should not be passed to views.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	if h.Registry == nil {
		return false, nil
	}
	if c := h.Registry.Lookup(msg.String(), mode); c != nil {
		return true, c
	}
	return false, nil
}

// KeyMap implements help.KeyMap for one mode of a registry.
type KeyMap struct {
	registry  *KeybindRegistry
	mode      AppMode
	perColumn int
}

// NewKeyMap creates a KeyMap whose full help splits bindings into columns
// of at most perColumn entries.
func NewKeyMap(registry *KeybindRegistry, mode AppMode, perColumn int) help.KeyMap {
	return &KeyMap{registry: registry, mode: mode, perColumn: max(perColumn, 1)}
}

// ShortHelp returns every described binding for the mode.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	return km.registry.Hints(km.mode)
}

// FullHelp returns bindings grouped by columns for the full help view.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	var cols [][]key.Binding
	for len(short) > km.perColumn {
		cols = append(cols, short[:km.perColumn])
		short = short[km.perColumn:]
	}
	return append(cols, short)
}
