package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, status
	ColorHighlight = "205" // Magenta - help keys
	ColorDanger    = "196" // Red - non-right swipes
	ColorSuccess   = "46"  // Green - right swipes
	ColorMuted     = "241" // Gray - hints
	ColorText      = "252" // Light gray - normal text
	ColorInkDark   = "16"  // Card text on light cards
	ColorInkLight  = "231" // Card text on dark cards
)

// lightCards lists card colors that need dark ink.
var lightCards = map[string]bool{
	"226": true, // yellow
	"46":  true, // green
	"213": true, // pink
	"208": true, // orange
}

// inkFor returns the text color for a card of the given background.
func inkFor(bg string) string {
	if lightCards[bg] {
		return ColorInkDark
	}
	return ColorInkLight
}

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title      lipgloss.Style // Bold accent - header title
	Status     lipgloss.Style // Accent - position and visible count
	Muted      lipgloss.Style // Dimmed text
	Empty      lipgloss.Style // Exhausted stack placeholder
	BadgeRight lipgloss.Style // Last swipe was right
	BadgeOther lipgloss.Style // Last swipe was up, down or left
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	HelpSep    lipgloss.Style
	HelpBox    lipgloss.Style // Border around the full help
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	BadgeRight: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color(ColorInkDark)).
		Background(lipgloss.Color(ColorSuccess)),
	BadgeOther: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color(ColorInkLight)).
		Background(lipgloss.Color(ColorDanger)),
	HelpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	HelpDesc: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HelpSep: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
}
