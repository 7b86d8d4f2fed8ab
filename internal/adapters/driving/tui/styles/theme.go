// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the TUI palette. Positive and Negative double as the refund and
// tax-due colours in the report panel.
type Theme struct {
	Brand    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Subtle   lipgloss.Color
	Frame    lipgloss.Color
	Bar      lipgloss.Color
	Positive lipgloss.Color
	Pending  lipgloss.Color
	Negative lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Brand:    lipgloss.Color("#2563EB"),
		Accent:   lipgloss.Color("#06B6D4"),
		Text:     lipgloss.Color("#CDD6F4"),
		Subtle:   lipgloss.Color("#6C7086"),
		Frame:    lipgloss.Color("#45475A"),
		Bar:      lipgloss.Color("#181825"),
		Positive: lipgloss.Color("#A6E3A1"),
		Pending:  lipgloss.Color("#F9E2AF"),
		Negative: lipgloss.Color("#F38BA8"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Text.
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style

	// Notices and states.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Frames.
	Border     lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	Panel      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Report amounts: the regime with the lower tax, refunds and dues.
	LowerTax lipgloss.Style
	Refund   lipgloss.Style
	Due      lipgloss.Style

	// Conversation.
	UserTurn      lipgloss.Style
	AssistantTurn lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	frame := func(border lipgloss.Border, c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().BorderStyle(border).BorderForeground(c)
	}

	return &Styles{
		theme: theme,

		Title:    fg(theme.Brand).Bold(true),
		Subtitle: fg(theme.Accent).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Subtle),
		Label:    fg(theme.Accent).Bold(true),
		Help:     fg(theme.Subtle),

		Success: fg(theme.Positive),
		Warning: fg(theme.Pending),
		Error:   fg(theme.Negative),

		Border:     frame(lipgloss.RoundedBorder(), theme.Frame),
		Card:       frame(lipgloss.RoundedBorder(), theme.Frame).Padding(0, 1),
		ActiveCard: frame(lipgloss.ThickBorder(), theme.Brand).Padding(0, 1),
		Panel:      frame(lipgloss.RoundedBorder(), theme.Brand).Padding(0, 1),
		InputField: frame(lipgloss.RoundedBorder(), theme.Frame).Padding(0, 1),
		StatusBar:  fg(theme.Subtle).Background(theme.Bar).Padding(0, 1),

		LowerTax: fg(theme.Positive).Bold(true),
		Refund:   fg(theme.Positive),
		Due:      fg(theme.Negative),

		UserTurn:      fg(theme.Brand).Bold(true),
		AssistantTurn: fg(theme.Text),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
