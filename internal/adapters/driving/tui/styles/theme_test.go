package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	//nolint:misspell // lipgloss spells it Color
	accents := []lipgloss.Color{theme.Brand, theme.Accent, theme.Positive, theme.Pending, theme.Negative}

	seen := make(map[string]bool)
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[string(c)], "duplicate accent: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_KeepsTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Brand = lipgloss.Color("#FFFFFF")

	assert.Equal(t, theme, NewStyles(theme).Theme())
}

func TestStyles_RefundAndDueDiffer(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Theme().Positive, s.Refund.GetForeground())
	assert.Equal(t, s.Theme().Negative, s.Due.GetForeground())
	assert.True(t, s.LowerTax.GetBold())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":         s.Title,
		"Subtitle":      s.Subtitle,
		"Normal":        s.Normal,
		"Muted":         s.Muted,
		"Label":         s.Label,
		"Help":          s.Help,
		"Success":       s.Success,
		"Warning":       s.Warning,
		"Error":         s.Error,
		"Border":        s.Border,
		"Card":          s.Card,
		"ActiveCard":    s.ActiveCard,
		"Panel":         s.Panel,
		"InputField":    s.InputField,
		"StatusBar":     s.StatusBar,
		"LowerTax":      s.LowerTax,
		"Refund":        s.Refund,
		"Due":           s.Due,
		"UserTurn":      s.UserTurn,
		"AssistantTurn": s.AssistantTurn,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, lipgloss.Style{}, style)
			assert.Contains(t, style.Render("tax"), "tax")
		})
	}
}
