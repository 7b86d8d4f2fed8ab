// Package status provides the status bar component for the TUI.
// The bar shows toast notices on the left and keybinding hints on the right.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// NoticeDuration is how long success and error notices stay visible.
// Loading notices stay until replaced.
const NoticeDuration = 3 * time.Second

// Bar displays the current notice and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	notice   domain.Notice
	seq      uint64
	message  string
	bindings []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		bindings: km.ShortHelp(),
		width:    80,
	}
}

// Show displays n, replacing any current notice. The returned command
// expires it after NoticeDuration unless it is a loading notice.
// A zero notice changes nothing and returns nil.
func (s *Bar) Show(n domain.Notice) tea.Cmd {
	if n.IsZero() {
		return nil
	}
	s.seq++
	s.notice = n

	if n.Kind == domain.NoticeLoading {
		return nil
	}
	seq := s.seq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return messages.NoticeExpired{Seq: seq}
	})
}

// Expire clears the notice if it is still the one numbered seq.
func (s *Bar) Expire(seq uint64) {
	if seq == s.seq {
		s.notice = domain.Notice{}
	}
}

// Dismiss clears the current notice.
func (s *Bar) Dismiss() {
	s.seq++
	s.notice = domain.Notice{}
}

// Notice returns the visible notice.
func (s *Bar) Notice() domain.Notice {
	return s.notice
}

// Seq returns the sequence number of the latest notice.
func (s *Bar) Seq() uint64 {
	return s.seq
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the notice, or the idle message.
func (s *Bar) renderLeft() string {
	switch s.notice.Kind {
	case domain.NoticeLoading:
		return s.styles.Warning.Render(s.notice.Text)
	case domain.NoticeSuccess:
		return s.styles.Success.Render(s.notice.Text)
	case domain.NoticeError:
		return s.styles.Error.Render(s.notice.Text)
	case domain.NoticeNone:
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetBindings sets the hints shown on the right.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetMessage sets the text shown when there is no notice.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the idle message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
