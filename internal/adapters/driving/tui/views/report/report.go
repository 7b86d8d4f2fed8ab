// Package report provides the report and conversation view for the TUI.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// Texts shown by the view.
const (
	TextHeading  = "AI Tax Report"
	TextInsights = "Investment Insights"
	TextChat     = "Ask Tax Bot"
	TextWaiting  = "Waiting for the assistant..."
	TextRetry    = "Press r to try again."
)

// Focus identifies the component receiving keys.
type Focus int

const (
	// FocusInput sends keys to the chat input.
	FocusInput Focus = iota
	// FocusConversation scrolls the conversation.
	FocusConversation
)

// View shows the active document's report and its conversation. It reads
// the workspace; sending and retrying are reported with messages.
type View struct {
	styles *styles.Styles
	ws     *domain.Workspace

	input        *input.ChatInput
	conversation viewport.Model
	spinner      spinner.Model
	focus        Focus
	turns        int
	width        int
	height       int
}

// NewView creates a new report view over ws.
func NewView(s *styles.Styles, ws *domain.Workspace) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	v := &View{
		styles:       s,
		ws:           ws,
		input:        input.NewChatInput(s),
		conversation: viewport.New(76, 8),
		spinner:      sp,
		width:        80,
		height:       24,
	}
	return v
}

// Init starts the spinner and cursor blink.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.input.Init())
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.conversation.Width = max(width-4, 20)
	v.conversation.Height = max(height/3, 3)
	v.Refresh()
}

// Focus returns the focused component.
func (v *View) Focus() Focus {
	return v.focus
}

// InputValue returns the text being composed.
func (v *View) InputValue() string {
	return v.input.Value()
}

// ResetInput clears the chat input after a message was accepted.
func (v *View) ResetInput() {
	v.input.Reset()
}

// Reset returns the view to its initial focus with an empty input.
func (v *View) Reset() {
	v.input.Reset()
	v.focus = FocusInput
	v.input.Focus()
	v.turns = 0
	v.Refresh()
}

// Refresh rebuilds the conversation from the workspace and follows new turns.
func (v *View) Refresh() {
	thread := v.ws.Thread()
	v.conversation.SetContent(v.renderTurns(thread.Turns()))
	if thread.Len() != v.turns {
		v.turns = thread.Len()
		v.conversation.GotoBottom()
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	session := v.ws.Session()

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	case "tab":
		v.toggleFocus()
		return v, nil
	}

	if session.State() != domain.SessionReady {
		if msg.String() == "r" && session.State() == domain.SessionFailed {
			id := session.ActiveDocumentID()
			return v, func() tea.Msg {
				return messages.DocumentChosen{DocumentID: id}
			}
		}
		return v, nil
	}

	if v.focus == FocusConversation {
		var cmd tea.Cmd
		v.conversation, cmd = v.conversation.Update(msg)
		return v, cmd
	}

	if msg.Type == tea.KeyEnter {
		text := v.input.Value()
		return v, func() tea.Msg {
			return messages.MessageSubmitted{Text: text}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// toggleFocus moves focus between the input and the conversation.
func (v *View) toggleFocus() {
	if v.focus == FocusInput {
		v.focus = FocusConversation
		v.input.Blur()
		return
	}
	v.focus = FocusInput
	v.input.Focus()
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder

	doc, ok := v.ws.ActiveDocument()
	if !ok {
		b.WriteString(v.styles.Muted.Render("No document selected."))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(doc.TypeLabel()))
	b.WriteString(v.styles.Muted.Render("  " + doc.ID))
	b.WriteString("\n\n")

	session := v.ws.Session()
	switch session.State() {
	case domain.SessionGenerating:
		b.WriteString(v.spinner.View())
		b.WriteString(" ")
		b.WriteString(v.styles.Warning.Render(domain.TextGenerating))
	case domain.SessionFailed:
		b.WriteString(v.styles.Error.Render(domain.TextGenerationFailed))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(TextRetry))
	case domain.SessionReady:
		b.WriteString(v.renderReport(session.Report()))
		b.WriteString("\n\n")
		b.WriteString(v.renderChat())
	case domain.SessionIdle:
	}

	return b.String()
}

// renderReport renders the report panel.
func (v *View) renderReport(r *domain.AIReport) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(TextHeading))
	b.WriteString("\n")

	summary := r.Summary()
	labelWidth := 0
	for _, f := range summary {
		labelWidth = max(labelWidth, lipgloss.Width(f.Key))
	}
	for _, f := range summary {
		b.WriteString(v.styles.Label.Render(fmt.Sprintf("%-*s", labelWidth+1, f.Key+":")))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(f.Value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderRegimes(r))

	if strings.TrimSpace(r.InvestmentInsights) != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render(TextInsights))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(max(v.width-8, 20)).Render(r.InvestmentInsights))
	}

	return v.styles.Panel.Width(max(v.width-4, 20)).Render(b.String())
}

// renderRegimes renders the old and new regimes side by side, marking
// the one with less tax.
func (v *View) renderRegimes(r *domain.AIReport) string {
	regimes := r.Regimes()
	cols := make([]string, 0, len(regimes))
	for i, reg := range regimes {
		other := regimes[1-i]
		title := v.styles.Label.Render(reg.Name)
		if reg.Tax < other.Tax {
			title += " " + v.styles.LowerTax.Render("(lower tax)")
		}
		due := v.styles.Due.Render("Due " + domain.FormatAmount(reg.DueOrRefund))
		if reg.DueOrRefund < 0 {
			due = v.styles.Refund.Render("Refund " + domain.FormatAmount(-reg.DueOrRefund))
		}
		col := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"Tax "+domain.FormatAmount(reg.Tax),
			due,
		)
		cols = append(cols, v.styles.Border.Padding(0, 1).Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderChat renders the conversation and input.
func (v *View) renderChat() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(TextChat))
	b.WriteString("\n")
	b.WriteString(v.styles.Border.Render(v.conversation.View()))
	b.WriteString("\n")
	if v.ws.Thread().Pending() {
		b.WriteString(v.spinner.View())
		b.WriteString(" ")
		b.WriteString(v.styles.Muted.Render(TextWaiting))
		b.WriteString("\n")
	}
	b.WriteString(v.input.View())
	return b.String()
}

// renderTurns renders conversation turns, user messages right-aligned.
func (v *View) renderTurns(turns []domain.Turn) string {
	width := max(v.conversation.Width-2, 10)
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		if turn.Sender == domain.SenderUser {
			text := v.styles.UserTurn.Width(width * 4 / 5).Align(lipgloss.Right).Render(turn.Text)
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, text))
			continue
		}
		lines = append(lines, v.styles.AssistantTurn.Width(width*4/5).Render(turn.Text))
	}
	return strings.Join(lines, "\n\n")
}
