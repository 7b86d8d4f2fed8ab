// Package documents provides the extracted documents list view for the TUI.
package documents

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// Texts shown by the view.
const (
	TextLoading     = "Loading reports..."
	TextEmpty       = "No reports found."
	TextNoExtracted = "No extracted data available."
)

// timeLayout formats upload times.
const timeLayout = "2 Jan 2006 15:04"

// View lists the documents held by the workspace. It only reads the
// workspace; choosing a document is reported with messages.DocumentChosen.
type View struct {
	styles *styles.Styles
	ws     *domain.Workspace

	selected     int
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new documents view over ws.
func NewView(s *styles.Styles, ws *domain.Workspace) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		ws:     ws,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	docs := v.ws.Store().Documents()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(docs)-1 {
			v.selected++
		}
	case "home", "g":
		v.selected = 0
	case "end", "G":
		if len(docs) > 0 {
			v.selected = len(docs) - 1
		}
	case "enter":
		if v.selected < len(docs) {
			id := docs[v.selected].ID
			return v, func() tea.Msg {
				return messages.DocumentChosen{DocumentID: id}
			}
		}
	case "?":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	v.adjustScroll()
	return v, nil
}

// adjustScroll keeps the highlighted card on screen.
func (v *View) adjustScroll() {
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
		return
	}
	docs := v.ws.Store().Documents()
	for v.scrollOffset < v.selected {
		lines := 0
		for i := v.scrollOffset; i <= v.selected && i < len(docs); i++ {
			lines += strings.Count(v.renderCard(i, &docs[i]), "\n") + 1
		}
		if lines <= v.availableLines() {
			return
		}
		v.scrollOffset++
	}
}

// availableLines returns the lines left for cards.
func (v *View) availableLines() int {
	// Title, blank line and scroll indicator
	available := v.height - 4
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder
	store := v.ws.Store()

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Extracted Documents (%d)", store.Len())))
	b.WriteString("\n\n")

	if store.Loading() {
		b.WriteString(v.styles.Muted.Render(TextLoading))
		return b.String()
	}

	docs := store.Documents()
	if len(docs) == 0 {
		b.WriteString(v.styles.Muted.Render(TextEmpty))
		return b.String()
	}

	used := 0
	shown := 0
	for i := v.scrollOffset; i < len(docs); i++ {
		card := v.renderCard(i, &docs[i])
		height := strings.Count(card, "\n") + 1
		if shown > 0 && used+height > v.availableLines() {
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
		used += height
		shown++
	}

	if shown < len(docs) {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, v.scrollOffset+shown, len(docs))))
	}

	return b.String()
}

// renderCard renders one document with its extracted fields.
func (v *View) renderCard(index int, doc *domain.Document) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(doc.TypeLabel()))
	if badge := v.badge(doc.ID); badge != "" {
		b.WriteString("  ")
		b.WriteString(badge)
	}
	b.WriteString("\n")

	if doc.HasExtracted() {
		for _, f := range doc.Fields() {
			b.WriteString(v.styles.Label.Render(f.Key + ":"))
			b.WriteString(" ")
			b.WriteString(v.styles.Normal.Render(f.Value))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(v.styles.Muted.Render(TextNoExtracted))
		b.WriteString("\n")
	}

	uploaded := "unknown"
	if !doc.CreatedAt.IsZero() {
		uploaded = doc.CreatedAt.Local().Format(timeLayout)
	}
	b.WriteString(v.styles.Muted.Render("Uploaded on: " + uploaded))

	style := v.styles.Card
	if index == v.selected {
		style = v.styles.ActiveCard
	}
	cardWidth := v.width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	return style.Width(cardWidth).Render(b.String())
}

// badge describes the session state for the active document.
func (v *View) badge(id string) string {
	session := v.ws.Session()
	if session.ActiveDocumentID() != id {
		return ""
	}
	switch session.State() {
	case domain.SessionGenerating:
		return v.styles.Warning.Render("generating...")
	case domain.SessionReady:
		return v.styles.Success.Render("report ready")
	case domain.SessionFailed:
		return v.styles.Error.Render("report failed")
	case domain.SessionIdle:
	}
	return ""
}
