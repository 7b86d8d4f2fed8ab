package documents

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

func loadedWorkspace(docs ...domain.Document) *domain.Workspace {
	ws := domain.NewWorkspace()
	ws.Store().BeginLoad()
	ws.Store().CompleteLoad(docs, nil)
	return ws
}

func sampleDocs() []domain.Document {
	return []domain.Document{
		{ID: "a", DocumentType: "Form 16", Extracted: map[string]any{"pan": "ABCDE1234F", "gross_salary": 1200000.0}},
		{ID: "b", DocumentType: "AIS", Extracted: map[string]any{"interest_income": 4100.5}},
		{ID: "c"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Loading(t *testing.T) {
	v := NewView(styles.DefaultStyles(), domain.NewWorkspace())

	assert.Contains(t, v.View(), TextLoading)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, loadedWorkspace())

	assert.Contains(t, v.View(), TextEmpty)
}

func TestView_LoadFailureShowsEmpty(t *testing.T) {
	ws := domain.NewWorkspace()
	ws.Store().BeginLoad()
	ws.Store().CompleteLoad(nil, errors.New("offline"))

	v := NewView(nil, ws)

	assert.Contains(t, v.View(), TextEmpty)
}

func TestView_RendersCards(t *testing.T) {
	v := NewView(nil, loadedWorkspace(sampleDocs()...))
	v.SetDimensions(100, 60)

	out := v.View()

	assert.Contains(t, out, "Extracted Documents (3)")
	assert.Contains(t, out, "Form 16")
	assert.Contains(t, out, "gross_salary:")
	assert.Contains(t, out, "1200000")
	assert.Contains(t, out, "4100.5")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, TextNoExtracted)
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, loadedWorkspace(sampleDocs()...))

	v, _ = v.Update(key("j"))
	assert.Equal(t, 1, v.Selected())
	v, _ = v.Update(key("down"))
	v, _ = v.Update(key("down"))
	assert.Equal(t, 2, v.Selected())
	v, _ = v.Update(key("k"))
	assert.Equal(t, 1, v.Selected())
	v, _ = v.Update(key("g"))
	assert.Equal(t, 0, v.Selected())
	v, _ = v.Update(key("up"))
	assert.Equal(t, 0, v.Selected())
	v, _ = v.Update(key("G"))
	assert.Equal(t, 2, v.Selected())
}

func TestView_EnterChoosesDocument(t *testing.T) {
	v := NewView(nil, loadedWorkspace(sampleDocs()...))
	v, _ = v.Update(key("j"))

	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentChosen{DocumentID: "b"}, cmd())
}

func TestView_EnterWithoutDocuments(t *testing.T) {
	v := NewView(nil, loadedWorkspace())

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
}

func TestView_QuitAndHelp(t *testing.T) {
	v := NewView(nil, loadedWorkspace(sampleDocs()...))

	_, cmd := v.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())

	_, cmd = v.Update(key("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())
}

func TestView_ActiveBadge(t *testing.T) {
	ws := loadedWorkspace(sampleDocs()...)
	v := NewView(nil, ws)
	v.SetDimensions(100, 60)

	req, _, err := ws.SelectByID("a")
	require.NoError(t, err)
	assert.Contains(t, v.View(), "generating...")

	ws.CompleteGeneration(req, &domain.AIReport{}, nil)
	assert.Contains(t, v.View(), "report ready")
}

func TestView_ScrollKeepsSelectionVisible(t *testing.T) {
	docs := make([]domain.Document, 10)
	for i := range docs {
		docs[i] = domain.Document{ID: string(rune('a' + i)), DocumentType: "AIS"}
	}
	v := NewView(nil, loadedWorkspace(docs...))
	v.SetDimensions(80, 14)

	for i := 0; i < 9; i++ {
		v, _ = v.Update(key("j"))
	}

	assert.Equal(t, 9, v.Selected())
	assert.Positive(t, v.scrollOffset)
	assert.Contains(t, v.View(), "of 10]")
}
