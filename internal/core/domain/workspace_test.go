package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedWorkspace(t *testing.T, docs ...Document) *Workspace {
	t.Helper()
	ws := NewWorkspace()
	require.True(t, ws.Store().BeginLoad())
	notice := ws.Store().CompleteLoad(docs, nil)
	require.True(t, notice.IsZero())
	return ws
}

func salaryDoc() Document {
	return Document{
		ID:           "1",
		DocumentType: "salary",
		Extracted:    map[string]any{"income": float64(50000)},
		CreatedAt:    time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWorkspace_LoadSingleDocument(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())

	require.Equal(t, 1, ws.Store().Len())
	assert.Equal(t, "salary", ws.Store().Documents()[0].DocumentType)
	assert.False(t, ws.Store().Loading())
}

func TestWorkspace_GenerateSeedsGreeting(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())

	req, notice, err := ws.SelectByID("1")
	require.NoError(t, err)
	assert.Equal(t, NoticeLoading, notice.Kind)
	assert.Equal(t, TextGenerating, notice.Text)
	assert.True(t, ws.Session().Generating())
	assert.Equal(t, map[string]any{"income": float64(50000)}, req.Extracted)

	notice = ws.CompleteGeneration(req, &AIReport{TotalIncome: 50000, TotalTaxOld: 2500}, nil)

	assert.Equal(t, NoticeSuccess, notice.Kind)
	require.NotNil(t, ws.Session().Report())
	assert.Equal(t, float64(50000), ws.Session().Report().TotalIncome)
	assert.False(t, ws.Session().Generating())
	require.Equal(t, 1, ws.Thread().Len())
	assert.Equal(t, Turn{Sender: SenderAssistant, Text: GreetingText}, ws.Thread().Turns()[0])
}

func TestWorkspace_StaleGenerationDiscarded(t *testing.T) {
	doc2 := Document{ID: "2", DocumentType: "form16"}
	ws := loadedWorkspace(t, salaryDoc(), doc2)

	req1, _, err := ws.SelectByID("1")
	require.NoError(t, err)
	req2, _, err := ws.SelectByID("2")
	require.NoError(t, err)

	notice := ws.CompleteGeneration(req1, &AIReport{TotalIncome: 50000}, nil)

	assert.True(t, notice.IsZero())
	assert.Nil(t, ws.Session().Report())
	assert.Equal(t, "2", ws.Session().ActiveDocumentID())
	assert.True(t, ws.Session().Generating())
	assert.Equal(t, 0, ws.Thread().Len())

	notice = ws.CompleteGeneration(req2, &AIReport{TotalIncome: 80000}, nil)
	assert.Equal(t, NoticeSuccess, notice.Kind)
	assert.Equal(t, float64(80000), ws.Session().Report().TotalIncome)
	assert.Equal(t, 1, ws.Thread().Len())
}

func TestWorkspace_AskFailureAppendsFallback(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())
	req, _, _ := ws.SelectByID("1")
	ws.CompleteGeneration(req, &AIReport{TotalIncome: 50000}, nil)

	ask, ok := ws.Send("What is my refund?")
	require.True(t, ok)
	assert.True(t, ws.CompleteAsk(ask, "", errors.New("connection refused")))

	turns := ws.Thread().Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, Turn{Sender: SenderUser, Text: "What is my refund?"}, turns[1])
	assert.Equal(t, Turn{Sender: SenderAssistant, Text: FallbackError}, turns[2])
}

func TestWorkspace_StaleFailureDiscarded(t *testing.T) {
	doc2 := Document{ID: "2"}
	ws := loadedWorkspace(t, salaryDoc(), doc2)

	req1, _, _ := ws.SelectByID("1")
	req2, _, _ := ws.SelectByID("2")

	notice := ws.CompleteGeneration(req1, nil, ErrGeneration)
	assert.True(t, notice.IsZero())
	assert.Equal(t, SessionGenerating, ws.Session().State())

	notice = ws.CompleteGeneration(req2, nil, ErrGeneration)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Equal(t, TextGenerationFailed, notice.Text)
	assert.Equal(t, SessionFailed, ws.Session().State())
	assert.Equal(t, "2", ws.Session().ActiveDocumentID())
}

func TestWorkspace_ReselectSameDocumentRetries(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())

	first, _, _ := ws.SelectByID("1")
	ws.CompleteGeneration(first, nil, ErrGeneration)
	require.Equal(t, SessionFailed, ws.Session().State())

	second, _, _ := ws.SelectByID("1")
	assert.True(t, ws.Session().Generating())
	assert.NotEqual(t, first.Token, second.Token)

	ws.CompleteGeneration(second, &AIReport{TotalIncome: 1}, nil)
	assert.Equal(t, SessionReady, ws.Session().State())
}

func TestWorkspace_SelectClearsReportAndThread(t *testing.T) {
	doc2 := Document{ID: "2"}
	ws := loadedWorkspace(t, salaryDoc(), doc2)
	req, _, _ := ws.SelectByID("1")
	ws.CompleteGeneration(req, &AIReport{TotalIncome: 50000}, nil)
	ask, _ := ws.Send("hi")
	ws.CompleteAsk(ask, "hello", nil)
	require.Equal(t, 3, ws.Thread().Len())

	_, _, err := ws.SelectByID("2")
	require.NoError(t, err)

	assert.Nil(t, ws.Session().Report())
	assert.Equal(t, 0, ws.Thread().Len())
}

func TestWorkspace_AnswerAfterReselectDiscarded(t *testing.T) {
	doc2 := Document{ID: "2"}
	ws := loadedWorkspace(t, salaryDoc(), doc2)
	req, _, _ := ws.SelectByID("1")
	ws.CompleteGeneration(req, &AIReport{}, nil)
	ask, ok := ws.Send("question")
	require.True(t, ok)

	ws.SelectByID("2")

	assert.False(t, ws.CompleteAsk(ask, "late answer", nil))
	assert.Equal(t, 0, ws.Thread().Len())
	assert.False(t, ws.Thread().Pending())
}

func TestWorkspace_SendCarriesSnapshots(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())
	req, _, _ := ws.SelectByID("1")
	ws.CompleteGeneration(req, &AIReport{TotalIncome: 50000}, nil)

	ask, ok := ws.Send("What is my refund?")

	require.True(t, ok)
	assert.Equal(t, "What is my refund?", ask.Message)
	require.NotNil(t, ask.Report)
	assert.Equal(t, float64(50000), ask.Report.TotalIncome)
	assert.Equal(t, map[string]any{"income": float64(50000)}, ask.UserData)

	// The snapshot does not alias session state.
	ask.Report.TotalIncome = 1
	assert.Equal(t, float64(50000), ws.Session().Report().TotalIncome)
}

func TestWorkspace_SendWithoutSelection(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())

	ask, ok := ws.Send("hello")

	require.True(t, ok)
	assert.Nil(t, ask.Report)
	assert.Equal(t, map[string]any{}, ask.UserData)
}

func TestWorkspace_SendNilExtractedUsesEmptyMap(t *testing.T) {
	ws := loadedWorkspace(t, Document{ID: "bare"})
	req, _, _ := ws.SelectByID("bare")
	assert.Equal(t, map[string]any{}, req.Extracted)
	ws.CompleteGeneration(req, &AIReport{}, nil)

	ask, ok := ws.Send("anything?")

	require.True(t, ok)
	assert.NotNil(t, ask.UserData)
	assert.Empty(t, ask.UserData)
}

func TestWorkspace_SelectByID_NotFound(t *testing.T) {
	ws := loadedWorkspace(t, salaryDoc())

	_, _, err := ws.SelectByID("missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, SessionIdle, ws.Session().State())
}

// Every accepted send grows the thread by exactly two turns.
func TestWorkspace_SendRoundTripAddsTwoTurns(t *testing.T) {
	outcomes := []struct {
		name   string
		answer string
		err    error
		want   string
	}{
		{"answer", "Your refund is 1200.", nil, "Your refund is 1200."},
		{"missing answer", "", nil, FallbackNoAnswer},
		{"whitespace answer kept", "  ", nil, "  "},
		{"network error", "", ErrAsk, FallbackError},
	}

	for _, tt := range outcomes {
		t.Run(tt.name, func(t *testing.T) {
			ws := loadedWorkspace(t, salaryDoc())
			req, _, _ := ws.SelectByID("1")
			ws.CompleteGeneration(req, &AIReport{}, nil)
			before := ws.Thread().Len()

			ask, ok := ws.Send("question")
			require.True(t, ok)
			require.True(t, ws.CompleteAsk(ask, tt.answer, tt.err))

			assert.Equal(t, before+2, ws.Thread().Len())
			last, _ := ws.Thread().Last()
			assert.Equal(t, tt.want, last.Text)
		})
	}
}
