package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, err := execute(t, nil, "ask", "demo-form16")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg(s)")
}

func TestAskCmd(t *testing.T) {
	gateway := setupTestServices(t)

	out, err := execute(t, nil, "ask", "demo-form16", "Which", "regime?")

	require.NoError(t, err)
	assert.Contains(t, out, "the old regime results in lower tax")
	assert.NotContains(t, out, domain.GreetingText)

	asked := gateway.Asked()
	require.Len(t, asked, 1)
	assert.Equal(t, "Which regime?", asked[0].Message)
	require.NotNil(t, asked[0].Report)
	assert.Equal(t, "Acme Analytics Pvt Ltd", asked[0].UserData["employer"])
}

func TestAskCmd_FailureFallback(t *testing.T) {
	gateway := setupTestServices(t)
	gateway.SetAnswerFunc(func(domain.AskRequest) (string, error) {
		return "", errors.New("connection reset")
	})

	out, err := execute(t, nil, "ask", "demo-form16", "What is my refund?")

	require.NoError(t, err)
	assert.Contains(t, out, domain.FallbackError)
}

func TestChatCmd(t *testing.T) {
	gateway := setupTestServices(t)
	gateway.SetAnswerFunc(func(req domain.AskRequest) (string, error) {
		return "answer to " + req.Message, nil
	})
	input := strings.NewReader("first question\n\n   \n/report\nsecond question\nexit\nnever sent\n")

	out, err := execute(t, input, "chat", "demo-ais")

	require.NoError(t, err)
	assert.Contains(t, out, domain.GreetingText)
	assert.Contains(t, out, "answer to first question")
	assert.Contains(t, out, "answer to second question")
	assert.Equal(t, 2, strings.Count(out, "AI Tax Report"))
	assert.NotContains(t, out, "> ")

	asked := gateway.Asked()
	require.Len(t, asked, 2)
	assert.Equal(t, "second question", asked[1].Message)
}

func TestChatCmd_EndsAtEOF(t *testing.T) {
	gateway := setupTestServices(t)

	_, err := execute(t, strings.NewReader("only question"), "chat", "demo-form16")

	require.NoError(t, err)
	assert.Len(t, gateway.Asked(), 1)
}

func TestChatCmd_EmptyAnswerFallback(t *testing.T) {
	gateway := setupTestServices(t)
	gateway.SetAnswerFunc(func(domain.AskRequest) (string, error) {
		return "", nil
	})

	out, err := execute(t, strings.NewReader("hello\n"), "chat", "demo-form16")

	require.NoError(t, err)
	assert.Contains(t, out, domain.FallbackNoAnswer)
}

func TestChatCmd_GenerationFailure(t *testing.T) {
	gateway := setupTestServices(t)
	gateway.SetReportFunc(func(map[string]any) (*domain.AIReport, error) {
		return nil, errors.New("boom")
	})

	_, err := execute(t, strings.NewReader("hello\n"), "chat", "demo-form16")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Empty(t, gateway.Asked())
}
