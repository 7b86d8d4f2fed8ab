package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// mockGateway implements driven.AssistantGateway for testing.
type mockGateway struct {
	FetchDocumentsFunc func(ctx context.Context) ([]domain.Document, error)
	GenerateReportFunc func(ctx context.Context, extracted map[string]any) (*domain.AIReport, error)
	AskFunc            func(ctx context.Context, req domain.AskRequest) (string, error)
}

func (m *mockGateway) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	if m.FetchDocumentsFunc != nil {
		return m.FetchDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *mockGateway) GenerateReport(ctx context.Context, extracted map[string]any) (*domain.AIReport, error) {
	if m.GenerateReportFunc != nil {
		return m.GenerateReportFunc(ctx, extracted)
	}
	return &domain.AIReport{}, nil
}

func (m *mockGateway) Ask(ctx context.Context, req domain.AskRequest) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, req)
	}
	return "", nil
}

func TestAssistantService_ListDocuments(t *testing.T) {
	gw := &mockGateway{
		FetchDocumentsFunc: func(context.Context) ([]domain.Document, error) {
			return []domain.Document{{ID: "a"}, {ID: "b"}}, nil
		},
	}

	docs, err := NewAssistantService(gw).ListDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestAssistantService_ListDocuments_ClassifiesError(t *testing.T) {
	gw := &mockGateway{
		FetchDocumentsFunc: func(context.Context) ([]domain.Document, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := NewAssistantService(gw).ListDocuments(context.Background())

	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAssistantService_ListDocuments_OneRequestPerCallWithCallerContext(t *testing.T) {
	type ctxKey struct{}
	var seen []any
	gw := &mockGateway{
		FetchDocumentsFunc: func(ctx context.Context) ([]domain.Document, error) {
			seen = append(seen, ctx.Value(ctxKey{}))
			return []domain.Document{{ID: "a"}}, nil
		},
	}
	service := NewAssistantService(gw)

	_, err := service.ListDocuments(context.WithValue(context.Background(), ctxKey{}, "first"))
	require.NoError(t, err)
	_, err = service.ListDocuments(context.WithValue(context.Background(), ctxKey{}, "second"))
	require.NoError(t, err)

	assert.Equal(t, []any{"first", "second"}, seen)
}

func TestAssistantService_GenerateReport(t *testing.T) {
	var got map[string]any
	gw := &mockGateway{
		GenerateReportFunc: func(_ context.Context, extracted map[string]any) (*domain.AIReport, error) {
			got = extracted
			return &domain.AIReport{TotalIncome: 100}, nil
		},
	}
	req := domain.GenerateRequest{Token: 1, DocumentID: "a", Extracted: map[string]any{"x": 1.0}}

	report, err := NewAssistantService(gw).GenerateReport(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 100.0, report.TotalIncome)
	assert.Equal(t, req.Extracted, got)
}

func TestAssistantService_GenerateReport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.AIReport
		err    error
		wantIs []error
	}{
		{
			name:   "transport",
			err:    errors.New("timeout"),
			wantIs: []error{domain.ErrGeneration},
		},
		{
			name:   "malformed",
			err:    domain.ErrMalformedResponse,
			wantIs: []error{domain.ErrGeneration, domain.ErrMalformedResponse},
		},
		{
			name:   "already classified",
			err:    domain.ErrGeneration,
			wantIs: []error{domain.ErrGeneration},
		},
		{
			name:   "nil report",
			wantIs: []error{domain.ErrGeneration, domain.ErrMalformedResponse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{
				GenerateReportFunc: func(context.Context, map[string]any) (*domain.AIReport, error) {
					return tt.report, tt.err
				},
			}

			report, err := NewAssistantService(gw).GenerateReport(context.Background(), domain.GenerateRequest{})

			assert.Nil(t, report)
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, err, target)
			}
		})
	}
}

func TestAssistantService_Ask(t *testing.T) {
	gw := &mockGateway{
		AskFunc: func(_ context.Context, req domain.AskRequest) (string, error) {
			return "answer to " + req.Message, nil
		},
	}

	answer, err := NewAssistantService(gw).Ask(context.Background(), domain.AskRequest{Message: "q"})

	require.NoError(t, err)
	assert.Equal(t, "answer to q", answer)
}

func TestAssistantService_Ask_Error(t *testing.T) {
	gw := &mockGateway{
		AskFunc: func(context.Context, domain.AskRequest) (string, error) {
			return "", errors.New("502")
		},
	}

	answer, err := NewAssistantService(gw).Ask(context.Background(), domain.AskRequest{Message: "q"})

	assert.Empty(t, answer)
	assert.ErrorIs(t, err, domain.ErrAsk)
}
