package driven

import (
	"context"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// AssistantGateway reaches the remote tax backend.
//
// Every method makes exactly one attempt: no retries, no backoff.
// Failures are wrapped with the operation's domain error (domain.ErrLoad,
// domain.ErrGeneration, domain.ErrAsk) and additionally with
// domain.ErrMalformedResponse when a 2xx body breaks the contract.
type AssistantGateway interface {
	// FetchDocuments returns the extracted documents in backend order.
	FetchDocuments(ctx context.Context) ([]domain.Document, error)

	// GenerateReport produces the report for one document's extracted data.
	GenerateReport(ctx context.Context, extracted map[string]any) (*domain.AIReport, error)

	// Ask sends a question with the report and document context.
	// It returns an empty string when the backend replied without an answer.
	Ask(ctx context.Context, req domain.AskRequest) (string, error)
}
