package driving

import (
	"context"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// AssistantService runs the remote calls on behalf of a front end.
// Errors are always classified with domain.ErrLoad, domain.ErrGeneration
// or domain.ErrAsk.
type AssistantService interface {
	// ListDocuments fetches the extracted documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GenerateReport executes a generation request.
	GenerateReport(ctx context.Context, req domain.GenerateRequest) (*domain.AIReport, error)

	// Ask executes an ask request and returns the raw answer.
	Ask(ctx context.Context, req domain.AskRequest) (string, error)
}
