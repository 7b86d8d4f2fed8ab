package driving

import (
	"context"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// DeskService drives one workspace synchronously for line-oriented front
// ends (CLI commands, MCP tools). Calls are serialised.
type DeskService interface {
	// Load fetches the documents once. Later calls return the loaded list.
	Load(ctx context.Context) ([]domain.Document, error)

	// Select activates a document and waits for its report.
	// The returned notice is what a toast would show.
	Select(ctx context.Context, documentID string) (*domain.AIReport, domain.Notice, error)

	// Send asks the assistant and returns the turns appended by this call.
	// Blank text appends nothing and returns no error.
	Send(ctx context.Context, text string) ([]domain.Turn, error)

	// Snapshot returns the active document ID, report and conversation.
	Snapshot() DeskSnapshot
}

// DeskSnapshot is a read-only copy of a desk's state.
type DeskSnapshot struct {
	ActiveDocumentID string
	State            domain.SessionState
	Report           *domain.AIReport
	Turns            []domain.Turn
}
