package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// Ensure Desk implements the interface.
var _ driving.DeskService = (*Desk)(nil)

// Desk drives a single workspace synchronously. Each call runs its
// gateway request to completion before returning, so one Desk behaves
// like a user who waits for every answer.
type Desk struct {
	mu        sync.Mutex
	assistant driving.AssistantService
	ws        *domain.Workspace
}

// NewDesk creates a desk over the given assistant service.
func NewDesk(assistant driving.AssistantService) *Desk {
	return &Desk{
		assistant: assistant,
		ws:        domain.NewWorkspace(),
	}
}

// Load fetches the documents on first use and returns the loaded list.
func (d *Desk) Load(ctx context.Context) ([]domain.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

// load must be called with d.mu held.
func (d *Desk) load(ctx context.Context) ([]domain.Document, error) {
	store := d.ws.Store()
	if store.BeginLoad() {
		docs, err := d.assistant.ListDocuments(ctx)
		if notice := store.CompleteLoad(docs, err); !notice.IsZero() {
			logger.Warn("%s (%v)", notice.Text, err)
		}
	}

	if store.Failed() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLoad, domain.TextLoadFailed)
	}

	docs := store.Documents()
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	return out, nil
}

// Select activates documentID and generates its report.
func (d *Desk) Select(ctx context.Context, documentID string) (*domain.AIReport, domain.Notice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.load(ctx); err != nil {
		return nil, domain.Notice{}, err
	}

	req, _, err := d.ws.SelectByID(documentID)
	if err != nil {
		return nil, domain.Notice{}, fmt.Errorf("document %q: %w", documentID, err)
	}

	report, genErr := d.assistant.GenerateReport(ctx, req)
	notice := d.ws.CompleteGeneration(req, report, genErr)
	if genErr != nil {
		return nil, notice, genErr
	}
	if report == nil {
		return nil, notice, domain.ErrGeneration
	}
	return d.ws.Session().Report().Clone(), notice, nil
}

// Send asks the assistant about the active report and returns the turns
// this call appended: the user's message and the reply or its fallback.
func (d *Desk) Send(ctx context.Context, text string) ([]domain.Turn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ws.Session().State() != domain.SessionReady {
		return nil, domain.ErrNoActiveDocument
	}
	thread := d.ws.Thread()
	if thread.Pending() {
		return nil, domain.ErrAskPending
	}

	before := thread.Len()
	req, ok := d.ws.Send(text)
	if !ok {
		return []domain.Turn{}, nil
	}

	answer, err := d.assistant.Ask(ctx, req)
	if err != nil {
		logger.Warn("ask failed: %v", err)
	}
	d.ws.CompleteAsk(req, answer, err)

	return thread.Turns()[before:], nil
}

// Snapshot returns a copy of the desk's state.
func (d *Desk) Snapshot() driving.DeskSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	session := d.ws.Session()
	return driving.DeskSnapshot{
		ActiveDocumentID: session.ActiveDocumentID(),
		State:            session.State(),
		Report:           session.Report().Clone(),
		Turns:            d.ws.Thread().Turns(),
	}
}
