package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driven"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService runs gateway calls and normalises their failures.
// Each call is one gateway request made with the caller's context.
type AssistantService struct {
	gateway driven.AssistantGateway
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(gateway driven.AssistantGateway) *AssistantService {
	return &AssistantService{gateway: gateway}
}

// ListDocuments fetches the extracted documents.
func (s *AssistantService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	logger.Section("Document List")

	docs, err := s.gateway.FetchDocuments(ctx)
	if err != nil {
		logger.Warn("fetch documents: %v", err)
		return nil, classify(err, domain.ErrLoad)
	}

	logger.Debug("Fetched %d documents", len(docs))
	return docs, nil
}

// GenerateReport executes a generation request.
func (s *AssistantService) GenerateReport(ctx context.Context, req domain.GenerateRequest) (*domain.AIReport, error) {
	logger.Section("Report Generation")
	logger.Debug("Document: %s, token: %d, fields: %d", req.DocumentID, req.Token, len(req.Extracted))

	report, err := s.gateway.GenerateReport(ctx, req.Extracted)
	if err != nil {
		logger.Warn("generate report for %s: %v", req.DocumentID, err)
		return nil, classify(err, domain.ErrGeneration)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %w: empty report", domain.ErrGeneration, domain.ErrMalformedResponse)
	}

	logger.Debug("Report ready for %s", req.DocumentID)
	return report, nil
}

// Ask executes an ask request and returns the raw answer.
func (s *AssistantService) Ask(ctx context.Context, req domain.AskRequest) (string, error) {
	logger.Section("Assistant Question")
	logger.Debug("Epoch: %d, message length: %d, has report: %t", req.Epoch, len(req.Message), req.Report != nil)

	answer, err := s.gateway.Ask(ctx, req)
	if err != nil {
		logger.Warn("ask: %v", err)
		return "", classify(err, domain.ErrAsk)
	}
	return answer, nil
}

// classify guarantees err carries the operation's domain error.
func classify(err, op error) error {
	if errors.Is(err, op) {
		return err
	}
	return fmt.Errorf("%w: %w", op, err)
}
