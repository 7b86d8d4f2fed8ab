package mcp

import (
	"context"

	"github.com/custodia-labs/taxdesk/internal/adapters/driven/memory"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
	"github.com/custodia-labs/taxdesk/internal/core/services"
)

// mockDeskService is a mock implementation of driving.DeskService.
type mockDeskService struct {
	docs     []domain.Document
	report   *domain.AIReport
	notice   domain.Notice
	turns    []domain.Turn
	snapshot driving.DeskSnapshot
	err      error

	selected string
	sent     string
}

func (m *mockDeskService) Load(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDeskService) Select(_ context.Context, id string) (*domain.AIReport, domain.Notice, error) {
	m.selected = id
	return m.report, m.notice, m.err
}

func (m *mockDeskService) Send(_ context.Context, text string) ([]domain.Turn, error) {
	m.sent = text
	return m.turns, m.err
}

func (m *mockDeskService) Snapshot() driving.DeskSnapshot {
	return m.snapshot
}

// newDemoServer returns a server over a real desk and in-memory backend.
func newDemoServer() (*Server, *memory.Gateway, error) {
	gateway := memory.NewGateway(memory.DemoDocuments()...)
	desk := services.NewDesk(services.NewAssistantService(gateway))
	server, err := NewServer(NewPorts(desk))
	return server, gateway, err
}
