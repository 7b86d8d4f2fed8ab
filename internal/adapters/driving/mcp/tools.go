package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single extracted document.
type DocumentOutput struct {
	ID           string         `json:"id"`
	DocumentType string         `json:"document_type"`
	Extracted    map[string]any `json:"extracted"`
	CreatedAt    string         `json:"created_at,omitempty"`
}

// SelectDocumentInput is the input schema for the select_document tool.
type SelectDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to generate a tax report for"`
}

// ReportOutput is the output schema for the select_document tool.
type ReportOutput struct {
	DocumentID         string  `json:"document_id"`
	TotalIncome        float64 `json:"total_income"`
	TotalTaxOld        float64 `json:"total_tax_old"`
	TotalTaxNew        float64 `json:"total_tax_new"`
	TaxDueOrRefundOld  float64 `json:"tax_due_or_refund_old"`
	TaxDueOrRefundNew  float64 `json:"tax_due_or_refund_new"`
	InvestmentInsights string  `json:"investment_insights,omitempty"`
	Greeting           string  `json:"greeting,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"the question for the tax assistant about the selected document's report"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string       `json:"answer"`
	Turns  []TurnOutput `json:"turns"`
}

// TurnOutput is one conversation turn.
type TurnOutput struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the extracted tax documents with their fields",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_document",
		Description: "Select a document and generate its AI tax report comparing the old and new regimes",
	}, s.handleSelectDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the tax assistant a question about the selected document's report",
	}, s.handleAsk)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Desk.Load(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i])
	}
	return nil, output, nil
}

// handleSelectDocument handles the select_document tool invocation.
func (s *Server) handleSelectDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectDocumentInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	if input.DocumentID == "" {
		return nil, ReportOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	report, notice, err := s.ports.Desk.Select(ctx, input.DocumentID)
	if err != nil {
		if !notice.IsZero() {
			return nil, ReportOutput{}, fmt.Errorf("%s: %w", notice.Text, err)
		}
		return nil, ReportOutput{}, err
	}

	output := toReportOutput(input.DocumentID, report)
	if turns := s.ports.Desk.Snapshot().Turns; len(turns) > 0 {
		output.Greeting = turns[0].Text
	}
	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	turns, err := s.ports.Desk.Send(ctx, input.Message)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{Turns: toTurnOutputs(turns)}
	for _, turn := range turns {
		if turn.Sender == domain.SenderAssistant {
			output.Answer = turn.Text
		}
	}
	return nil, output, nil
}

func toDocumentOutput(doc *domain.Document) DocumentOutput {
	out := DocumentOutput{
		ID:           doc.ID,
		DocumentType: doc.TypeLabel(),
		Extracted:    doc.ExtractedOrEmpty(),
	}
	if !doc.CreatedAt.IsZero() {
		out.CreatedAt = doc.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func toReportOutput(documentID string, r *domain.AIReport) ReportOutput {
	return ReportOutput{
		DocumentID:         documentID,
		TotalIncome:        r.TotalIncome,
		TotalTaxOld:        r.TotalTaxOld,
		TotalTaxNew:        r.TotalTaxNew,
		TaxDueOrRefundOld:  r.TaxDueOrRefundOld,
		TaxDueOrRefundNew:  r.TaxDueOrRefundNew,
		InvestmentInsights: r.InvestmentInsights,
	}
}

func toTurnOutputs(turns []domain.Turn) []TurnOutput {
	out := make([]TurnOutput, len(turns))
	for i, turn := range turns {
		out[i] = TurnOutput{Sender: string(turn.Sender), Text: turn.Text}
	}
	return out
}
