package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for taxdesk resources.
	uriScheme = "taxdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all extracted tax documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for one document's extracted fields.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Extracted fields of a specific document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	// The report for the selected document.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "AI tax report for the selected document",
		MIMEType:    "application/json",
	}, s.handleReportResource)

	// The conversation about the selected document.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "conversation",
		Name:        "conversation",
		Description: "Conversation with the tax assistant about the selected document",
		MIMEType:    "application/json",
	}, s.handleConversationResource)
}

// handleDocumentsResource returns the list of documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Desk.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	outputs := make([]DocumentOutput, len(docs))
	for i := range docs {
		outputs[i] = toDocumentOutput(&docs[i])
	}
	return jsonResult(req.Params.URI, outputs, "documents")
}

// handleDocumentResource returns one document's extracted fields.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: taxdesk://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Desk.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	for i := range docs {
		if docs[i].ID == docID {
			return jsonResult(req.Params.URI, toDocumentOutput(&docs[i]), "document")
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleReportResource returns the selected document's report.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot := s.ports.Desk.Snapshot()
	if snapshot.State != domain.SessionReady || snapshot.Report == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, toReportOutput(snapshot.ActiveDocumentID, snapshot.Report), "report")
}

// handleConversationResource returns the conversation turns.
func (s *Server) handleConversationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, toTurnOutputs(s.ports.Desk.Snapshot().Turns), "conversation")
}

// jsonResult wraps v as a JSON resource.
func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like taxdesk://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
