// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
// Results of gateway calls carry the request that produced them so the app
// can discard answers that no longer apply.
package messages

import (
	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments lists the extracted documents.
	ViewDocuments ViewType = iota
	// ViewReport shows the active document's report and conversation.
	ViewReport
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewReport:
		return "report"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DocumentsLoaded carries the result of the one-time document fetch.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentChosen is sent when the user asks for a document's report.
type DocumentChosen struct {
	DocumentID string
}

// ReportGenerated carries the outcome of a generation request.
type ReportGenerated struct {
	Request domain.GenerateRequest
	Report  *domain.AIReport
	Err     error
}

// MessageSubmitted is sent when the user sends a chat message.
type MessageSubmitted struct {
	Text string
}

// AnswerReceived carries the outcome of an ask request.
type AnswerReceived struct {
	Request domain.AskRequest
	Answer  string
	Err     error
}

// NoticeExpired dismisses the notice with the given sequence number.
type NoticeExpired struct {
	Seq uint64
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
