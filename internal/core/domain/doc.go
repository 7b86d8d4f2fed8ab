// Package domain defines the core business entities for taxdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A previously extracted tax document
//   - AIReport: The tax summary generated for one document
//   - Turn: One message in the assistant conversation
//   - Workspace: The report store, session and conversation owned by a front end
//
// # State Ownership
//
// ReportStore, ReportSession and Conversation are plain structs with no
// internal locking. Exactly one goroutine owns a Workspace: the bubbletea
// Update loop for the TUI, or services.Desk for the CLI and MCP server.
// Remote calls are described by request values (GenerateRequest,
// AskRequest) that the owner executes and feeds back through the matching
// Complete method, which discards results that are no longer current.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
