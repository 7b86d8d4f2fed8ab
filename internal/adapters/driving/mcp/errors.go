// Package mcp provides an MCP (Model Context Protocol) server adapter for taxdesk.
// It lets AI assistants like Claude read extracted tax documents, generate
// reports and question the tax assistant through the same desk the CLI uses.
package mcp

import "errors"

// ErrMissingDeskService is returned when the desk service is not provided.
var ErrMissingDeskService = errors.New("mcp: desk service is required")
