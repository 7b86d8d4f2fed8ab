package domain

import "errors"

// Domain errors represent business logic failures.
// Gateway adapters wrap their causes with these so callers can classify
// failures with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Gateway Errors.

	// ErrLoad indicates the document list could not be fetched.
	// The store degrades to an empty list.
	ErrLoad = errors.New("document list unavailable")

	// ErrGeneration indicates the report for the selected document could
	// not be produced. The session stays reportless.
	ErrGeneration = errors.New("report generation failed")

	// ErrAsk indicates the assistant could not answer.
	// A fallback turn is appended instead.
	ErrAsk = errors.New("assistant unavailable")

	// ErrMalformedResponse indicates a collaborator answered 2xx with a body
	// that does not match the contract. It is always wrapped together with
	// the operation error (ErrLoad, ErrGeneration or ErrAsk).
	ErrMalformedResponse = errors.New("malformed response")

	// Session Errors.

	// ErrNoActiveDocument indicates an operation needs a selected document.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrAskPending indicates a message was sent while an answer is outstanding.
	ErrAskPending = errors.New("an answer is still pending")
)
