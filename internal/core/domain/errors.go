package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown store backend or file format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingestion Errors.

	// ErrNoDocuments indicates an ingestion request carried no documents.
	ErrNoDocuments = errors.New("no documents provided")

	// ErrMalformedDocument indicates a document is missing its name or content.
	// The batch processor skips such documents instead of failing.
	ErrMalformedDocument = errors.New("malformed document")

	// Request Errors.

	// ErrUnknownDomain indicates a domain name outside the six organisational domains.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrUnknownAction indicates an unrecognised store mutation was requested.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoRoleSelected indicates a domain-scoped view was requested without a role.
	ErrNoRoleSelected = errors.New("no role selected")
)
