package enrich

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry policy with a non-positive
	// attempt bound.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than zero")

	// ErrNilRecord indicates enrichment was requested for a nil record.
	ErrNilRecord = errors.New("record is nil")
)
