package pubchem

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the identifier could not be resolved at PubChem.
	ErrNotFound = errors.New("compound not found")

	// ErrInvalidCID is returned for non-positive compound identifiers.
	ErrInvalidCID = errors.New("invalid compound identifier")
)

// StatusError reports a non-success HTTP status from the PubChem API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pubchem: HTTP %d for %s", e.StatusCode, e.URL)
}
