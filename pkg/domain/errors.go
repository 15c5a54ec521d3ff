package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session id cannot be found in the
// store. Callers recover by creating a fresh session.
var ErrSessionNotFound = errors.New("session not found")

// ErrCollaborator marks a failed or timed-out call to an external service
// (text generation, embedding search). It is recovered locally via the
// deterministic fallback and never surfaced to the user.
var ErrCollaborator = errors.New("collaborator unavailable")

// CatalogError reports a missing or malformed catalog source. It is the only
// fatal error class: the process cannot serve without a catalog.
type CatalogError struct {
	Source string
	Err    error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }
