package ports

import (
	"context"

	"github.com/stepedge/concierge/pkg/domain"
)

// SessionStore persists per-conversation state. Implementations must be safe
// for concurrent use; turn-level serialization is the session manager's job.
type SessionStore interface {
	// Save persists the session for a given id.
	Save(ctx context.Context, sessionID string, sess *domain.Session) error

	// Load retrieves the session for a given id.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given id.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of known sessions.
	List(ctx context.Context) ([]string, error)
}
