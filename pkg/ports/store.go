package ports

import (
	"context"

	"github.com/edulab/stepwise/pkg/domain"
)

// TimelineStore defines the interface for persisting timeline snapshots.
// This allows sessions to be resumed after a restart or shared between
// replicas.
type TimelineStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.TimelineSnapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.TimelineSnapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
