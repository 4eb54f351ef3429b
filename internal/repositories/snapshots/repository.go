// Package snapshots is the storage port for persisted combat snapshots.
// A snapshot is an opaque JSON string stored under a session-scoped key;
// a missing key means no combat is active for that session.
package snapshots

//go:generate mockgen -destination=mock/mock_repository.go -package=snapshotsmock github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots Repository

import "context"

// Repository defines the storage interface for combat snapshots
type Repository interface {
	// Load returns the session's snapshot. A missing snapshot is not an error:
	// Found is false instead.
	// Returns errors.InvalidArgument for an empty session ID
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save writes the snapshot, replacing any previous one
	// Returns errors.InvalidArgument for an empty session ID
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Clear removes the snapshot. Clearing a missing snapshot succeeds.
	// Returns errors.InvalidArgument for an empty session ID
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}

// LoadInput defines the request for loading a snapshot
type LoadInput struct {
	SessionID string
}

// LoadOutput defines the response for loading a snapshot
type LoadOutput struct {
	Snapshot string
	Found    bool
}

// SaveInput defines the request for saving a snapshot
type SaveInput struct {
	SessionID string
	Snapshot  string
}

// SaveOutput defines the response for saving a snapshot
type SaveOutput struct{}

// ClearInput defines the request for clearing a snapshot
type ClearInput struct {
	SessionID string
}

// ClearOutput defines the response for clearing a snapshot
type ClearOutput struct {
	// False when there was nothing to clear
	Existed bool
}

const errSessionIDEmpty = "session ID cannot be empty"
