// Package repository defines the activity registry store and its in-memory
// implementation.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/activity"
)

// Store provides read/write access to the activity registry.
//
// The set of activities is fixed when the store is built; only participant
// lists change. Every returned value is a deep copy.
type Store interface {
	// List returns all activities in registry order.
	List(ctx context.Context) (activity.Catalog, error)

	// Get returns one activity. Returns ErrNotFound for unknown names.
	Get(ctx context.Context, name string) (activity.Activity, error)

	// AddParticipant appends email to the activity's participants.
	// Returns ErrNotFound or ErrAlreadySignedUp.
	AddParticipant(ctx context.Context, name, email string) (activity.Activity, error)

	// RemoveParticipant removes email from the activity's participants,
	// preserving the order of the rest. Returns ErrNotFound or ErrNotSignedUp.
	RemoveParticipant(ctx context.Context, name, email string) (activity.Activity, error)

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Close releases the store; later calls fail with ErrClosed.
	Close() error
}
