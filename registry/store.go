/*
store.go - Key-value persistence port

PURPOSE:
  Defines the interface between the registry and whatever durable storage
  the host provides. The registry treats persistence as a flat key-value
  collaborator: write-through on every mutation, read-once at construction.

KEYS:
  days             serialized day sequence (pretty-printed JSON)
  targetHours      decimal string; present only while a target is set
  toleranceEnabled "true"/"false"; absent means false

IMPLEMENTATIONS:
  - registry/store/memory.go: in-memory, for tests and dev
  - store/sqlite/sqlite.go:   durable SQLite store
*/
package registry

import "context"

// Persistence keys. Absence of a key means "unset" and falls back to the
// documented default.
const (
	KeyDays        = "days"
	KeyTargetHours = "targetHours"
	KeyTolerance   = "toleranceEnabled"
)

// Store is the key-value persistence port. All operations are expected to
// complete synchronously or fail synchronously; there are no retry
// semantics at this layer.
type Store interface {
	// Get returns the value for key, and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
