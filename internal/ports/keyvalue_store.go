package ports

import "context"

// Port: a durable string-keyed store for serialized documents.
//
// The store is injected into the persistence gateway so tests can run
// against an in-memory substitute. Absence of a key is not an error:
// Get reports it through the boolean.
type KeyValueStore interface {
	// Return the value stored under key, and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
