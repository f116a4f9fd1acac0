package driven

import "context"

// KeyValueStore holds serialized session values under string keys.
// Writes are last-write-wins; there are no transactions and no expiry.
type KeyValueStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Path describes where values live, e.g. a database file.
	// In-memory stores return an empty string.
	Path() string
}
