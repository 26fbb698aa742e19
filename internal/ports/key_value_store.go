package ports

import "context"

// KeyValueStore is the client-side string store that holds the auth session.
// Get on a missing key returns an error wrapping domain.ErrKeyNotFound.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
