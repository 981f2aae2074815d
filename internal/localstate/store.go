// Package localstate persists the small key/value state that survives restarts:
// the connected wallet's display fields and the owner DID.
package localstate

import "context"

// Store is a namespaced string key/value store. Get returns sentinel.ErrNotFound
// for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
