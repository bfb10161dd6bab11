// Package metadata stores small key/value records in the client database.
// The credential store keeps the bearer token here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns found=false, and no error, when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
