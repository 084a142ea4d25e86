// Package storage persists uploaded photos and hands back public URLs.
// Two backends exist: local disk (development default) and S3-compatible
// object storage. Callers never learn which one is in use.
package storage

import (
	"context"
)

type Store interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
