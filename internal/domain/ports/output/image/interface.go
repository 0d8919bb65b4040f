package image_store

import "context"

// Store keeps uploaded image blobs keyed by an opaque reference.
//
//go:generate mockery --name Store --dir . --output ../../../../../mocks/image --outpkg image_store_mock --filename Store.go
type Store interface {
	Store(ctx context.Context, data []byte, originalName string) (string, error)
	// Delete removes the blob behind ref. Empty or unknown refs are a no-op.
	Delete(ctx context.Context, ref string) error
}
