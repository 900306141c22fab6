package storage

import (
	"context"
	"io"
)

// ImageStore is the contract the inventory usecases consume: uploads
// return a canonical public URL, deletes take the URL previously
// returned.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
