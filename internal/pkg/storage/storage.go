package storage

import "context"

// FileStorage is the object store used for clock selfies and leave/claim
// attachments. Put returns a stable URL that is persisted on the owning
// row; Get resolves it back to bytes.
type FileStorage interface {
	// Put stores data under folder/key and returns the public URL
	Put(ctx context.Context, data []byte, folder string, key string) (string, error)

	// Get retrieves the object behind a URL previously returned by Put
	Get(ctx context.Context, url string) ([]byte, error)

	// Delete removes the object behind a URL; deleting a missing object is not an error
	Delete(ctx context.Context, url string) error
}
