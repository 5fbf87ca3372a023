package catalog

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for storing uploaded binary content.
// This interface will be implemented by the infrastructure layer (S3, local stub).
type ObjectStorage interface {
	// Put stores the content under the given key and returns the stored path
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes a stored object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ImageUpload carries one uploaded image through the application layer
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}
