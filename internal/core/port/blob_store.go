package port

import "context"

// BlobStorePort is the object-store interface for attachment contents.
// Keys are "{propertyID}/{generatedFileName}".
type BlobStorePort interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	// PublicURL returns the URL clients fetch the blob from.
	PublicURL(key string) string
}
