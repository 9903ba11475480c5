package ports

import "context"

// ImageStore keeps uploaded product images in object storage.
type ImageStore interface {
	// Upload stores data under name and returns its public URL.
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
	// Delete removes the object behind a public URL. URLs that do not point
	// into the store are ignored.
	Delete(ctx context.Context, url string) error
}

// ImageCleaner deletes stored images in the background.
type ImageCleaner interface {
	Enqueue(urls ...string)
}
