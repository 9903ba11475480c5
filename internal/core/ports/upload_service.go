package ports

import "context"

// UploadImageInput is an image sent by the admin UI. Data is a data URI or
// bare base64 payload.
type UploadImageInput struct {
	Data     string
	Filename string
}

type UploadService interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, input UploadImageInput) (string, error)
}
