package interfaces

import "context"

type UploadResult struct {
	URL      string
	PublicID string
}

type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (UploadResult, error)
}
