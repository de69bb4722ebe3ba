package interfaces

import "context"

// Uploader stores an opaque blob and returns a retrievable URL.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
