package storage

import (
	"context"
	"io"
)

// MediaStore is the narrow contract the handlers depend on: store an object
// and get back its public URL, or delete one by its opaque public id.
type MediaStore interface {
	Upload(ctx context.Context, publicID string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, publicID string) error
}

type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	BaseURL   string
}
