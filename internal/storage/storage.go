// Package storage guarda os documentos dos trabalhos de conclusão
// (dissertações, teses e atas digitalizadas).
package storage

import "context"

// UploadInput descreve um documento a armazenar.
type UploadInput struct {
	Key         string
	Body        []byte
	ContentType string
}

// UploadResult identifica o documento persistido.
type UploadResult struct {
	URL  string
	ETag string
}

// Uploader armazena blobs de documentos acadêmicos.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}
