package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// MemoriaUploader guarda blobs em memória. O upload de arquivos é
// simulado neste serviço; a URL devolvida identifica o blob guardado.
type MemoriaUploader struct {
	mu    sync.RWMutex
	blobs map[string]UploadInput
	base  string
}

func NewMemoriaUploader(base string) *MemoriaUploader {
	if base == "" {
		base = "memoria://arquivos"
	}
	return &MemoriaUploader{blobs: make(map[string]UploadInput), base: base}
}

func (m *MemoriaUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Key == "" {
		return nil, fmt.Errorf("storage: key vazia")
	}
	if len(input.Body) == 0 {
		return nil, fmt.Errorf("storage: corpo vazio")
	}

	sum := sha256.Sum256(input.Body)

	m.mu.Lock()
	m.blobs[input.Key] = input
	m.mu.Unlock()

	return &UploadResult{
		URL:  fmt.Sprintf("%s/%s", m.base, input.Key),
		ETag: hex.EncodeToString(sum[:]),
	}, nil
}

// Buscar devolve o blob guardado sob a chave, se houver.
func (m *MemoriaUploader) Buscar(key string) (UploadInput, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.blobs[key]
	return in, ok
}
