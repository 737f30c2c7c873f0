package storage

import (
	"context"
	"testing"
)

func TestMemoriaUploader(t *testing.T) {
	up := NewMemoriaUploader("")

	res, err := up.Upload(context.Background(), UploadInput{
		Key:         "trabalhos/abc/dissertacao.pdf",
		Body:        []byte("%PDF-1.7"),
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if res.URL != "memoria://arquivos/trabalhos/abc/dissertacao.pdf" {
		t.Errorf("url = %s", res.URL)
	}
	if res.ETag == "" {
		t.Errorf("etag vazio")
	}

	guardado, ok := up.Buscar("trabalhos/abc/dissertacao.pdf")
	if !ok || string(guardado.Body) != "%PDF-1.7" {
		t.Errorf("blob não guardado")
	}

	if _, err := up.Upload(context.Background(), UploadInput{Key: "vazio"}); err == nil {
		t.Errorf("corpo vazio deveria falhar")
	}
}
