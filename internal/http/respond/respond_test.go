package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppghub/academico/internal/apperr"
)

func TestWriteDomainError(t *testing.T) {
	casos := []struct {
		nome   string
		err    error
		status int
		codigo string
	}{
		{"nao encontrado", apperr.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"validacao", fmt.Errorf("%w: campo", apperr.ErrValidation), http.StatusBadRequest, "VALIDATION"},
		{"conflito", apperr.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"capacidade", apperr.ErrCapacityExceeded, http.StatusConflict, "CAPACITY_EXCEEDED"},
		{"composicao", apperr.ErrComposition, http.StatusUnprocessableEntity, "COMPOSITION"},
		{"estado invalido", apperr.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"desconhecido", fmt.Errorf("falha qualquer"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteDomainError(rec, c.err)

			if rec.Code != c.status {
				t.Errorf("status = %d, esperado %d", rec.Code, c.status)
			}
			var env ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decodificando envelope: %v", err)
			}
			if env.Error == nil || env.Error.Code != c.codigo {
				t.Errorf("code = %v, esperado %s", env.Error, c.codigo)
			}
		})
	}
}
