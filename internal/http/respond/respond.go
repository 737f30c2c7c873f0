// Package respond concentra o envelope JSON e o mapeamento da taxonomia
// de erros de domínio para status HTTP. É folha de propósito: os handlers
// de domínio e o roteador importam daqui sem se enxergarem.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ppghub/academico/internal/apperr"
)

// SuccessEnvelope padroniza respostas com dados.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{Data: data, Error: nil})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Data:  nil,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

// WriteDomainError resolve o status HTTP a partir da taxonomia de apperr.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, apperr.ErrValidation):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, apperr.ErrCapacityExceeded):
		WriteError(w, http.StatusConflict, "CAPACITY_EXCEEDED", err.Error(), nil)
	case errors.Is(err, apperr.ErrComposition):
		WriteError(w, http.StatusUnprocessableEntity, "COMPOSITION", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidState):
		WriteError(w, http.StatusUnprocessableEntity, "INVALID_STATE", err.Error(), nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}
