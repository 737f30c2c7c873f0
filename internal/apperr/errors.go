// Package apperr define a taxonomia de erros compartilhada pelos serviços.
// Cada sentinela representa uma categoria; os serviços anexam contexto com
// fmt.Errorf("%w: ...") e a camada HTTP resolve o status via errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")

	// ErrInvalidState indica operação incompatível com o status atual do registro.
	ErrInvalidState = errors.New("operação inválida no estado atual")

	// ErrCapacityExceeded indica oferta sem vagas disponíveis.
	ErrCapacityExceeded = errors.New("não há vagas disponíveis")

	// ErrConflict indica duplicidade com registro já existente.
	ErrConflict = errors.New("conflito com registro existente")

	// ErrComposition indica composição de banca fora das regras.
	ErrComposition = errors.New("composição da banca inválida")

	// ErrValidation indica dado de entrada fora do domínio permitido.
	ErrValidation = errors.New("dados inválidos")
)
