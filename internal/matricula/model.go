package matricula

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ppghub/academico/internal/apperr"
)

// Critérios regimentais de aprovação em disciplina.
const (
	NotaMinimaAprovacao       = 7.0
	FrequenciaMinimaAprovacao = 75.0
)

// StatusMatricula é a situação do discente na oferta.
type StatusMatricula string

const (
	MatriculaAtiva          StatusMatricula = "Matriculado"
	MatriculaTrancada       StatusMatricula = "Trancada"
	MatriculaCancelada      StatusMatricula = "Cancelada"
	MatriculaAprovado       StatusMatricula = "Aprovado"
	MatriculaReprovadoNota  StatusMatricula = "Reprovado por Nota"
	MatriculaReprovadoFalta StatusMatricula = "Reprovado por Falta"
)

func (s StatusMatricula) Valido() bool {
	switch s {
	case MatriculaAtiva, MatriculaTrancada, MatriculaCancelada,
		MatriculaAprovado, MatriculaReprovadoNota, MatriculaReprovadoFalta:
		return true
	}
	return false
}

// Matricula vincula um discente a uma oferta de disciplina.
type Matricula struct {
	ID            uuid.UUID       `json:"id"`
	OfertaID      uuid.UUID       `json:"oferta_id"`
	DiscenteID    uuid.UUID       `json:"discente_id"`
	Nota          *float64        `json:"nota,omitempty"`
	Frequencia    *float64        `json:"frequencia,omitempty"`
	Conceito      *string         `json:"conceito,omitempty"`
	Status        StatusMatricula `json:"status"`
	DataMatricula time.Time       `json:"data_matricula"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ArredondarNota normaliza para duas casas, arredondando a metade para cima.
func ArredondarNota(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ConceitoDaNota converte a nota arredondada na escala de conceitos A a E.
func ConceitoDaNota(nota float64) string {
	n := decimal.NewFromFloat(nota).Round(2)
	switch {
	case n.GreaterThanOrEqual(decimal.NewFromInt(9)):
		return "A"
	case n.GreaterThanOrEqual(decimal.NewFromInt(8)):
		return "B"
	case n.GreaterThanOrEqual(decimal.NewFromInt(7)):
		return "C"
	case n.GreaterThanOrEqual(decimal.NewFromInt(6)):
		return "D"
	}
	return "E"
}

// Aprovado aplica a regra regimental sobre os valores já arredondados.
func Aprovado(nota, frequencia float64) bool {
	n := decimal.NewFromFloat(nota).Round(2)
	f := decimal.NewFromFloat(frequencia).Round(2)
	return n.GreaterThanOrEqual(decimal.NewFromFloat(NotaMinimaAprovacao)) &&
		f.GreaterThanOrEqual(decimal.NewFromFloat(FrequenciaMinimaAprovacao))
}

// CalcularResultado consolida nota e frequência em status e conceito finais.
// A frequência prevalece sobre a nota quando ambas reprovam.
func (m Matricula) CalcularResultado() (Matricula, error) {
	if m.Status != MatriculaAtiva {
		return m, fmt.Errorf("%w: matrícula %s não admite consolidação", apperr.ErrInvalidState, m.Status)
	}
	if m.Nota == nil {
		return m, fmt.Errorf("%w: nota não lançada", apperr.ErrValidation)
	}
	if m.Frequencia == nil {
		return m, fmt.Errorf("%w: frequência não lançada", apperr.ErrValidation)
	}

	nota := ArredondarNota(*m.Nota)
	freq := ArredondarNota(*m.Frequencia)
	m.Nota = &nota
	m.Frequencia = &freq

	conceito := ConceitoDaNota(nota)
	m.Conceito = &conceito

	switch {
	case decimal.NewFromFloat(freq).LessThan(decimal.NewFromFloat(FrequenciaMinimaAprovacao)):
		m.Status = MatriculaReprovadoFalta
	case decimal.NewFromFloat(nota).LessThan(decimal.NewFromFloat(NotaMinimaAprovacao)):
		m.Status = MatriculaReprovadoNota
	default:
		m.Status = MatriculaAprovado
	}
	return m, nil
}

// ResumoResultados agrega a consolidação em lote de uma oferta.
type ResumoResultados struct {
	Processadas int      `json:"processadas"`
	Aprovadas   int      `json:"aprovadas"`
	Reprovadas  int      `json:"reprovadas"`
	ComErro     int      `json:"com_erro"`
	Erros       []string `json:"erros,omitempty"`
}
