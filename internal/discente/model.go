package discente

import (
	"time"

	"github.com/google/uuid"
)

// StatusDiscente é a situação do discente no programa.
type StatusDiscente string

const (
	StatusMatriculado StatusDiscente = "Matriculado"
	StatusCursando    StatusDiscente = "Cursando"
	StatusQualificado StatusDiscente = "Qualificado"
	StatusDefendendo  StatusDiscente = "Defendendo"
	StatusTitulado    StatusDiscente = "Titulado"
	StatusDesligado   StatusDiscente = "Desligado"
	StatusTrancado    StatusDiscente = "Trancado"
)

func (s StatusDiscente) Valido() bool {
	switch s {
	case StatusMatriculado, StatusCursando, StatusQualificado,
		StatusDefendendo, StatusTitulado, StatusDesligado, StatusTrancado:
		return true
	}
	return false
}

// Ativo cobre os estados em que o discente segue vinculado e atuante.
func (s StatusDiscente) Ativo() bool {
	switch s {
	case StatusMatriculado, StatusCursando, StatusQualificado, StatusDefendendo:
		return true
	}
	return false
}

func (s StatusDiscente) PodeMatricularDisciplinas() bool {
	return s == StatusMatriculado || s == StatusCursando
}

func (s StatusDiscente) PodeDefender() bool {
	return s == StatusQualificado || s == StatusDefendendo
}

func (s StatusDiscente) Final() bool {
	return s == StatusTitulado || s == StatusDesligado
}

// TipoCurso distingue o nível do curso do discente.
type TipoCurso string

const (
	CursoMestrado  TipoCurso = "Mestrado"
	CursoDoutorado TipoCurso = "Doutorado"
)

func (t TipoCurso) Valido() bool {
	return t == CursoMestrado || t == CursoDoutorado
}

// Prorrogacao registra uma extensão de prazo concedida ao discente.
type Prorrogacao struct {
	Motivo        string    `json:"motivo"`
	Meses         int       `json:"meses"`
	DataAprovacao time.Time `json:"data_aprovacao"`
}

// Discente representa um aluno de pós-graduação.
type Discente struct {
	ID           uuid.UUID `json:"id"`
	ProgramaID   uuid.UUID `json:"programa_id"`
	OrientadorID uuid.UUID `json:"orientador_id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	TipoCurso    TipoCurso `json:"tipo_curso"`
	DataIngresso time.Time `json:"data_ingresso"`

	QualificacaoRealizada bool       `json:"qualificacao_realizada"`
	DataQualificacao      *time.Time `json:"data_qualificacao,omitempty"`
	ResultadoQualificacao *string    `json:"resultado_qualificacao,omitempty"`

	DataDefesa      *time.Time `json:"data_defesa,omitempty"`
	ResultadoDefesa *string    `json:"resultado_defesa,omitempty"`
	NotaDefesa      *float64   `json:"nota_defesa,omitempty"`

	DataLimite   *time.Time    `json:"data_limite,omitempty"`
	Prorrogacoes []Prorrogacao `json:"prorrogacoes"`

	Status             StatusDiscente `json:"status"`
	MotivoDesligamento *string        `json:"motivo_desligamento,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Discente) Ativo() bool { return d.Status.Ativo() }

// PodeDefender exige status apto e qualificação aprovada.
func (d Discente) PodeDefender() bool {
	return d.Status.PodeDefender() && d.QualificacaoRealizada
}

func (d Discente) TotalProrrogacoes() int { return len(d.Prorrogacoes) }
