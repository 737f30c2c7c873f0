package docente

import (
	"time"

	"github.com/google/uuid"
)

// LimiteOrientacoes é o teto de orientações simultâneas por docente.
const LimiteOrientacoes = 8

// StatusDocente é o vínculo corrente do docente com o programa.
type StatusDocente string

const (
	StatusAtivo      StatusDocente = "Ativo"
	StatusAfastado   StatusDocente = "Afastado"
	StatusAposentado StatusDocente = "Aposentado"
	StatusDesligado  StatusDocente = "Desligado"
)

func (s StatusDocente) Valido() bool {
	switch s {
	case StatusAtivo, StatusAfastado, StatusAposentado, StatusDesligado:
		return true
	}
	return false
}

func (s StatusDocente) Ativo() bool { return s == StatusAtivo }

// TipoVinculo classifica o enquadramento do docente no programa.
type TipoVinculo string

const (
	VinculoPermanente  TipoVinculo = "Permanente"
	VinculoColaborador TipoVinculo = "Colaborador"
	VinculoVisitante   TipoVinculo = "Visitante"
	VinculoVoluntario  TipoVinculo = "Voluntário"
)

func (t TipoVinculo) Valido() bool {
	switch t {
	case VinculoPermanente, VinculoColaborador, VinculoVisitante, VinculoVoluntario:
		return true
	}
	return false
}

// TipoOrientacao distingue orientações de mestrado e de doutorado.
type TipoOrientacao string

const (
	OrientacaoMestrado  TipoOrientacao = "Mestrado"
	OrientacaoDoutorado TipoOrientacao = "Doutorado"
)

func (t TipoOrientacao) Valido() bool {
	return t == OrientacaoMestrado || t == OrientacaoDoutorado
}

// Docente representa um membro do corpo docente do programa.
type Docente struct {
	ID         uuid.UUID     `json:"id"`
	ProgramaID uuid.UUID     `json:"programa_id"`
	Nome       string        `json:"nome"`
	Email      string        `json:"email"`
	Vinculo    TipoVinculo   `json:"vinculo"`
	Status     StatusDocente `json:"status"`

	OrientacoesMestradoAndamento   int `json:"orientacoes_mestrado_andamento"`
	OrientacoesDoutoradoAndamento  int `json:"orientacoes_doutorado_andamento"`
	OrientacoesMestradoConcluidas  int `json:"orientacoes_mestrado_concluidas"`
	OrientacoesDoutoradoConcluidas int `json:"orientacoes_doutorado_concluidas"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Docente) TotalOrientacoesAndamento() int {
	return d.OrientacoesMestradoAndamento + d.OrientacoesDoutoradoAndamento
}

func (d Docente) TotalOrientacoesConcluidas() int {
	return d.OrientacoesMestradoConcluidas + d.OrientacoesDoutoradoConcluidas
}

// PodeOrientar exige docente ativo e abaixo do limite de orientações.
func (d Docente) PodeOrientar() bool {
	return d.Status.Ativo() && d.TotalOrientacoesAndamento() < LimiteOrientacoes
}
