package catalogo

import (
	"time"

	"github.com/google/uuid"
)

// horasPorCredito segue a regra de 15 horas-aula por crédito.
const horasPorCredito = 15

// TipoDisciplina classifica a disciplina na grade do programa.
type TipoDisciplina string

const (
	DisciplinaObrigatoria TipoDisciplina = "Obrigatória"
	DisciplinaEletiva     TipoDisciplina = "Eletiva"
	DisciplinaTopicos     TipoDisciplina = "Tópicos Especiais"
)

func (t TipoDisciplina) Valido() bool {
	switch t {
	case DisciplinaObrigatoria, DisciplinaEletiva, DisciplinaTopicos:
		return true
	}
	return false
}

// StatusDisciplina indica se a disciplina pode receber novas ofertas.
type StatusDisciplina string

const (
	DisciplinaAtiva   StatusDisciplina = "Ativa"
	DisciplinaInativa StatusDisciplina = "Inativa"
)

func (s StatusDisciplina) Valido() bool {
	return s == DisciplinaAtiva || s == DisciplinaInativa
}

// Disciplina é um componente curricular do programa.
type Disciplina struct {
	ID                  uuid.UUID        `json:"id"`
	ProgramaID          uuid.UUID        `json:"programa_id"`
	Codigo              string           `json:"codigo"`
	Nome                string           `json:"nome"`
	Ementa              string           `json:"ementa,omitempty"`
	CargaHorariaTeoria  int              `json:"carga_horaria_teoria"`
	CargaHorariaPratica int              `json:"carga_horaria_pratica"`
	Tipo                TipoDisciplina   `json:"tipo"`
	Status              StatusDisciplina `json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (d Disciplina) CargaHorariaTotal() int {
	return d.CargaHorariaTeoria + d.CargaHorariaPratica
}

// Creditos deriva dos totais de carga horária; nunca é armazenado.
func (d Disciplina) Creditos() int {
	return d.CargaHorariaTotal() / horasPorCredito
}

// StatusOferta é o ciclo de vida de uma oferta de disciplina.
type StatusOferta string

const (
	OfertaPlanejada StatusOferta = "Planejada"
	OfertaAberta    StatusOferta = "Aberta"
	OfertaFechada   StatusOferta = "Fechada"
	OfertaEmCurso   StatusOferta = "Em Curso"
	OfertaConcluida StatusOferta = "Concluída"
	OfertaCancelada StatusOferta = "Cancelada"
)

func (s StatusOferta) Valido() bool {
	switch s {
	case OfertaPlanejada, OfertaAberta, OfertaFechada, OfertaEmCurso, OfertaConcluida, OfertaCancelada:
		return true
	}
	return false
}

// PodeTransicionar define as transições permitidas do ciclo da oferta.
func (s StatusOferta) PodeTransicionar(destino StatusOferta) bool {
	switch s {
	case OfertaPlanejada:
		return destino == OfertaAberta || destino == OfertaCancelada
	case OfertaAberta:
		return destino == OfertaFechada || destino == OfertaCancelada
	case OfertaFechada:
		return destino == OfertaEmCurso || destino == OfertaAberta || destino == OfertaCancelada
	case OfertaEmCurso:
		return destino == OfertaConcluida || destino == OfertaCancelada
	}
	return false
}

// Encerrada cobre os estados terminais da oferta.
func (s StatusOferta) Encerrada() bool {
	return s == OfertaConcluida || s == OfertaCancelada
}

// Oferta é a abertura de uma disciplina em um período letivo.
type Oferta struct {
	ID           uuid.UUID    `json:"id"`
	DisciplinaID uuid.UUID    `json:"disciplina_id"`
	DocenteID    uuid.UUID    `json:"docente_id"`
	Periodo      string       `json:"periodo"`
	Vagas        int          `json:"vagas"`
	Ocupadas     int          `json:"ocupadas"`
	Horario      string       `json:"horario,omitempty"`
	Sala         string       `json:"sala,omitempty"`
	Status       StatusOferta `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (o Oferta) VagasDisponiveis() int {
	return o.Vagas - o.Ocupadas
}

// AceitaMatriculas exige oferta aberta com vaga livre.
func (o Oferta) AceitaMatriculas() bool {
	return o.Status == OfertaAberta && o.VagasDisponiveis() > 0
}
