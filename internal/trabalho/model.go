package trabalho

import (
	"time"

	"github.com/google/uuid"
)

// TipoTrabalho distingue o trabalho pelo nível do curso.
type TipoTrabalho string

const (
	TrabalhoDissertacao TipoTrabalho = "Dissertação"
	TrabalhoTese        TipoTrabalho = "Tese"
)

func (t TipoTrabalho) Valido() bool {
	return t == TrabalhoDissertacao || t == TrabalhoTese
}

// StatusTrabalho é o ciclo de vida do trabalho de conclusão.
type StatusTrabalho string

const (
	TrabalhoEmPreparacao StatusTrabalho = "Em Preparação"
	TrabalhoSubmetido    StatusTrabalho = "Submetido"
	TrabalhoQualificado  StatusTrabalho = "Qualificado"
	TrabalhoDefendido    StatusTrabalho = "Defendido"
	TrabalhoAprovado     StatusTrabalho = "Aprovado"
	TrabalhoPublicado    StatusTrabalho = "Publicado"
)

func (s StatusTrabalho) Valido() bool {
	switch s {
	case TrabalhoEmPreparacao, TrabalhoSubmetido, TrabalhoQualificado, TrabalhoDefendido, TrabalhoAprovado, TrabalhoPublicado:
		return true
	}
	return false
}

// AguardandoQualificacao indica que o trabalho está pronto para o exame
// de qualificação.
func (s StatusTrabalho) AguardandoQualificacao() bool {
	return s == TrabalhoSubmetido
}

// AguardandoDefesa cobre os estados em que o trabalho pode ir a defesa:
// qualificado ou reprovado em defesa anterior.
func (s StatusTrabalho) AguardandoDefesa() bool {
	return s == TrabalhoQualificado || s == TrabalhoDefendido
}

// TrabalhoConclusao é a dissertação ou tese de um discente. Cada
// discente tem no máximo um trabalho.
type TrabalhoConclusao struct {
	ID            uuid.UUID      `json:"id"`
	DiscenteID    uuid.UUID      `json:"discente_id"`
	OrientadorID  uuid.UUID      `json:"orientador_id"`
	Titulo        string         `json:"titulo"`
	Resumo        string         `json:"resumo,omitempty"`
	PalavrasChave []string       `json:"palavras_chave,omitempty"`
	Tipo          TipoTrabalho   `json:"tipo"`
	Status        StatusTrabalho `json:"status"`

	ArquivoURL *string `json:"arquivo_url,omitempty"`

	DataDefesa *time.Time `json:"data_defesa,omitempty"`
	NotaFinal  *float64   `json:"nota_final,omitempty"`

	LocalPublicacao *string    `json:"local_publicacao,omitempty"`
	DataPublicacao  *time.Time `json:"data_publicacao,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
