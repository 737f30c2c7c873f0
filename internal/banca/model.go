package banca

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ppghub/academico/internal/apperr"
)

// MaximoTitulares limita o tamanho da banca em qualquer tipo.
const MaximoTitulares = 7

// TipoBanca determina a exigência mínima de titulares.
type TipoBanca string

const (
	BancaQualificacao TipoBanca = "Qualificação"
	BancaDissertacao  TipoBanca = "Defesa de Dissertação"
	BancaTese         TipoBanca = "Defesa de Tese"
)

func (t TipoBanca) Valido() bool {
	switch t {
	case BancaQualificacao, BancaDissertacao, BancaTese:
		return true
	}
	return false
}

// MinimoTitulares segue o regimento: 3 para qualificação, 5 para
// dissertação, 7 para tese.
func (t TipoBanca) MinimoTitulares() int {
	switch t {
	case BancaDissertacao:
		return 5
	case BancaTese:
		return 7
	default:
		return 3
	}
}

// Defesa indica se o desfecho da banca cascateia para o trabalho.
func (t TipoBanca) Defesa() bool {
	return t == BancaDissertacao || t == BancaTese
}

// StatusBanca é o ciclo de vida da banca.
type StatusBanca string

const (
	BancaAgendada    StatusBanca = "Agendada"
	BancaEmAndamento StatusBanca = "Em Andamento"
	BancaRealizada   StatusBanca = "Realizada"
	BancaCancelada   StatusBanca = "Cancelada"
	BancaAdiada      StatusBanca = "Adiada"
)

func (s StatusBanca) Valido() bool {
	switch s {
	case BancaAgendada, BancaEmAndamento, BancaRealizada, BancaCancelada, BancaAdiada:
		return true
	}
	return false
}

// Encerrada cobre os estados terminais.
func (s StatusBanca) Encerrada() bool {
	return s == BancaRealizada || s == BancaCancelada
}

// PermiteEdicaoMembros restringe mudanças de composição à fase de agendamento.
func (s StatusBanca) PermiteEdicaoMembros() bool {
	return s == BancaAgendada || s == BancaAdiada
}

// Modalidade da sessão.
type Modalidade string

const (
	ModalidadePresencial Modalidade = "Presencial"
	ModalidadeRemota     Modalidade = "Remota"
	ModalidadeHibrida    Modalidade = "Híbrida"
)

func (m Modalidade) Valida() bool {
	switch m {
	case ModalidadePresencial, ModalidadeRemota, ModalidadeHibrida:
		return true
	}
	return false
}

// ResultadoBanca é o desfecho registrado na sessão.
type ResultadoBanca string

const (
	ResultadoAprovado          ResultadoBanca = "Aprovado"
	ResultadoAprovadoRessalva  ResultadoBanca = "Aprovado com Ressalvas"
	ResultadoAprovadoDistincao ResultadoBanca = "Aprovado com Distinção"
	ResultadoReprovado         ResultadoBanca = "Reprovado"
)

func (r ResultadoBanca) Valido() bool {
	switch r {
	case ResultadoAprovado, ResultadoAprovadoRessalva, ResultadoAprovadoDistincao, ResultadoReprovado:
		return true
	}
	return false
}

// Aprovado cobre todas as formas de aprovação.
func (r ResultadoBanca) Aprovado() bool {
	return r == ResultadoAprovado || r == ResultadoAprovadoRessalva || r == ResultadoAprovadoDistincao
}

// FuncaoMembro na composição da banca.
type FuncaoMembro string

const (
	FuncaoPresidente FuncaoMembro = "Presidente"
	FuncaoTitular    FuncaoMembro = "Titular"
	FuncaoSuplente   FuncaoMembro = "Suplente"
)

func (f FuncaoMembro) Valida() bool {
	return f == FuncaoPresidente || f == FuncaoTitular || f == FuncaoSuplente
}

// Titular diz se o membro conta para o quórum mínimo.
func (f FuncaoMembro) Titular() bool {
	return f == FuncaoPresidente || f == FuncaoTitular
}

// TipoMembro distingue membros do programa de examinadores externos.
type TipoMembro string

const (
	MembroInterno TipoMembro = "Interno"
	MembroExterno TipoMembro = "Externo"
)

func (t TipoMembro) Valido() bool {
	return t == MembroInterno || t == MembroExterno
}

// MembroBanca é um examinador. Membros internos referenciam um docente
// do programa; externos carregam nome e instituição próprios.
type MembroBanca struct {
	ID          uuid.UUID    `json:"id"`
	BancaID     uuid.UUID    `json:"banca_id"`
	DocenteID   *uuid.UUID   `json:"docente_id,omitempty"`
	Nome        string       `json:"nome"`
	Instituicao string       `json:"instituicao,omitempty"`
	Funcao      FuncaoMembro `json:"funcao"`
	Tipo        TipoMembro   `json:"tipo"`

	Nota                  *float64 `json:"nota,omitempty"`
	Parecer               *string  `json:"parecer,omitempty"`
	PresencaConfirmada    bool     `json:"presenca_confirmada"`
	Presente              *bool    `json:"presente,omitempty"`
	JustificativaAusencia *string  `json:"justificativa_ausencia,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Banca é a sessão de exame de um trabalho de conclusão.
type Banca struct {
	ID           uuid.UUID   `json:"id"`
	TrabalhoID   uuid.UUID   `json:"trabalho_id"`
	SecretarioID *uuid.UUID  `json:"secretario_id,omitempty"`
	Tipo         TipoBanca   `json:"tipo"`
	Status       StatusBanca `json:"status"`
	Modalidade   Modalidade  `json:"modalidade"`

	DataAgendada time.Time `json:"data_agendada"`
	Local        string    `json:"local,omitempty"`
	LinkVideo    string    `json:"link_video,omitempty"`

	Ata               *string         `json:"ata,omitempty"`
	Resultado         *ResultadoBanca `json:"resultado,omitempty"`
	NotaFinal         *float64        `json:"nota_final,omitempty"`
	CorrecoesExigidas *string         `json:"correcoes_exigidas,omitempty"`
	PrazoCorrecoes    *time.Time      `json:"prazo_correcoes,omitempty"`
	Motivo            *string         `json:"motivo,omitempty"`

	Membros []MembroBanca `json:"membros,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidarComposicao confere o regimento antes de a banca iniciar:
// titulares entre o mínimo do tipo e o teto, ao menos um titular
// externo e exatamente um presidente, interno e titular.
func ValidarComposicao(tipo TipoBanca, membros []MembroBanca) error {
	titulares := 0
	externosTitulares := 0
	presidentes := 0

	for _, m := range membros {
		if !m.Funcao.Titular() {
			continue
		}
		titulares++
		if m.Tipo == MembroExterno {
			externosTitulares++
		}
		if m.Funcao == FuncaoPresidente {
			presidentes++
			if m.Tipo != MembroInterno {
				return fmt.Errorf("%w: o presidente deve ser membro interno", apperr.ErrComposition)
			}
		}
	}

	if min := tipo.MinimoTitulares(); titulares < min {
		return fmt.Errorf("%w: banca de %s exige ao menos %d titulares (há %d)", apperr.ErrComposition, tipo, min, titulares)
	}
	if titulares > MaximoTitulares {
		return fmt.Errorf("%w: banca não pode ter mais de %d titulares", apperr.ErrComposition, MaximoTitulares)
	}
	if externosTitulares == 0 {
		return fmt.Errorf("%w: é obrigatório ao menos um titular externo", apperr.ErrComposition)
	}
	if presidentes != 1 {
		return fmt.Errorf("%w: a banca deve ter exatamente um presidente (há %d)", apperr.ErrComposition, presidentes)
	}
	return nil
}

// NotaFinalMembros calcula a média das notas lançadas, arredondada a
// duas casas com a metade para cima. Sem nota lançada, devolve nil.
func NotaFinalMembros(membros []MembroBanca) *float64 {
	soma := decimal.Zero
	n := 0
	for _, m := range membros {
		if m.Nota == nil || !m.Funcao.Titular() {
			continue
		}
		soma = soma.Add(decimal.NewFromFloat(*m.Nota))
		n++
	}
	if n == 0 {
		return nil
	}
	media, _ := soma.Div(decimal.NewFromInt(int64(n))).Round(2).Float64()
	return &media
}
