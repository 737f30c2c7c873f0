package banca

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/clock"
	"github.com/ppghub/academico/internal/docente"
	"github.com/ppghub/academico/internal/trabalho"
	"github.com/ppghub/academico/internal/util"
)

// BancaRepository abstrai a persistência de bancas.
type BancaRepository interface {
	Criar(ctx context.Context, b Banca) (Banca, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (Banca, error)
	ListarPorTrabalho(ctx context.Context, trabalhoID uuid.UUID) ([]Banca, error)
	Salvar(ctx context.Context, b Banca) (Banca, error)

	ListarMembros(ctx context.Context, bancaID uuid.UUID) ([]MembroBanca, error)
	InserirMembro(ctx context.Context, m MembroBanca) (MembroBanca, error)
	BuscarMembro(ctx context.Context, bancaID, membroID uuid.UUID) (MembroBanca, error)
	SalvarMembro(ctx context.Context, m MembroBanca) (MembroBanca, error)
	RemoverMembro(ctx context.Context, bancaID, membroID uuid.UUID) error
	DefinirPresidente(ctx context.Context, bancaID, membroID uuid.UUID) error

	Finalizar(ctx context.Context, bancaID uuid.UUID, fn func(b Banca) (Banca, error)) (Banca, error)
}

// Trabalhos é a fatia do serviço de trabalhos consumida aqui.
type Trabalhos interface {
	BuscarPorID(ctx context.Context, id uuid.UUID) (trabalho.TrabalhoConclusao, error)
	AplicarResultadoQualificacao(ctx context.Context, trabalhoID uuid.UUID, aprovado bool) error
	AplicarResultadoDefesa(ctx context.Context, trabalhoID uuid.UUID, aprovado bool, dataDefesa time.Time, notaFinal *float64) error
}

// Docentes resolve membros internos da banca.
type Docentes interface {
	BuscarPorID(ctx context.Context, id uuid.UUID) (docente.Docente, error)
}

// Service contém o ciclo de vida da banca examinadora.
type Service struct {
	repo      BancaRepository
	trabalhos Trabalhos
	docentes  Docentes
	clk       clock.Clock
}

func NewService(repo BancaRepository, trabalhos Trabalhos, docentes Docentes, clk clock.Clock) *Service {
	return &Service{repo: repo, trabalhos: trabalhos, docentes: docentes, clk: clk}
}

func tipoDefesaEsperado(t trabalho.TipoTrabalho) TipoBanca {
	if t == trabalho.TrabalhoTese {
		return BancaTese
	}
	return BancaDissertacao
}

// Agendar cria a banca vinculada a um trabalho. Bancas de defesa exigem
// trabalho submetido e tipo compatível com o nível do curso.
func (s *Service) Agendar(ctx context.Context, b Banca) (Banca, error) {
	if !b.Tipo.Valido() {
		return Banca{}, fmt.Errorf("%w: tipo de banca desconhecido", apperr.ErrValidation)
	}
	if !b.Modalidade.Valida() {
		return Banca{}, fmt.Errorf("%w: modalidade desconhecida", apperr.ErrValidation)
	}
	if !b.DataAgendada.After(s.clk.Now()) {
		return Banca{}, fmt.Errorf("%w: a data da banca deve estar no futuro", apperr.ErrValidation)
	}
	if b.Modalidade != ModalidadeRemota && b.Local == "" {
		return Banca{}, fmt.Errorf("%w: banca presencial exige local", apperr.ErrValidation)
	}
	if b.Modalidade != ModalidadePresencial && b.LinkVideo == "" {
		return Banca{}, fmt.Errorf("%w: banca remota exige link de vídeo", apperr.ErrValidation)
	}

	t, err := s.trabalhos.BuscarPorID(ctx, b.TrabalhoID)
	if err != nil {
		return Banca{}, fmt.Errorf("%w: trabalho", apperr.ErrNotFound)
	}
	if b.Tipo.Defesa() {
		if !t.Status.AguardandoDefesa() {
			return Banca{}, fmt.Errorf("%w: trabalho %s não passou pela qualificação", apperr.ErrInvalidState, t.Status)
		}
		if b.Tipo != tipoDefesaEsperado(t.Tipo) {
			return Banca{}, fmt.Errorf("%w: banca de %s incompatível com %s", apperr.ErrValidation, b.Tipo, t.Tipo)
		}
	} else if !t.Status.AguardandoQualificacao() {
		return Banca{}, fmt.Errorf("%w: trabalho %s não está apto a qualificação", apperr.ErrInvalidState, t.Status)
	}

	if b.SecretarioID != nil {
		sec, err := s.docentes.BuscarPorID(ctx, *b.SecretarioID)
		if err != nil {
			return Banca{}, fmt.Errorf("%w: secretário", apperr.ErrNotFound)
		}
		if sec.Status != docente.StatusAtivo {
			return Banca{}, fmt.Errorf("%w: secretário não está ativo", apperr.ErrInvalidState)
		}
	}

	existentes, err := s.repo.ListarPorTrabalho(ctx, b.TrabalhoID)
	if err != nil {
		return Banca{}, err
	}
	for _, e := range existentes {
		if e.Tipo == b.Tipo && !e.Status.Encerrada() {
			return Banca{}, fmt.Errorf("%w: já existe banca de %s pendente para este trabalho", apperr.ErrConflict, b.Tipo)
		}
	}

	b.Status = BancaAgendada
	criada, err := s.repo.Criar(ctx, b)
	if err != nil {
		return Banca{}, err
	}
	log.Info().Str("banca_id", criada.ID.String()).Str("tipo", string(criada.Tipo)).Msg("banca agendada")
	return criada, nil
}

func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID) (Banca, error) {
	return s.repo.BuscarPorID(ctx, id)
}

func (s *Service) ListarPorTrabalho(ctx context.Context, trabalhoID uuid.UUID) ([]Banca, error) {
	return s.repo.ListarPorTrabalho(ctx, trabalhoID)
}

// AdicionarMembro inclui um examinador enquanto a banca não inicia.
// Internos referenciam docente ativo; externos trazem nome e instituição.
func (s *Service) AdicionarMembro(ctx context.Context, bancaID uuid.UUID, m MembroBanca) (MembroBanca, error) {
	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return MembroBanca{}, err
	}
	if !b.Status.PermiteEdicaoMembros() {
		return MembroBanca{}, fmt.Errorf("%w: banca %s não admite mudança de composição", apperr.ErrInvalidState, b.Status)
	}
	if !m.Funcao.Valida() {
		return MembroBanca{}, fmt.Errorf("%w: função desconhecida", apperr.ErrValidation)
	}
	if !m.Tipo.Valido() {
		return MembroBanca{}, fmt.Errorf("%w: tipo de membro desconhecido", apperr.ErrValidation)
	}

	switch m.Tipo {
	case MembroInterno:
		if m.DocenteID == nil {
			return MembroBanca{}, fmt.Errorf("%w: membro interno exige docente", apperr.ErrValidation)
		}
		d, err := s.docentes.BuscarPorID(ctx, *m.DocenteID)
		if err != nil {
			return MembroBanca{}, fmt.Errorf("%w: docente", apperr.ErrNotFound)
		}
		if d.Status != docente.StatusAtivo {
			return MembroBanca{}, fmt.Errorf("%w: docente não está ativo", apperr.ErrInvalidState)
		}
		m.Nome = d.Nome
	case MembroExterno:
		if m.DocenteID != nil {
			return MembroBanca{}, fmt.Errorf("%w: membro externo não referencia docente do programa", apperr.ErrValidation)
		}
		if err := util.RequireString(m.Nome, "nome"); err != nil {
			return MembroBanca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
		}
		if err := util.RequireString(m.Instituicao, "instituicao"); err != nil {
			return MembroBanca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
		}
	}

	if m.Funcao == FuncaoPresidente && m.Tipo != MembroInterno {
		return MembroBanca{}, fmt.Errorf("%w: o presidente deve ser membro interno", apperr.ErrValidation)
	}

	titulares := 0
	for _, existente := range b.Membros {
		if m.DocenteID != nil && existente.DocenteID != nil && *existente.DocenteID == *m.DocenteID {
			return MembroBanca{}, fmt.Errorf("%w: docente já compõe a banca", apperr.ErrConflict)
		}
		if existente.Funcao == FuncaoPresidente && m.Funcao == FuncaoPresidente {
			return MembroBanca{}, fmt.Errorf("%w: a banca já tem presidente", apperr.ErrConflict)
		}
		if existente.Funcao.Titular() {
			titulares++
		}
	}
	if m.Funcao.Titular() && titulares >= MaximoTitulares {
		return MembroBanca{}, fmt.Errorf("%w: banca não pode ter mais de %d titulares", apperr.ErrComposition, MaximoTitulares)
	}

	m.BancaID = bancaID
	return s.repo.InserirMembro(ctx, m)
}

func (s *Service) RemoverMembro(ctx context.Context, bancaID, membroID uuid.UUID) error {
	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return err
	}
	if !b.Status.PermiteEdicaoMembros() {
		return fmt.Errorf("%w: banca %s não admite mudança de composição", apperr.ErrInvalidState, b.Status)
	}
	return s.repo.RemoverMembro(ctx, bancaID, membroID)
}

// DefinirPresidente promove um membro interno; o presidente anterior
// vira titular na mesma transação.
func (s *Service) DefinirPresidente(ctx context.Context, bancaID, membroID uuid.UUID) (Banca, error) {
	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return Banca{}, err
	}
	if !b.Status.PermiteEdicaoMembros() {
		return Banca{}, fmt.Errorf("%w: banca %s não admite mudança de composição", apperr.ErrInvalidState, b.Status)
	}

	m, err := s.repo.BuscarMembro(ctx, bancaID, membroID)
	if err != nil {
		return Banca{}, err
	}
	if m.Tipo != MembroInterno {
		return Banca{}, fmt.Errorf("%w: o presidente deve ser membro interno", apperr.ErrValidation)
	}
	if m.Funcao == FuncaoSuplente {
		return Banca{}, fmt.Errorf("%w: suplente não preside a banca", apperr.ErrValidation)
	}

	if err := s.repo.DefinirPresidente(ctx, bancaID, membroID); err != nil {
		return Banca{}, err
	}
	return s.repo.BuscarPorID(ctx, bancaID)
}

// ConfirmarPresenca registra o aceite do membro antes da sessão.
func (s *Service) ConfirmarPresenca(ctx context.Context, bancaID, membroID uuid.UUID) (MembroBanca, error) {
	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return MembroBanca{}, err
	}
	if b.Status.Encerrada() {
		return MembroBanca{}, fmt.Errorf("%w: banca %s", apperr.ErrInvalidState, b.Status)
	}

	m, err := s.repo.BuscarMembro(ctx, bancaID, membroID)
	if err != nil {
		return MembroBanca{}, err
	}
	m.PresencaConfirmada = true
	return s.repo.SalvarMembro(ctx, m)
}

// RegistrarPresenca anota quem compareceu à sessão em andamento.
// Ausência exige justificativa.
func (s *Service) RegistrarPresenca(ctx context.Context, bancaID, membroID uuid.UUID, presente bool, justificativa string) (MembroBanca, error) {
	if !presente {
		if err := util.RequireString(justificativa, "justificativa da ausência"); err != nil {
			return MembroBanca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
		}
	}

	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return MembroBanca{}, err
	}
	if b.Status != BancaEmAndamento {
		return MembroBanca{}, fmt.Errorf("%w: presença só é registrada com a banca em andamento", apperr.ErrInvalidState)
	}

	m, err := s.repo.BuscarMembro(ctx, bancaID, membroID)
	if err != nil {
		return MembroBanca{}, err
	}
	m.Presente = &presente
	if presente {
		m.JustificativaAusencia = nil
	} else {
		m.JustificativaAusencia = &justificativa
	}
	return s.repo.SalvarMembro(ctx, m)
}

// AtribuirNota lança a nota individual de um titular durante a sessão,
// acompanhada do parecer quando houver.
func (s *Service) AtribuirNota(ctx context.Context, bancaID, membroID uuid.UUID, nota float64, parecer string) (MembroBanca, error) {
	if nota < 0 || nota > 10 {
		return MembroBanca{}, fmt.Errorf("%w: nota deve estar entre 0 e 10", apperr.ErrValidation)
	}

	b, err := s.repo.BuscarPorID(ctx, bancaID)
	if err != nil {
		return MembroBanca{}, err
	}
	if b.Status != BancaEmAndamento {
		return MembroBanca{}, fmt.Errorf("%w: nota só é lançada com a banca em andamento", apperr.ErrInvalidState)
	}

	m, err := s.repo.BuscarMembro(ctx, bancaID, membroID)
	if err != nil {
		return MembroBanca{}, err
	}
	if !m.Funcao.Titular() {
		return MembroBanca{}, fmt.Errorf("%w: suplente não lança nota", apperr.ErrInvalidState)
	}

	m.Nota = &nota
	if parecer != "" {
		m.Parecer = &parecer
	}
	return s.repo.SalvarMembro(ctx, m)
}

// Iniciar abre a sessão; é aqui que a composição é validada.
func (s *Service) Iniciar(ctx context.Context, id uuid.UUID) (Banca, error) {
	b, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Banca{}, err
	}
	if b.Status != BancaAgendada {
		return Banca{}, fmt.Errorf("%w: banca %s não pode iniciar", apperr.ErrInvalidState, b.Status)
	}
	if b.DataAgendada.After(s.clk.Now()) {
		return Banca{}, fmt.Errorf("%w: a data agendada ainda não chegou", apperr.ErrInvalidState)
	}
	if err := ValidarComposicao(b.Tipo, b.Membros); err != nil {
		return Banca{}, err
	}

	b.Status = BancaEmAndamento
	return s.repo.Salvar(ctx, b)
}

// FinalizarInput carrega o desfecho da sessão. Correções e prazo
// acompanham aprovações com ressalvas.
type FinalizarInput struct {
	Resultado         ResultadoBanca
	Ata               string
	CorrecoesExigidas string
	PrazoCorrecoes    *time.Time
}

// Finalizar encerra a sessão sob lock da linha da banca: o resultado
// aprovado exige ata, a nota final é a média dos titulares e o desfecho
// cascateia para o trabalho (qualificação destrava a defesa; defesa
// aprova ou devolve o trabalho ao ciclo).
func (s *Service) Finalizar(ctx context.Context, id uuid.UUID, in FinalizarInput) (Banca, error) {
	if !in.Resultado.Valido() {
		return Banca{}, fmt.Errorf("%w: resultado desconhecido", apperr.ErrValidation)
	}
	if in.Resultado.Aprovado() && in.Ata == "" {
		return Banca{}, fmt.Errorf("%w: resultado aprovado exige ata", apperr.ErrValidation)
	}
	if in.Resultado == ResultadoAprovadoRessalva {
		if err := util.RequireString(in.CorrecoesExigidas, "correções exigidas"); err != nil {
			return Banca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
		}
	}

	final, err := s.repo.Finalizar(ctx, id, func(b Banca) (Banca, error) {
		if b.Status != BancaEmAndamento {
			return Banca{}, fmt.Errorf("%w: banca %s não pode ser finalizada", apperr.ErrInvalidState, b.Status)
		}

		b.Status = BancaRealizada
		b.Resultado = &in.Resultado
		b.NotaFinal = NotaFinalMembros(b.Membros)
		if in.Ata != "" {
			b.Ata = &in.Ata
		}
		if in.Resultado == ResultadoAprovadoRessalva {
			b.CorrecoesExigidas = &in.CorrecoesExigidas
			b.PrazoCorrecoes = in.PrazoCorrecoes
		}
		return b, nil
	})
	if err != nil {
		return Banca{}, err
	}

	if final.Tipo.Defesa() {
		if err := s.trabalhos.AplicarResultadoDefesa(ctx, final.TrabalhoID, in.Resultado.Aprovado(), final.DataAgendada, final.NotaFinal); err != nil {
			return Banca{}, fmt.Errorf("banca finalizada, mas o trabalho não refletiu o resultado: %w", err)
		}
	} else {
		if err := s.trabalhos.AplicarResultadoQualificacao(ctx, final.TrabalhoID, in.Resultado.Aprovado()); err != nil {
			return Banca{}, fmt.Errorf("banca finalizada, mas o trabalho não refletiu a qualificação: %w", err)
		}
	}

	log.Info().
		Str("banca_id", id.String()).
		Str("resultado", string(in.Resultado)).
		Msg("banca finalizada")
	return final, nil
}

// Cancelar encerra a banca sem sessão; o motivo fica registrado.
func (s *Service) Cancelar(ctx context.Context, id uuid.UUID, motivo string) (Banca, error) {
	if err := util.RequireString(motivo, "motivo"); err != nil {
		return Banca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	b, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Banca{}, err
	}
	if b.Status != BancaAgendada && b.Status != BancaAdiada {
		return Banca{}, fmt.Errorf("%w: banca %s não pode ser cancelada", apperr.ErrInvalidState, b.Status)
	}

	b.Status = BancaCancelada
	b.Motivo = &motivo
	return s.repo.Salvar(ctx, b)
}

// Adiar suspende uma banca agendada até novo agendamento.
func (s *Service) Adiar(ctx context.Context, id uuid.UUID, motivo string) (Banca, error) {
	if err := util.RequireString(motivo, "motivo"); err != nil {
		return Banca{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	b, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Banca{}, err
	}
	if b.Status != BancaAgendada {
		return Banca{}, fmt.Errorf("%w: somente bancas agendadas podem ser adiadas", apperr.ErrInvalidState)
	}

	b.Status = BancaAdiada
	b.Motivo = &motivo
	return s.repo.Salvar(ctx, b)
}

// Reagendar marca nova data para banca agendada ou adiada.
func (s *Service) Reagendar(ctx context.Context, id uuid.UUID, novaData time.Time, local, linkVideo string) (Banca, error) {
	b, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Banca{}, err
	}
	if b.Status != BancaAgendada && b.Status != BancaAdiada {
		return Banca{}, fmt.Errorf("%w: banca %s não pode ser reagendada", apperr.ErrInvalidState, b.Status)
	}
	if !novaData.After(s.clk.Now()) {
		return Banca{}, fmt.Errorf("%w: a nova data deve estar no futuro", apperr.ErrValidation)
	}

	b.Status = BancaAgendada
	b.DataAgendada = novaData
	if local != "" {
		b.Local = local
	}
	if linkVideo != "" {
		b.LinkVideo = linkVideo
	}
	return s.repo.Salvar(ctx, b)
}
