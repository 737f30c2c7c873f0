package discente

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/clock"
	"github.com/ppghub/academico/internal/docente"
	"github.com/ppghub/academico/internal/util"
)

// Prazo regulamentar em meses, contado do ingresso.
const (
	prazoMesesMestrado  = 24
	prazoMesesDoutorado = 48
)

// DiscenteRepository abstrai a persistência de discentes.
type DiscenteRepository interface {
	Criar(ctx context.Context, d Discente) (Discente, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (Discente, error)
	ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Discente, error)
	Salvar(ctx context.Context, d Discente) (Discente, error)
	TemTrabalhoVinculado(ctx context.Context, id uuid.UUID) (bool, error)
	Deletar(ctx context.Context, id uuid.UUID) error
}

// OrientadorService é a fatia do serviço de docentes consumida aqui.
type OrientadorService interface {
	BuscarPorID(ctx context.Context, id uuid.UUID) (docente.Docente, error)
	VincularOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error)
	ConcluirOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error)
	DesligarOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error)
}

// Service contém as regras do ciclo de vida do discente.
type Service struct {
	repo        DiscenteRepository
	orientacoes OrientadorService
	clk         clock.Clock
}

func NewService(repo DiscenteRepository, orientacoes OrientadorService, clk clock.Clock) *Service {
	return &Service{repo: repo, orientacoes: orientacoes, clk: clk}
}

func tipoOrientacao(t TipoCurso) docente.TipoOrientacao {
	if t == CursoDoutorado {
		return docente.OrientacaoDoutorado
	}
	return docente.OrientacaoMestrado
}

// Matricular cadastra o discente e ocupa uma vaga de orientação do orientador.
func (s *Service) Matricular(ctx context.Context, d Discente) (Discente, error) {
	if err := util.RequireString(d.Nome, "nome"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if err := util.ValidateEmail(d.Email); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if !d.TipoCurso.Valido() {
		return Discente{}, fmt.Errorf("%w: tipo de curso desconhecido", apperr.ErrValidation)
	}
	if d.DataIngresso.IsZero() {
		d.DataIngresso = clock.Hoje(s.clk)
	}

	orientador, err := s.orientacoes.BuscarPorID(ctx, d.OrientadorID)
	if err != nil {
		return Discente{}, fmt.Errorf("%w: orientador", apperr.ErrNotFound)
	}
	if orientador.ProgramaID != d.ProgramaID {
		return Discente{}, fmt.Errorf("%w: orientador não pertence ao programa informado", apperr.ErrValidation)
	}
	if !orientador.PodeOrientar() {
		return Discente{}, fmt.Errorf("%w: orientador não está apto a orientar novos alunos", apperr.ErrInvalidState)
	}

	meses := prazoMesesMestrado
	if d.TipoCurso == CursoDoutorado {
		meses = prazoMesesDoutorado
	}
	limite := d.DataIngresso.AddDate(0, meses, 0)
	d.DataLimite = &limite
	d.Status = StatusMatriculado

	criado, err := s.repo.Criar(ctx, d)
	if err != nil {
		return Discente{}, err
	}

	if _, err := s.orientacoes.VincularOrientacao(ctx, d.OrientadorID, tipoOrientacao(d.TipoCurso)); err != nil {
		return Discente{}, err
	}

	log.Info().Str("discente_id", criado.ID.String()).Msg("discente matriculado")
	return criado, nil
}

func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID) (Discente, error) {
	return s.repo.BuscarPorID(ctx, id)
}

func (s *Service) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Discente, error) {
	return s.repo.ListarPorPrograma(ctx, programaID)
}

// RegistrarQualificacao grava o exame de qualificação do discente.
func (s *Service) RegistrarQualificacao(ctx context.Context, id uuid.UUID, data time.Time, resultado string) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if !d.Ativo() {
		return Discente{}, fmt.Errorf("%w: discente não está ativo", apperr.ErrInvalidState)
	}
	if err := util.RequireString(resultado, "resultado"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if data.Before(d.DataIngresso) {
		return Discente{}, fmt.Errorf("%w: data da qualificação anterior ao ingresso", apperr.ErrValidation)
	}

	aprovado := resultado != "Reprovado"
	d.QualificacaoRealizada = aprovado
	d.DataQualificacao = &data
	d.ResultadoQualificacao = &resultado
	if aprovado {
		d.Status = StatusQualificado
	}

	return s.repo.Salvar(ctx, d)
}

// RegistrarDefesa grava a defesa; a data nunca antecede o ingresso.
func (s *Service) RegistrarDefesa(ctx context.Context, id uuid.UUID, data time.Time, resultado string, nota *float64) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if !d.PodeDefender() {
		return Discente{}, fmt.Errorf("%w: discente não está apto a defender (requer qualificação aprovada)", apperr.ErrInvalidState)
	}
	if err := util.RequireString(resultado, "resultado"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if data.Before(d.DataIngresso) {
		return Discente{}, fmt.Errorf("%w: data da defesa anterior ao ingresso", apperr.ErrValidation)
	}

	d.DataDefesa = &data
	d.ResultadoDefesa = &resultado
	d.NotaDefesa = nota
	d.Status = StatusDefendendo

	return s.repo.Salvar(ctx, d)
}

// Prorrogar estende a data limite e registra o histórico da concessão.
func (s *Service) Prorrogar(ctx context.Context, id uuid.UUID, meses int, motivo string) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if !d.Ativo() {
		return Discente{}, fmt.Errorf("%w: discente não está ativo", apperr.ErrInvalidState)
	}
	if meses <= 0 || meses > 12 {
		return Discente{}, fmt.Errorf("%w: prorrogação deve ser de 1 a 12 meses", apperr.ErrValidation)
	}
	if err := util.RequireString(motivo, "motivo"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	base := d.DataIngresso
	if d.DataLimite != nil {
		base = *d.DataLimite
	}
	limite := base.AddDate(0, meses, 0)
	d.DataLimite = &limite
	d.Prorrogacoes = append(d.Prorrogacoes, Prorrogacao{
		Motivo:        motivo,
		Meses:         meses,
		DataAprovacao: clock.Hoje(s.clk),
	})

	return s.repo.Salvar(ctx, d)
}

// Trancar suspende temporariamente o vínculo.
func (s *Service) Trancar(ctx context.Context, id uuid.UUID, motivo string) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if !d.Ativo() {
		return Discente{}, fmt.Errorf("%w: somente discentes ativos podem trancar", apperr.ErrInvalidState)
	}
	if err := util.RequireString(motivo, "motivo"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	d.Status = StatusTrancado
	d.MotivoDesligamento = &motivo
	return s.repo.Salvar(ctx, d)
}

// Desligar encerra o vínculo e devolve a vaga de orientação.
func (s *Service) Desligar(ctx context.Context, id uuid.UUID, motivo string) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if d.Status.Final() {
		return Discente{}, fmt.Errorf("%w: discente já está em estado final", apperr.ErrInvalidState)
	}
	if err := util.RequireString(motivo, "motivo"); err != nil {
		return Discente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	d.Status = StatusDesligado
	d.MotivoDesligamento = &motivo
	salvo, err := s.repo.Salvar(ctx, d)
	if err != nil {
		return Discente{}, err
	}

	if _, err := s.orientacoes.DesligarOrientacao(ctx, d.OrientadorID, tipoOrientacao(d.TipoCurso)); err != nil {
		log.Warn().Err(err).Str("discente_id", id.String()).Msg("vaga de orientação não devolvida")
	}

	log.Info().Str("discente_id", id.String()).Msg("discente desligado")
	return salvo, nil
}

// Titular conclui o curso após defesa aprovada.
func (s *Service) Titular(ctx context.Context, id uuid.UUID) (Discente, error) {
	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Discente{}, err
	}
	if d.DataDefesa == nil {
		return Discente{}, fmt.Errorf("%w: discente ainda não defendeu", apperr.ErrInvalidState)
	}
	if d.ResultadoDefesa == nil || *d.ResultadoDefesa == "Reprovado" {
		return Discente{}, fmt.Errorf("%w: defesa não foi aprovada", apperr.ErrInvalidState)
	}

	d.Status = StatusTitulado
	salvo, err := s.repo.Salvar(ctx, d)
	if err != nil {
		return Discente{}, err
	}

	if _, err := s.orientacoes.ConcluirOrientacao(ctx, d.OrientadorID, tipoOrientacao(d.TipoCurso)); err != nil {
		log.Warn().Err(err).Str("discente_id", id.String()).Msg("orientação não marcada como concluída")
	}

	log.Info().Str("discente_id", id.String()).Msg("discente titulado")
	return salvo, nil
}

// Deletar remove o registro; bloqueado quando há trabalho de conclusão vinculado.
func (s *Service) Deletar(ctx context.Context, id uuid.UUID) error {
	vinculado, err := s.repo.TemTrabalhoVinculado(ctx, id)
	if err != nil {
		return err
	}
	if vinculado {
		return fmt.Errorf("%w: discente possui trabalho de conclusão vinculado", apperr.ErrConflict)
	}
	return s.repo.Deletar(ctx, id)
}
