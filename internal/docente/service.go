package docente

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/util"
)

// DocenteRepository abstrai a persistência de docentes.
type DocenteRepository interface {
	Criar(ctx context.Context, d Docente) (Docente, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (Docente, error)
	ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Docente, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status StatusDocente) error
	AjustarOrientacoes(ctx context.Context, id uuid.UUID, tipo TipoOrientacao, deltaAndamento, deltaConcluidas int) (Docente, error)
}

// Service contém as regras de negócio de docentes.
type Service struct {
	repo DocenteRepository
}

func NewService(repo DocenteRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Criar(ctx context.Context, d Docente) (Docente, error) {
	if err := util.RequireString(d.Nome, "nome"); err != nil {
		return Docente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if err := util.ValidateEmail(d.Email); err != nil {
		return Docente{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if !d.Vinculo.Valido() {
		return Docente{}, fmt.Errorf("%w: vínculo desconhecido", apperr.ErrValidation)
	}
	if d.Status == "" {
		d.Status = StatusAtivo
	}
	if !d.Status.Valido() {
		return Docente{}, fmt.Errorf("%w: status desconhecido", apperr.ErrValidation)
	}

	criado, err := s.repo.Criar(ctx, d)
	if err != nil {
		return Docente{}, err
	}
	log.Info().Str("docente_id", criado.ID.String()).Msg("docente cadastrado")
	return criado, nil
}

func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID) (Docente, error) {
	return s.repo.BuscarPorID(ctx, id)
}

func (s *Service) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Docente, error) {
	return s.repo.ListarPorPrograma(ctx, programaID)
}

// VincularOrientacao incrementa o contador de orientações em andamento.
func (s *Service) VincularOrientacao(ctx context.Context, id uuid.UUID, tipo TipoOrientacao) (Docente, error) {
	if !tipo.Valido() {
		return Docente{}, fmt.Errorf("%w: tipo de orientação desconhecido", apperr.ErrValidation)
	}

	d, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Docente{}, err
	}
	if !d.Status.Ativo() {
		return Docente{}, fmt.Errorf("%w: docente não está ativo", apperr.ErrInvalidState)
	}
	if d.TotalOrientacoesAndamento() >= LimiteOrientacoes {
		return Docente{}, fmt.Errorf("%w: docente atingiu o limite de %d orientações simultâneas", apperr.ErrInvalidState, LimiteOrientacoes)
	}

	return s.repo.AjustarOrientacoes(ctx, id, tipo, +1, 0)
}

// ConcluirOrientacao move uma orientação de andamento para concluída.
func (s *Service) ConcluirOrientacao(ctx context.Context, id uuid.UUID, tipo TipoOrientacao) (Docente, error) {
	if !tipo.Valido() {
		return Docente{}, fmt.Errorf("%w: tipo de orientação desconhecido", apperr.ErrValidation)
	}

	d, err := s.repo.AjustarOrientacoes(ctx, id, tipo, -1, +1)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidState) {
			return Docente{}, fmt.Errorf("%w: docente não possui orientação em andamento deste tipo", apperr.ErrInvalidState)
		}
		return Docente{}, err
	}
	return d, nil
}

// DesligarOrientacao devolve a vaga sem registrar conclusão (troca de orientador).
func (s *Service) DesligarOrientacao(ctx context.Context, id uuid.UUID, tipo TipoOrientacao) (Docente, error) {
	if !tipo.Valido() {
		return Docente{}, fmt.Errorf("%w: tipo de orientação desconhecido", apperr.ErrValidation)
	}
	return s.repo.AjustarOrientacoes(ctx, id, tipo, -1, 0)
}

func (s *Service) AtualizarStatus(ctx context.Context, id uuid.UUID, status StatusDocente) error {
	if !status.Valido() {
		return fmt.Errorf("%w: status desconhecido", apperr.ErrValidation)
	}
	if err := s.repo.AtualizarStatus(ctx, id, status); err != nil {
		return err
	}
	log.Info().Str("docente_id", id.String()).Str("status", string(status)).Msg("status do docente atualizado")
	return nil
}
