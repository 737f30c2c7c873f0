package matricula

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/catalogo"
	"github.com/ppghub/academico/internal/clock"
)

// MatriculaRepository abstrai a persistência de matrículas.
type MatriculaRepository interface {
	Matricular(ctx context.Context, agora time.Time, ofertaID, discenteID uuid.UUID) (Matricula, error)
	Liberar(ctx context.Context, matriculaID uuid.UUID, destino StatusMatricula) (Matricula, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (Matricula, error)
	ListarPorOferta(ctx context.Context, ofertaID uuid.UUID) ([]Matricula, error)
	ListarPorDiscente(ctx context.Context, discenteID uuid.UUID) ([]Matricula, error)
	BuscarOferta(ctx context.Context, ofertaID uuid.UUID) (catalogo.Oferta, error)
	Salvar(ctx context.Context, m Matricula) (Matricula, error)
}

// Service contém as regras de matrícula em disciplinas.
type Service struct {
	repo MatriculaRepository
	clk  clock.Clock
}

func NewService(repo MatriculaRepository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// Matricular disputa uma vaga na oferta. Toda a checagem corre com a
// linha da oferta travada, então duas requisições pela última vaga
// nunca são atendidas ambas.
func (s *Service) Matricular(ctx context.Context, ofertaID, discenteID uuid.UUID) (Matricula, error) {
	m, err := s.repo.Matricular(ctx, clock.Hoje(s.clk), ofertaID, discenteID)
	if err != nil {
		return Matricula{}, err
	}
	log.Info().
		Str("matricula_id", m.ID.String()).
		Str("oferta_id", ofertaID.String()).
		Msg("matrícula efetivada")
	return m, nil
}

// Trancar devolve a vaga mantendo o registro no histórico.
func (s *Service) Trancar(ctx context.Context, id uuid.UUID) (Matricula, error) {
	return s.repo.Liberar(ctx, id, MatriculaTrancada)
}

// Cancelar devolve a vaga; matrículas canceladas não bloqueiam nova tentativa.
func (s *Service) Cancelar(ctx context.Context, id uuid.UUID) (Matricula, error) {
	return s.repo.Liberar(ctx, id, MatriculaCancelada)
}

func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID) (Matricula, error) {
	return s.repo.BuscarPorID(ctx, id)
}

func (s *Service) ListarPorOferta(ctx context.Context, ofertaID uuid.UUID) ([]Matricula, error) {
	return s.repo.ListarPorOferta(ctx, ofertaID)
}

func (s *Service) ListarPorDiscente(ctx context.Context, discenteID uuid.UUID) ([]Matricula, error) {
	return s.repo.ListarPorDiscente(ctx, discenteID)
}

// lancavel verifica se a matrícula e a oferta aceitam lançamentos.
// Notas e frequências só entram com a turma em curso ou já concluída.
func (s *Service) lancavel(ctx context.Context, m Matricula) error {
	if m.Status != MatriculaAtiva {
		return fmt.Errorf("%w: matrícula %s não recebe lançamentos", apperr.ErrInvalidState, m.Status)
	}
	oferta, err := s.repo.BuscarOferta(ctx, m.OfertaID)
	if err != nil {
		return err
	}
	if oferta.Status != catalogo.OfertaEmCurso && oferta.Status != catalogo.OfertaConcluida {
		return fmt.Errorf("%w: oferta %s não admite lançamentos", apperr.ErrInvalidState, oferta.Status)
	}
	return nil
}

// LancarNota registra a nota bruta; a consolidação acontece depois.
func (s *Service) LancarNota(ctx context.Context, id uuid.UUID, nota float64) (Matricula, error) {
	if nota < 0 || nota > 10 {
		return Matricula{}, fmt.Errorf("%w: nota deve estar entre 0 e 10", apperr.ErrValidation)
	}

	m, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Matricula{}, err
	}
	if err := s.lancavel(ctx, m); err != nil {
		return Matricula{}, err
	}

	arredondada := ArredondarNota(nota)
	m.Nota = &arredondada
	return s.repo.Salvar(ctx, m)
}

// LancarFrequencia registra o percentual de presença.
func (s *Service) LancarFrequencia(ctx context.Context, id uuid.UUID, frequencia float64) (Matricula, error) {
	if frequencia < 0 || frequencia > 100 {
		return Matricula{}, fmt.Errorf("%w: frequência deve estar entre 0 e 100", apperr.ErrValidation)
	}

	m, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Matricula{}, err
	}
	if err := s.lancavel(ctx, m); err != nil {
		return Matricula{}, err
	}

	arredondada := ArredondarNota(frequencia)
	m.Frequencia = &arredondada
	return s.repo.Salvar(ctx, m)
}

// CalcularResultado consolida uma matrícula individual.
func (s *Service) CalcularResultado(ctx context.Context, id uuid.UUID) (Matricula, error) {
	m, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return Matricula{}, err
	}
	consolidada, err := m.CalcularResultado()
	if err != nil {
		return Matricula{}, err
	}
	return s.repo.Salvar(ctx, consolidada)
}

// CalcularResultadosOferta consolida todas as matrículas ativas da oferta.
// Itens sem nota ou frequência entram na contagem de erros sem abortar o lote.
func (s *Service) CalcularResultadosOferta(ctx context.Context, ofertaID uuid.UUID) (ResumoResultados, error) {
	oferta, err := s.repo.BuscarOferta(ctx, ofertaID)
	if err != nil {
		return ResumoResultados{}, err
	}
	if oferta.Status != catalogo.OfertaEmCurso && oferta.Status != catalogo.OfertaConcluida {
		return ResumoResultados{}, fmt.Errorf("%w: oferta %s não admite consolidação de resultados", apperr.ErrInvalidState, oferta.Status)
	}

	matriculas, err := s.repo.ListarPorOferta(ctx, ofertaID)
	if err != nil {
		return ResumoResultados{}, err
	}

	var resumo ResumoResultados
	for _, m := range matriculas {
		if m.Status != MatriculaAtiva {
			continue
		}
		resumo.Processadas++

		consolidada, err := m.CalcularResultado()
		if err != nil {
			resumo.ComErro++
			resumo.Erros = append(resumo.Erros, fmt.Sprintf("matrícula %s: %v", m.ID, err))
			continue
		}
		if _, err := s.repo.Salvar(ctx, consolidada); err != nil {
			resumo.ComErro++
			resumo.Erros = append(resumo.Erros, fmt.Sprintf("matrícula %s: %v", m.ID, err))
			continue
		}

		if consolidada.Status == MatriculaAprovado {
			resumo.Aprovadas++
		} else {
			resumo.Reprovadas++
		}
	}

	log.Info().
		Str("oferta_id", ofertaID.String()).
		Int("processadas", resumo.Processadas).
		Int("com_erro", resumo.ComErro).
		Msg("resultados consolidados")
	return resumo, nil
}
