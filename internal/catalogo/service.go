package catalogo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/util"
)

var periodoRe = regexp.MustCompile(`^\d{4}\.[12]$`)

// CatalogoRepository abstrai a persistência de disciplinas e ofertas.
type CatalogoRepository interface {
	CriarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error)
	BuscarDisciplina(ctx context.Context, id uuid.UUID) (Disciplina, error)
	BuscarDisciplinaPorCodigo(ctx context.Context, programaID uuid.UUID, codigo string) (Disciplina, error)
	ListarDisciplinas(ctx context.Context, programaID uuid.UUID) ([]Disciplina, error)
	AtualizarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error)

	CriarOferta(ctx context.Context, o Oferta) (Oferta, error)
	BuscarOferta(ctx context.Context, id uuid.UUID) (Oferta, error)
	ListarOfertasPorPeriodo(ctx context.Context, periodo string) ([]Oferta, error)
	ListarOfertasComVagas(ctx context.Context, periodo string) ([]Oferta, error)
	AtualizarOferta(ctx context.Context, o Oferta) (Oferta, error)
	AtualizarStatusOferta(ctx context.Context, id uuid.UUID, status StatusOferta) (Oferta, error)
}

// Service contém as regras do catálogo de disciplinas e ofertas.
type Service struct {
	repo  CatalogoRepository
	cache *redis.Client
}

func NewService(repo CatalogoRepository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) CriarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	if err := util.RequireString(d.Codigo, "codigo"); err != nil {
		return Disciplina{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if err := util.RequireString(d.Nome, "nome"); err != nil {
		return Disciplina{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if !d.Tipo.Valido() {
		return Disciplina{}, fmt.Errorf("%w: tipo de disciplina desconhecido", apperr.ErrValidation)
	}
	if d.CargaHorariaTeoria < 0 || d.CargaHorariaPratica < 0 || d.CargaHorariaTotal() == 0 {
		return Disciplina{}, fmt.Errorf("%w: carga horária inválida", apperr.ErrValidation)
	}

	if _, err := s.repo.BuscarDisciplinaPorCodigo(ctx, d.ProgramaID, d.Codigo); err == nil {
		return Disciplina{}, fmt.Errorf("%w: já existe disciplina com o código %s", apperr.ErrConflict, d.Codigo)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return Disciplina{}, err
	}

	d.Status = DisciplinaAtiva
	return s.repo.CriarDisciplina(ctx, d)
}

func (s *Service) BuscarDisciplina(ctx context.Context, id uuid.UUID) (Disciplina, error) {
	return s.repo.BuscarDisciplina(ctx, id)
}

func (s *Service) ListarDisciplinas(ctx context.Context, programaID uuid.UUID) ([]Disciplina, error) {
	return s.repo.ListarDisciplinas(ctx, programaID)
}

// AtualizarDisciplina altera os dados mutáveis; o código é imutável.
func (s *Service) AtualizarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	atual, err := s.repo.BuscarDisciplina(ctx, d.ID)
	if err != nil {
		return Disciplina{}, err
	}
	if err := util.RequireString(d.Nome, "nome"); err != nil {
		return Disciplina{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if !d.Tipo.Valido() {
		return Disciplina{}, fmt.Errorf("%w: tipo de disciplina desconhecido", apperr.ErrValidation)
	}
	if !d.Status.Valido() {
		return Disciplina{}, fmt.Errorf("%w: status de disciplina desconhecido", apperr.ErrValidation)
	}
	if d.CargaHorariaTeoria < 0 || d.CargaHorariaPratica < 0 || d.CargaHorariaTotal() == 0 {
		return Disciplina{}, fmt.Errorf("%w: carga horária inválida", apperr.ErrValidation)
	}

	atual.Nome = d.Nome
	atual.Ementa = d.Ementa
	atual.CargaHorariaTeoria = d.CargaHorariaTeoria
	atual.CargaHorariaPratica = d.CargaHorariaPratica
	atual.Tipo = d.Tipo
	atual.Status = d.Status
	return s.repo.AtualizarDisciplina(ctx, atual)
}

func (s *Service) CriarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	disciplina, err := s.repo.BuscarDisciplina(ctx, o.DisciplinaID)
	if err != nil {
		return Oferta{}, fmt.Errorf("%w: disciplina", apperr.ErrNotFound)
	}
	if disciplina.Status != DisciplinaAtiva {
		return Oferta{}, fmt.Errorf("%w: disciplina inativa não admite ofertas", apperr.ErrInvalidState)
	}
	if !periodoRe.MatchString(o.Periodo) {
		return Oferta{}, fmt.Errorf("%w: período deve seguir o formato AAAA.S", apperr.ErrValidation)
	}
	if o.Vagas <= 0 {
		return Oferta{}, fmt.Errorf("%w: oferta deve ter ao menos uma vaga", apperr.ErrValidation)
	}

	o.Ocupadas = 0
	o.Status = OfertaPlanejada
	criada, err := s.repo.CriarOferta(ctx, o)
	if err != nil {
		return Oferta{}, err
	}
	s.invalidarCache(ctx, criada.Periodo)
	return criada, nil
}

func (s *Service) BuscarOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.repo.BuscarOferta(ctx, id)
}

func (s *Service) ListarOfertasPorPeriodo(ctx context.Context, periodo string) ([]Oferta, error) {
	return s.repo.ListarOfertasPorPeriodo(ctx, periodo)
}

// ListarOfertasComVagas serve a tela de matrícula; cacheada por período.
func (s *Service) ListarOfertasComVagas(ctx context.Context, periodo string) ([]Oferta, error) {
	key := fmt.Sprintf("catalogo:ofertas:vagas:%s", periodo)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var ofertas []Oferta
			if json.Unmarshal(data, &ofertas) == nil {
				return ofertas, nil
			}
		}
	}

	ofertas, err := s.repo.ListarOfertasComVagas(ctx, periodo)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(ofertas); err == nil {
			_ = s.cache.Set(ctx, key, payload, 60*time.Second).Err()
		}
	}

	return ofertas, nil
}

// AtualizarOferta nunca reduz vagas abaixo do total já ocupado.
func (s *Service) AtualizarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	atual, err := s.repo.BuscarOferta(ctx, o.ID)
	if err != nil {
		return Oferta{}, err
	}
	if atual.Status.Encerrada() {
		return Oferta{}, fmt.Errorf("%w: oferta encerrada não pode ser alterada", apperr.ErrInvalidState)
	}
	if o.Vagas < atual.Ocupadas {
		return Oferta{}, fmt.Errorf("%w: vagas (%d) menor que o total de matriculados (%d)", apperr.ErrValidation, o.Vagas, atual.Ocupadas)
	}

	atual.DocenteID = o.DocenteID
	atual.Vagas = o.Vagas
	atual.Horario = o.Horario
	atual.Sala = o.Sala
	salva, err := s.repo.AtualizarOferta(ctx, atual)
	if err != nil {
		return Oferta{}, err
	}
	s.invalidarCache(ctx, salva.Periodo)
	return salva, nil
}

func (s *Service) AbrirOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.transicionar(ctx, id, OfertaAberta)
}

func (s *Service) FecharOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.transicionar(ctx, id, OfertaFechada)
}

func (s *Service) IniciarOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.transicionar(ctx, id, OfertaEmCurso)
}

func (s *Service) ConcluirOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.transicionar(ctx, id, OfertaConcluida)
}

func (s *Service) CancelarOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	return s.transicionar(ctx, id, OfertaCancelada)
}

func (s *Service) transicionar(ctx context.Context, id uuid.UUID, destino StatusOferta) (Oferta, error) {
	o, err := s.repo.BuscarOferta(ctx, id)
	if err != nil {
		return Oferta{}, err
	}
	if !o.Status.PodeTransicionar(destino) {
		return Oferta{}, fmt.Errorf("%w: oferta %s não pode ir para %s", apperr.ErrInvalidState, o.Status, destino)
	}

	salva, err := s.repo.AtualizarStatusOferta(ctx, id, destino)
	if err != nil {
		return Oferta{}, err
	}
	s.invalidarCache(ctx, salva.Periodo)
	log.Info().Str("oferta_id", id.String()).Str("status", string(destino)).Msg("oferta transicionada")
	return salva, nil
}

// InvalidarCachePeriodo expõe a invalidação para quem altera ocupação fora daqui.
func (s *Service) InvalidarCachePeriodo(ctx context.Context, periodo string) {
	s.invalidarCache(ctx, periodo)
}

func (s *Service) invalidarCache(ctx context.Context, periodo string) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("catalogo:ofertas:vagas:%s", periodo)
	_ = s.cache.Del(ctx, key).Err()
}
