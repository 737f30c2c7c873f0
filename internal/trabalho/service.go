package trabalho

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/clock"
	"github.com/ppghub/academico/internal/discente"
	"github.com/ppghub/academico/internal/storage"
	"github.com/ppghub/academico/internal/util"
)

// TrabalhoRepository abstrai a persistência de trabalhos de conclusão.
type TrabalhoRepository interface {
	Criar(ctx context.Context, t TrabalhoConclusao) (TrabalhoConclusao, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (TrabalhoConclusao, error)
	BuscarPorDiscente(ctx context.Context, discenteID uuid.UUID) (TrabalhoConclusao, error)
	ListarPorOrientador(ctx context.Context, orientadorID uuid.UUID) ([]TrabalhoConclusao, error)
	Salvar(ctx context.Context, t TrabalhoConclusao) (TrabalhoConclusao, error)
	ContarPorStatus(ctx context.Context) (map[StatusTrabalho]int, error)
}

// Discentes é a fatia do serviço de discentes consumida aqui.
type Discentes interface {
	BuscarPorID(ctx context.Context, id uuid.UUID) (discente.Discente, error)
}

// Service contém as regras do trabalho de conclusão.
type Service struct {
	repo      TrabalhoRepository
	discentes Discentes
	uploader  storage.Uploader
	clk       clock.Clock
}

func NewService(repo TrabalhoRepository, discentes Discentes, uploader storage.Uploader, clk clock.Clock) *Service {
	return &Service{repo: repo, discentes: discentes, uploader: uploader, clk: clk}
}

func tipoEsperado(curso discente.TipoCurso) TipoTrabalho {
	if curso == discente.CursoDoutorado {
		return TrabalhoTese
	}
	return TrabalhoDissertacao
}

// Criar registra o trabalho do discente; cada discente tem no máximo um.
func (s *Service) Criar(ctx context.Context, t TrabalhoConclusao) (TrabalhoConclusao, error) {
	if err := util.RequireString(t.Titulo, "titulo"); err != nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if !t.Tipo.Valido() {
		return TrabalhoConclusao{}, fmt.Errorf("%w: tipo de trabalho desconhecido", apperr.ErrValidation)
	}

	d, err := s.discentes.BuscarPorID(ctx, t.DiscenteID)
	if err != nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: discente", apperr.ErrNotFound)
	}
	if !d.Ativo() {
		return TrabalhoConclusao{}, fmt.Errorf("%w: discente não está ativo", apperr.ErrInvalidState)
	}
	if t.Tipo != tipoEsperado(d.TipoCurso) {
		return TrabalhoConclusao{}, fmt.Errorf("%w: tipo de trabalho incompatível com o curso de %s", apperr.ErrValidation, d.TipoCurso)
	}

	if _, err := s.repo.BuscarPorDiscente(ctx, t.DiscenteID); err == nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: discente já possui trabalho registrado", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return TrabalhoConclusao{}, err
	}

	if t.OrientadorID == uuid.Nil {
		t.OrientadorID = d.OrientadorID
	}
	t.Status = TrabalhoEmPreparacao

	criado, err := s.repo.Criar(ctx, t)
	if err != nil {
		return TrabalhoConclusao{}, err
	}
	log.Info().Str("trabalho_id", criado.ID.String()).Msg("trabalho registrado")
	return criado, nil
}

func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID) (TrabalhoConclusao, error) {
	return s.repo.BuscarPorID(ctx, id)
}

func (s *Service) BuscarPorDiscente(ctx context.Context, discenteID uuid.UUID) (TrabalhoConclusao, error) {
	return s.repo.BuscarPorDiscente(ctx, discenteID)
}

func (s *Service) ListarPorOrientador(ctx context.Context, orientadorID uuid.UUID) ([]TrabalhoConclusao, error) {
	return s.repo.ListarPorOrientador(ctx, orientadorID)
}

// Atualizar altera título, resumo e palavras-chave antes da defesa.
func (s *Service) Atualizar(ctx context.Context, id uuid.UUID, titulo, resumo string, palavrasChave []string) (TrabalhoConclusao, error) {
	t, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return TrabalhoConclusao{}, err
	}
	if t.Status != TrabalhoEmPreparacao && t.Status != TrabalhoSubmetido {
		return TrabalhoConclusao{}, fmt.Errorf("%w: trabalho %s não admite edição", apperr.ErrInvalidState, t.Status)
	}
	if err := util.RequireString(titulo, "titulo"); err != nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	t.Titulo = titulo
	t.Resumo = resumo
	t.PalavrasChave = palavrasChave
	return s.repo.Salvar(ctx, t)
}

// Submeter fecha a versão para o exame de qualificação; exige resumo e
// arquivo anexado.
func (s *Service) Submeter(ctx context.Context, id uuid.UUID) (TrabalhoConclusao, error) {
	t, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return TrabalhoConclusao{}, err
	}
	if t.Status != TrabalhoEmPreparacao {
		return TrabalhoConclusao{}, fmt.Errorf("%w: trabalho %s não pode ser submetido", apperr.ErrInvalidState, t.Status)
	}
	if t.Resumo == "" {
		return TrabalhoConclusao{}, fmt.Errorf("%w: resumo é obrigatório para submissão", apperr.ErrValidation)
	}
	if t.ArquivoURL == nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: arquivo do trabalho não anexado", apperr.ErrValidation)
	}

	t.Status = TrabalhoSubmetido
	return s.repo.Salvar(ctx, t)
}

// AnexarArquivo envia o documento e guarda a URL resultante.
func (s *Service) AnexarArquivo(ctx context.Context, id uuid.UUID, nome, contentType string, corpo []byte) (TrabalhoConclusao, error) {
	t, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return TrabalhoConclusao{}, err
	}
	if t.Status == TrabalhoPublicado {
		return TrabalhoConclusao{}, fmt.Errorf("%w: trabalho publicado não recebe novos arquivos", apperr.ErrInvalidState)
	}
	if err := util.RequireString(nome, "nome do arquivo"); err != nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	res, err := s.uploader.Upload(ctx, storage.UploadInput{
		Key:         path.Join("trabalhos", id.String(), nome),
		Body:        corpo,
		ContentType: contentType,
	})
	if err != nil {
		return TrabalhoConclusao{}, err
	}

	t.ArquivoURL = &res.URL
	return s.repo.Salvar(ctx, t)
}

// AplicarResultadoQualificacao recebe o desfecho do exame de qualificação.
// Aprovação destrava a defesa; reprovação mantém o trabalho submetido,
// apto a novo exame.
func (s *Service) AplicarResultadoQualificacao(ctx context.Context, trabalhoID uuid.UUID, aprovado bool) error {
	t, err := s.repo.BuscarPorID(ctx, trabalhoID)
	if err != nil {
		return err
	}
	if !t.Status.AguardandoQualificacao() {
		return fmt.Errorf("%w: trabalho %s não aguarda qualificação", apperr.ErrInvalidState, t.Status)
	}

	if aprovado {
		t.Status = TrabalhoQualificado
		if _, err := s.repo.Salvar(ctx, t); err != nil {
			return err
		}
	}
	log.Info().
		Str("trabalho_id", trabalhoID.String()).
		Bool("aprovado", aprovado).
		Msg("resultado de qualificação aplicado")
	return nil
}

// AplicarResultadoDefesa recebe o desfecho da banca de defesa. Aprovação
// carrega data e nota; reprovação deixa o trabalho como defendido, apto
// a nova banca.
func (s *Service) AplicarResultadoDefesa(ctx context.Context, trabalhoID uuid.UUID, aprovado bool, dataDefesa time.Time, notaFinal *float64) error {
	t, err := s.repo.BuscarPorID(ctx, trabalhoID)
	if err != nil {
		return err
	}
	if !t.Status.AguardandoDefesa() {
		return fmt.Errorf("%w: trabalho %s não aguarda defesa", apperr.ErrInvalidState, t.Status)
	}

	t.DataDefesa = &dataDefesa
	if aprovado {
		t.Status = TrabalhoAprovado
		t.NotaFinal = notaFinal
	} else {
		t.Status = TrabalhoDefendido
		t.NotaFinal = nil
	}

	if _, err := s.repo.Salvar(ctx, t); err != nil {
		return err
	}
	log.Info().
		Str("trabalho_id", trabalhoID.String()).
		Bool("aprovado", aprovado).
		Msg("resultado de defesa aplicado")
	return nil
}

// Publicar registra o depósito final do trabalho aprovado.
func (s *Service) Publicar(ctx context.Context, id uuid.UUID, localPublicacao string) (TrabalhoConclusao, error) {
	t, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return TrabalhoConclusao{}, err
	}
	if t.Status != TrabalhoAprovado {
		return TrabalhoConclusao{}, fmt.Errorf("%w: somente trabalhos aprovados podem ser publicados", apperr.ErrInvalidState)
	}
	if err := util.RequireString(localPublicacao, "local de publicação"); err != nil {
		return TrabalhoConclusao{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	hoje := clock.Hoje(s.clk)
	t.Status = TrabalhoPublicado
	t.LocalPublicacao = &localPublicacao
	t.DataPublicacao = &hoje
	return s.repo.Salvar(ctx, t)
}

// Painel devolve a contagem de trabalhos por status.
func (s *Service) Painel(ctx context.Context) (map[StatusTrabalho]int, error) {
	return s.repo.ContarPorStatus(ctx)
}
