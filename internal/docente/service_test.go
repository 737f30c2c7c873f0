package docente

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/apperr"
)

type stubRepo struct {
	docentes map[uuid.UUID]Docente
}

func newStubRepo() *stubRepo {
	return &stubRepo{docentes: make(map[uuid.UUID]Docente)}
}

func (r *stubRepo) seed(d Docente) Docente {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.docentes[d.ID] = d
	return d
}

func (r *stubRepo) Criar(ctx context.Context, d Docente) (Docente, error) {
	d.ID = uuid.New()
	r.docentes[d.ID] = d
	return d, nil
}

func (r *stubRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (Docente, error) {
	d, ok := r.docentes[id]
	if !ok {
		return Docente{}, apperr.ErrNotFound
	}
	return d, nil
}

func (r *stubRepo) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Docente, error) {
	var out []Docente
	for _, d := range r.docentes {
		if d.ProgramaID == programaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubRepo) AtualizarStatus(ctx context.Context, id uuid.UUID, status StatusDocente) error {
	d, ok := r.docentes[id]
	if !ok {
		return apperr.ErrNotFound
	}
	d.Status = status
	r.docentes[id] = d
	return nil
}

func (r *stubRepo) AjustarOrientacoes(ctx context.Context, id uuid.UUID, tipo TipoOrientacao, deltaAndamento, deltaConcluidas int) (Docente, error) {
	d, ok := r.docentes[id]
	if !ok {
		return Docente{}, apperr.ErrNotFound
	}
	switch tipo {
	case OrientacaoMestrado:
		d.OrientacoesMestradoAndamento += deltaAndamento
		d.OrientacoesMestradoConcluidas += deltaConcluidas
		if d.OrientacoesMestradoAndamento < 0 {
			return Docente{}, fmt.Errorf("%w: contador negativo", apperr.ErrInvalidState)
		}
	case OrientacaoDoutorado:
		d.OrientacoesDoutoradoAndamento += deltaAndamento
		d.OrientacoesDoutoradoConcluidas += deltaConcluidas
		if d.OrientacoesDoutoradoAndamento < 0 {
			return Docente{}, fmt.Errorf("%w: contador negativo", apperr.ErrInvalidState)
		}
	}
	r.docentes[id] = d
	return d, nil
}

func TestCriarDocente(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStubRepo())

	t.Run("status padrao ativo", func(t *testing.T) {
		d, err := svc.Criar(ctx, Docente{
			ProgramaID: uuid.New(),
			Nome:       "Prof. Carlos Mota",
			Email:      "carlos.mota@exemplo.edu.br",
			Vinculo:    VinculoPermanente,
		})
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if d.Status != StatusAtivo {
			t.Errorf("status = %s", d.Status)
		}
	})

	t.Run("email invalido", func(t *testing.T) {
		_, err := svc.Criar(ctx, Docente{
			Nome:    "Prof. Carlos Mota",
			Email:   "sem-arroba",
			Vinculo: VinculoPermanente,
		})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})
}

func TestVincularOrientacao(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	t.Run("incrementa o contador do tipo", func(t *testing.T) {
		d := repo.seed(Docente{Status: StatusAtivo})
		atual, err := svc.VincularOrientacao(ctx, d.ID, OrientacaoDoutorado)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if atual.OrientacoesDoutoradoAndamento != 1 {
			t.Errorf("doutorado em andamento = %d", atual.OrientacoesDoutoradoAndamento)
		}
	})

	t.Run("limite de orientacoes simultaneas", func(t *testing.T) {
		d := repo.seed(Docente{
			Status:                        StatusAtivo,
			OrientacoesMestradoAndamento:  5,
			OrientacoesDoutoradoAndamento: 3,
		})
		if _, err := svc.VincularOrientacao(ctx, d.ID, OrientacaoMestrado); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})

	t.Run("docente afastado", func(t *testing.T) {
		d := repo.seed(Docente{Status: StatusAfastado})
		if _, err := svc.VincularOrientacao(ctx, d.ID, OrientacaoMestrado); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})
}

func TestConcluirOrientacao(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	d := repo.seed(Docente{Status: StatusAtivo, OrientacoesMestradoAndamento: 1})

	atual, err := svc.ConcluirOrientacao(ctx, d.ID, OrientacaoMestrado)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if atual.OrientacoesMestradoAndamento != 0 || atual.OrientacoesMestradoConcluidas != 1 {
		t.Errorf("andamento = %d, concluídas = %d",
			atual.OrientacoesMestradoAndamento, atual.OrientacoesMestradoConcluidas)
	}

	if _, err := svc.ConcluirOrientacao(ctx, d.ID, OrientacaoMestrado); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("concluir sem orientação: esperado ErrInvalidState, veio %v", err)
	}
}
