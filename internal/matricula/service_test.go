package matricula

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/catalogo"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubRepo struct {
	matriculas map[uuid.UUID]Matricula
	oferta     catalogo.Oferta
}

func newServiceStub() *stubRepo {
	return &stubRepo{
		matriculas: make(map[uuid.UUID]Matricula),
		oferta:     catalogo.Oferta{ID: uuid.New(), Vagas: 20, Status: catalogo.OfertaEmCurso},
	}
}

func (r *stubRepo) seed(m Matricula) Matricula {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.OfertaID == uuid.Nil {
		m.OfertaID = r.oferta.ID
	}
	r.matriculas[m.ID] = m
	return m
}

func (r *stubRepo) Matricular(ctx context.Context, agora time.Time, ofertaID, discenteID uuid.UUID) (Matricula, error) {
	m := Matricula{ID: uuid.New(), OfertaID: ofertaID, DiscenteID: discenteID, Status: MatriculaAtiva, DataMatricula: agora}
	r.matriculas[m.ID] = m
	return m, nil
}

func (r *stubRepo) Liberar(ctx context.Context, matriculaID uuid.UUID, destino StatusMatricula) (Matricula, error) {
	m, ok := r.matriculas[matriculaID]
	if !ok {
		return Matricula{}, apperr.ErrNotFound
	}
	m.Status = destino
	r.matriculas[matriculaID] = m
	return m, nil
}

func (r *stubRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (Matricula, error) {
	m, ok := r.matriculas[id]
	if !ok {
		return Matricula{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *stubRepo) ListarPorOferta(ctx context.Context, ofertaID uuid.UUID) ([]Matricula, error) {
	var out []Matricula
	for _, m := range r.matriculas {
		if m.OfertaID == ofertaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubRepo) ListarPorDiscente(ctx context.Context, discenteID uuid.UUID) ([]Matricula, error) {
	var out []Matricula
	for _, m := range r.matriculas {
		if m.DiscenteID == discenteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubRepo) BuscarOferta(ctx context.Context, ofertaID uuid.UUID) (catalogo.Oferta, error) {
	if ofertaID != r.oferta.ID {
		return catalogo.Oferta{}, apperr.ErrNotFound
	}
	return r.oferta, nil
}

func (r *stubRepo) Salvar(ctx context.Context, m Matricula) (Matricula, error) {
	r.matriculas[m.ID] = m
	return m, nil
}

func novoServico(repo *stubRepo) *Service {
	return NewService(repo, fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)})
}

func TestLancarNota(t *testing.T) {
	ctx := context.Background()
	repo := newServiceStub()
	svc := novoServico(repo)

	m := repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaAtiva})

	t.Run("arredonda ao lancar", func(t *testing.T) {
		atual, err := svc.LancarNota(ctx, m.ID, 8.005)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if atual.Nota == nil || *atual.Nota != 8.01 {
			t.Errorf("nota = %v, esperado 8.01", atual.Nota)
		}
	})

	t.Run("fora da escala", func(t *testing.T) {
		if _, err := svc.LancarNota(ctx, m.ID, 10.5); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})

	t.Run("matricula trancada", func(t *testing.T) {
		trancada := repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaTrancada})
		if _, err := svc.LancarNota(ctx, trancada.ID, 7.0); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})

	t.Run("oferta fora do periodo letivo", func(t *testing.T) {
		aberta := newServiceStub()
		aberta.oferta.Status = catalogo.OfertaAberta
		segunda := aberta.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaAtiva})

		if _, err := novoServico(aberta).LancarNota(ctx, segunda.ID, 7.0); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})
}

func TestCalcularResultadosOferta(t *testing.T) {
	ctx := context.Background()

	t.Run("lote com aprovados, reprovados e pendencias", func(t *testing.T) {
		repo := newServiceStub()
		svc := novoServico(repo)

		repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaAtiva, Nota: f(8.5), Frequencia: f(90)})
		repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaAtiva, Nota: f(5.0), Frequencia: f(80)})
		repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaAtiva, Nota: f(9.0)})
		repo.seed(Matricula{DiscenteID: uuid.New(), Status: MatriculaTrancada})

		resumo, err := svc.CalcularResultadosOferta(ctx, repo.oferta.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if resumo.Processadas != 3 {
			t.Errorf("processadas = %d", resumo.Processadas)
		}
		if resumo.Aprovadas != 1 || resumo.Reprovadas != 1 || resumo.ComErro != 1 {
			t.Errorf("aprovadas = %d, reprovadas = %d, com erro = %d",
				resumo.Aprovadas, resumo.Reprovadas, resumo.ComErro)
		}
		if len(resumo.Erros) != 1 {
			t.Errorf("erros = %v", resumo.Erros)
		}
	})

	t.Run("oferta ainda aberta", func(t *testing.T) {
		repo := newServiceStub()
		repo.oferta.Status = catalogo.OfertaAberta
		svc := novoServico(repo)

		if _, err := svc.CalcularResultadosOferta(ctx, repo.oferta.ID); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})
}
