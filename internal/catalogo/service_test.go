package catalogo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/apperr"
)

type stubRepo struct {
	disciplinas map[uuid.UUID]Disciplina
	ofertas     map[uuid.UUID]Oferta
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		disciplinas: make(map[uuid.UUID]Disciplina),
		ofertas:     make(map[uuid.UUID]Oferta),
	}
}

func (r *stubRepo) seedDisciplina(d Disciplina) Disciplina {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.disciplinas[d.ID] = d
	return d
}

func (r *stubRepo) seedOferta(o Oferta) Oferta {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ofertas[o.ID] = o
	return o
}

func (r *stubRepo) CriarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	d.ID = uuid.New()
	r.disciplinas[d.ID] = d
	return d, nil
}

func (r *stubRepo) BuscarDisciplina(ctx context.Context, id uuid.UUID) (Disciplina, error) {
	d, ok := r.disciplinas[id]
	if !ok {
		return Disciplina{}, apperr.ErrNotFound
	}
	return d, nil
}

func (r *stubRepo) BuscarDisciplinaPorCodigo(ctx context.Context, programaID uuid.UUID, codigo string) (Disciplina, error) {
	for _, d := range r.disciplinas {
		if d.ProgramaID == programaID && d.Codigo == codigo {
			return d, nil
		}
	}
	return Disciplina{}, apperr.ErrNotFound
}

func (r *stubRepo) ListarDisciplinas(ctx context.Context, programaID uuid.UUID) ([]Disciplina, error) {
	var out []Disciplina
	for _, d := range r.disciplinas {
		if d.ProgramaID == programaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubRepo) AtualizarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	r.disciplinas[d.ID] = d
	return d, nil
}

func (r *stubRepo) CriarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	o.ID = uuid.New()
	r.ofertas[o.ID] = o
	return o, nil
}

func (r *stubRepo) BuscarOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	o, ok := r.ofertas[id]
	if !ok {
		return Oferta{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r *stubRepo) ListarOfertasPorPeriodo(ctx context.Context, periodo string) ([]Oferta, error) {
	var out []Oferta
	for _, o := range r.ofertas {
		if o.Periodo == periodo {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubRepo) ListarOfertasComVagas(ctx context.Context, periodo string) ([]Oferta, error) {
	var out []Oferta
	for _, o := range r.ofertas {
		if o.Periodo == periodo && o.Status == OfertaAberta && o.VagasDisponiveis() > 0 {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubRepo) AtualizarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	r.ofertas[o.ID] = o
	return o, nil
}

func (r *stubRepo) AtualizarStatusOferta(ctx context.Context, id uuid.UUID, status StatusOferta) (Oferta, error) {
	o, ok := r.ofertas[id]
	if !ok {
		return Oferta{}, apperr.ErrNotFound
	}
	o.Status = status
	r.ofertas[id] = o
	return o, nil
}

func TestCriarDisciplina(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo, nil)
	programaID := uuid.New()

	t.Run("criada como ativa", func(t *testing.T) {
		d, err := svc.CriarDisciplina(ctx, Disciplina{
			ProgramaID:         programaID,
			Codigo:             "PPGCC7101",
			Nome:               "Métodos de Pesquisa",
			Tipo:               DisciplinaObrigatoria,
			CargaHorariaTeoria: 45,
		})
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if d.Status != DisciplinaAtiva {
			t.Errorf("status = %s", d.Status)
		}
	})

	t.Run("codigo duplicado no programa", func(t *testing.T) {
		_, err := svc.CriarDisciplina(ctx, Disciplina{
			ProgramaID:         programaID,
			Codigo:             "PPGCC7101",
			Nome:               "Outra",
			Tipo:               DisciplinaEletiva,
			CargaHorariaTeoria: 30,
		})
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("esperado ErrConflict, veio %v", err)
		}
	})

	t.Run("carga horaria zerada", func(t *testing.T) {
		_, err := svc.CriarDisciplina(ctx, Disciplina{
			ProgramaID: programaID,
			Codigo:     "PPGCC7102",
			Nome:       "Sem carga",
			Tipo:       DisciplinaEletiva,
		})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})
}

func TestCriarOferta(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo, nil)

	ativa := repo.seedDisciplina(Disciplina{Nome: "Métodos", Status: DisciplinaAtiva})
	inativa := repo.seedDisciplina(Disciplina{Nome: "Extinta", Status: DisciplinaInativa})

	t.Run("nasce planejada sem ocupacao", func(t *testing.T) {
		o, err := svc.CriarOferta(ctx, Oferta{
			DisciplinaID: ativa.ID,
			DocenteID:    uuid.New(),
			Periodo:      "2026.1",
			Vagas:        20,
			Ocupadas:     5,
		})
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if o.Status != OfertaPlanejada || o.Ocupadas != 0 {
			t.Errorf("status = %s, ocupadas = %d", o.Status, o.Ocupadas)
		}
	})

	t.Run("disciplina inativa", func(t *testing.T) {
		_, err := svc.CriarOferta(ctx, Oferta{DisciplinaID: inativa.ID, Periodo: "2026.1", Vagas: 10})
		if !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})

	t.Run("periodo fora do formato", func(t *testing.T) {
		_, err := svc.CriarOferta(ctx, Oferta{DisciplinaID: ativa.ID, Periodo: "2026.3", Vagas: 10})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})
}

func TestTransicoesOferta(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo, nil)

	o := repo.seedOferta(Oferta{Periodo: "2026.1", Vagas: 10, Status: OfertaPlanejada})

	aberta, err := svc.AbrirOferta(ctx, o.ID)
	if err != nil {
		t.Fatalf("abrir: %v", err)
	}
	if aberta.Status != OfertaAberta {
		t.Errorf("status = %s", aberta.Status)
	}

	if _, err := svc.ConcluirOferta(ctx, o.ID); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("aberta -> concluída: esperado ErrInvalidState, veio %v", err)
	}

	if _, err := svc.FecharOferta(ctx, o.ID); err != nil {
		t.Fatalf("fechar: %v", err)
	}
	if _, err := svc.IniciarOferta(ctx, o.ID); err != nil {
		t.Fatalf("iniciar: %v", err)
	}
	concluida, err := svc.ConcluirOferta(ctx, o.ID)
	if err != nil {
		t.Fatalf("concluir: %v", err)
	}
	if concluida.Status != OfertaConcluida {
		t.Errorf("status = %s", concluida.Status)
	}

	if _, err := svc.CancelarOferta(ctx, o.ID); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("cancelar concluída: esperado ErrInvalidState, veio %v", err)
	}
}

func TestAtualizarOferta(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo, nil)

	o := repo.seedOferta(Oferta{Periodo: "2026.1", Vagas: 20, Ocupadas: 12, Status: OfertaAberta})

	t.Run("vagas abaixo da ocupacao", func(t *testing.T) {
		o.Vagas = 10
		if _, err := svc.AtualizarOferta(ctx, o); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})

	t.Run("ampliacao de vagas", func(t *testing.T) {
		o.Vagas = 30
		salva, err := svc.AtualizarOferta(ctx, o)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if salva.Vagas != 30 || salva.Ocupadas != 12 {
			t.Errorf("vagas = %d, ocupadas = %d", salva.Vagas, salva.Ocupadas)
		}
	})
}
