package discente

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/docente"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubRepo struct {
	discentes map[uuid.UUID]Discente
	vinculado bool
	deletados []uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{discentes: make(map[uuid.UUID]Discente)}
}

func (r *stubRepo) seed(d Discente) Discente {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.discentes[d.ID] = d
	return d
}

func (r *stubRepo) Criar(ctx context.Context, d Discente) (Discente, error) {
	d.ID = uuid.New()
	r.discentes[d.ID] = d
	return d, nil
}

func (r *stubRepo) BuscarPorID(ctx context.Context, id uuid.UUID) (Discente, error) {
	d, ok := r.discentes[id]
	if !ok {
		return Discente{}, apperr.ErrNotFound
	}
	return d, nil
}

func (r *stubRepo) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Discente, error) {
	var out []Discente
	for _, d := range r.discentes {
		if d.ProgramaID == programaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubRepo) Salvar(ctx context.Context, d Discente) (Discente, error) {
	r.discentes[d.ID] = d
	return d, nil
}

func (r *stubRepo) TemTrabalhoVinculado(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.vinculado, nil
}

func (r *stubRepo) Deletar(ctx context.Context, id uuid.UUID) error {
	delete(r.discentes, id)
	r.deletados = append(r.deletados, id)
	return nil
}

type stubOrientacoes struct {
	orientador docente.Docente

	vinculadas  int
	concluidas  int
	desligadas  int
	ultimoTipo  docente.TipoOrientacao
	errVincular error
}

func (s *stubOrientacoes) BuscarPorID(ctx context.Context, id uuid.UUID) (docente.Docente, error) {
	if s.orientador.ID != id {
		return docente.Docente{}, apperr.ErrNotFound
	}
	return s.orientador, nil
}

func (s *stubOrientacoes) VincularOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error) {
	if s.errVincular != nil {
		return docente.Docente{}, s.errVincular
	}
	s.vinculadas++
	s.ultimoTipo = tipo
	return s.orientador, nil
}

func (s *stubOrientacoes) ConcluirOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error) {
	s.concluidas++
	s.ultimoTipo = tipo
	return s.orientador, nil
}

func (s *stubOrientacoes) DesligarOrientacao(ctx context.Context, id uuid.UUID, tipo docente.TipoOrientacao) (docente.Docente, error) {
	s.desligadas++
	s.ultimoTipo = tipo
	return s.orientador, nil
}

func novoAmbiente(t *testing.T) (*Service, *stubRepo, *stubOrientacoes) {
	t.Helper()
	repo := newStubRepo()
	programaID := uuid.New()
	orientacoes := &stubOrientacoes{
		orientador: docente.Docente{
			ID:         uuid.New(),
			ProgramaID: programaID,
			Status:     docente.StatusAtivo,
		},
	}
	clk := fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewService(repo, orientacoes, clk), repo, orientacoes
}

func TestMatricular(t *testing.T) {
	ctx := context.Background()

	t.Run("mestrado com prazo de 24 meses", func(t *testing.T) {
		svc, _, orientacoes := novoAmbiente(t)
		ingresso := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		d, err := svc.Matricular(ctx, Discente{
			ProgramaID:   orientacoes.orientador.ProgramaID,
			OrientadorID: orientacoes.orientador.ID,
			Nome:         "Mariana Lopes",
			Email:        "mariana.lopes@exemplo.edu.br",
			TipoCurso:    CursoMestrado,
			DataIngresso: ingresso,
		})
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if d.Status != StatusMatriculado {
			t.Errorf("status = %s", d.Status)
		}
		esperado := ingresso.AddDate(0, 24, 0)
		if d.DataLimite == nil || !d.DataLimite.Equal(esperado) {
			t.Errorf("data limite = %v, esperado %v", d.DataLimite, esperado)
		}
		if orientacoes.vinculadas != 1 || orientacoes.ultimoTipo != docente.OrientacaoMestrado {
			t.Errorf("orientação não vinculada como mestrado")
		}
	})

	t.Run("doutorado com prazo de 48 meses", func(t *testing.T) {
		svc, _, orientacoes := novoAmbiente(t)
		ingresso := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		d, err := svc.Matricular(ctx, Discente{
			ProgramaID:   orientacoes.orientador.ProgramaID,
			OrientadorID: orientacoes.orientador.ID,
			Nome:         "Pedro Sales",
			Email:        "pedro.sales@exemplo.edu.br",
			TipoCurso:    CursoDoutorado,
			DataIngresso: ingresso,
		})
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		esperado := ingresso.AddDate(0, 48, 0)
		if d.DataLimite == nil || !d.DataLimite.Equal(esperado) {
			t.Errorf("data limite = %v, esperado %v", d.DataLimite, esperado)
		}
		if orientacoes.ultimoTipo != docente.OrientacaoDoutorado {
			t.Errorf("tipo de orientação = %s", orientacoes.ultimoTipo)
		}
	})

	t.Run("orientador lotado", func(t *testing.T) {
		svc, _, orientacoes := novoAmbiente(t)
		orientacoes.orientador.OrientacoesMestradoAndamento = docente.LimiteOrientacoes

		_, err := svc.Matricular(ctx, Discente{
			ProgramaID:   orientacoes.orientador.ProgramaID,
			OrientadorID: orientacoes.orientador.ID,
			Nome:         "Mariana Lopes",
			Email:        "mariana.lopes@exemplo.edu.br",
			TipoCurso:    CursoMestrado,
		})
		if !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})

	t.Run("orientador de outro programa", func(t *testing.T) {
		svc, _, orientacoes := novoAmbiente(t)

		_, err := svc.Matricular(ctx, Discente{
			ProgramaID:   uuid.New(),
			OrientadorID: orientacoes.orientador.ID,
			Nome:         "Mariana Lopes",
			Email:        "mariana.lopes@exemplo.edu.br",
			TipoCurso:    CursoMestrado,
		})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})
}

func TestRegistrarQualificacao(t *testing.T) {
	ctx := context.Background()
	svc, repo, orientacoes := novoAmbiente(t)
	ingresso := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	d := repo.seed(Discente{
		ProgramaID:   orientacoes.orientador.ProgramaID,
		OrientadorID: orientacoes.orientador.ID,
		TipoCurso:    CursoMestrado,
		Status:       StatusCursando,
		DataIngresso: ingresso,
	})

	t.Run("data anterior ao ingresso", func(t *testing.T) {
		_, err := svc.RegistrarQualificacao(ctx, d.ID, ingresso.AddDate(0, -1, 0), "Aprovado")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})

	t.Run("aprovado muda o status", func(t *testing.T) {
		atual, err := svc.RegistrarQualificacao(ctx, d.ID, ingresso.AddDate(1, 0, 0), "Aprovado")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if atual.Status != StatusQualificado || !atual.QualificacaoRealizada {
			t.Errorf("status = %s, realizada = %v", atual.Status, atual.QualificacaoRealizada)
		}
	})
}

func TestRegistrarDefesa(t *testing.T) {
	ctx := context.Background()
	svc, repo, orientacoes := novoAmbiente(t)
	ingresso := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sem qualificacao aprovada", func(t *testing.T) {
		d := repo.seed(Discente{
			OrientadorID: orientacoes.orientador.ID,
			TipoCurso:    CursoMestrado,
			Status:       StatusCursando,
			DataIngresso: ingresso,
		})
		_, err := svc.RegistrarDefesa(ctx, d.ID, ingresso.AddDate(2, 0, 0), "Aprovado", nil)
		if !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})

	t.Run("defesa registrada", func(t *testing.T) {
		d := repo.seed(Discente{
			OrientadorID:          orientacoes.orientador.ID,
			TipoCurso:             CursoMestrado,
			Status:                StatusQualificado,
			QualificacaoRealizada: true,
			DataIngresso:          ingresso,
		})
		nota := 8.7
		atual, err := svc.RegistrarDefesa(ctx, d.ID, ingresso.AddDate(2, 0, 0), "Aprovado", &nota)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if atual.Status != StatusDefendendo {
			t.Errorf("status = %s", atual.Status)
		}
		if atual.NotaDefesa == nil || *atual.NotaDefesa != 8.7 {
			t.Errorf("nota = %v", atual.NotaDefesa)
		}
	})
}

func TestProrrogar(t *testing.T) {
	ctx := context.Background()
	svc, repo, orientacoes := novoAmbiente(t)

	ingresso := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	limite := ingresso.AddDate(0, 24, 0)
	d := repo.seed(Discente{
		OrientadorID: orientacoes.orientador.ID,
		TipoCurso:    CursoMestrado,
		Status:       StatusCursando,
		DataIngresso: ingresso,
		DataLimite:   &limite,
	})

	t.Run("estende a partir do limite atual", func(t *testing.T) {
		atual, err := svc.Prorrogar(ctx, d.ID, 6, "Coleta de dados em campo atrasada")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		esperado := limite.AddDate(0, 6, 0)
		if atual.DataLimite == nil || !atual.DataLimite.Equal(esperado) {
			t.Errorf("data limite = %v, esperado %v", atual.DataLimite, esperado)
		}
		if len(atual.Prorrogacoes) != 1 || atual.Prorrogacoes[0].Meses != 6 {
			t.Errorf("prorrogações = %+v", atual.Prorrogacoes)
		}
	})

	t.Run("acima de doze meses", func(t *testing.T) {
		_, err := svc.Prorrogar(ctx, d.ID, 13, "motivo qualquer")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("esperado ErrValidation, veio %v", err)
		}
	})
}

func TestDesligar(t *testing.T) {
	ctx := context.Background()
	svc, repo, orientacoes := novoAmbiente(t)

	d := repo.seed(Discente{
		OrientadorID: orientacoes.orientador.ID,
		TipoCurso:    CursoDoutorado,
		Status:       StatusCursando,
		DataIngresso: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	atual, err := svc.Desligar(ctx, d.ID, "Abandono do curso")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if atual.Status != StatusDesligado {
		t.Errorf("status = %s", atual.Status)
	}
	if orientacoes.desligadas != 1 || orientacoes.ultimoTipo != docente.OrientacaoDoutorado {
		t.Errorf("vaga de orientação não devolvida")
	}

	if _, err := svc.Desligar(ctx, d.ID, "de novo"); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("desligar estado final: esperado ErrInvalidState, veio %v", err)
	}
}

func TestTitular(t *testing.T) {
	ctx := context.Background()
	svc, repo, orientacoes := novoAmbiente(t)

	defesa := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	aprovado := "Aprovado"
	reprovado := "Reprovado"

	t.Run("defesa aprovada conclui a orientacao", func(t *testing.T) {
		d := repo.seed(Discente{
			OrientadorID:    orientacoes.orientador.ID,
			TipoCurso:       CursoMestrado,
			Status:          StatusDefendendo,
			DataDefesa:      &defesa,
			ResultadoDefesa: &aprovado,
		})
		atual, err := svc.Titular(ctx, d.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if atual.Status != StatusTitulado {
			t.Errorf("status = %s", atual.Status)
		}
		if orientacoes.concluidas != 1 {
			t.Errorf("orientação não concluída")
		}
	})

	t.Run("defesa reprovada", func(t *testing.T) {
		d := repo.seed(Discente{
			OrientadorID:    orientacoes.orientador.ID,
			TipoCurso:       CursoMestrado,
			Status:          StatusDefendendo,
			DataDefesa:      &defesa,
			ResultadoDefesa: &reprovado,
		})
		if _, err := svc.Titular(ctx, d.ID); !errors.Is(err, apperr.ErrInvalidState) {
			t.Errorf("esperado ErrInvalidState, veio %v", err)
		}
	})
}

func TestDeletar(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := novoAmbiente(t)

	d := repo.seed(Discente{Status: StatusCursando})

	repo.vinculado = true
	if err := svc.Deletar(ctx, d.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("esperado ErrConflict, veio %v", err)
	}

	repo.vinculado = false
	if err := svc.Deletar(ctx, d.ID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repo.deletados) != 1 {
		t.Errorf("registro não deletado")
	}
}
