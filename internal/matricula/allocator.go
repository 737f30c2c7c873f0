package matricula

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/catalogo"
	"github.com/ppghub/academico/internal/discente"
)

// ofertaTravada é a visão da oferta obtida sob lock exclusivo de linha,
// acrescida do programa dono da disciplina.
type ofertaTravada struct {
	Oferta     catalogo.Oferta
	ProgramaID uuid.UUID
}

// txStore é o que a seção crítica de alocação exige da transação.
// A implementação real trava a linha da oferta (SELECT ... FOR UPDATE);
// o lock vive até o fim da transação.
type txStore interface {
	TravarOferta(ctx context.Context, ofertaID uuid.UUID) (ofertaTravada, error)
	BuscarDiscente(ctx context.Context, discenteID uuid.UUID) (discente.Discente, error)
	ExisteMatricula(ctx context.Context, ofertaID, discenteID uuid.UUID) (bool, error)
	InserirMatricula(ctx context.Context, m Matricula) (Matricula, error)
	TravarMatricula(ctx context.Context, matriculaID uuid.UUID) (Matricula, error)
	AtualizarStatusMatricula(ctx context.Context, matriculaID uuid.UUID, status StatusMatricula) error
	AjustarOcupadas(ctx context.Context, ofertaID uuid.UUID, delta int) error
}

// alocar executa a sequência de matrícula com a oferta travada. A ordem
// importa: o lock vem antes de qualquer leitura, para que a checagem de
// vaga e o incremento enxerguem o mesmo estado.
func alocar(ctx context.Context, st txStore, agora time.Time, ofertaID, discenteID uuid.UUID) (Matricula, error) {
	ot, err := st.TravarOferta(ctx, ofertaID)
	if err != nil {
		return Matricula{}, err
	}
	if ot.Oferta.Status != catalogo.OfertaAberta {
		return Matricula{}, fmt.Errorf("%w: oferta %s não aceita matrículas", apperr.ErrInvalidState, ot.Oferta.Status)
	}
	if ot.Oferta.VagasDisponiveis() <= 0 {
		return Matricula{}, apperr.ErrCapacityExceeded
	}

	d, err := st.BuscarDiscente(ctx, discenteID)
	if err != nil {
		return Matricula{}, err
	}
	if !d.Status.PodeMatricularDisciplinas() {
		return Matricula{}, fmt.Errorf("%w: discente %s não pode se matricular em disciplinas", apperr.ErrInvalidState, d.Status)
	}
	if d.ProgramaID != ot.ProgramaID {
		return Matricula{}, fmt.Errorf("%w: discente e oferta pertencem a programas distintos", apperr.ErrInvalidState)
	}

	existe, err := st.ExisteMatricula(ctx, ofertaID, discenteID)
	if err != nil {
		return Matricula{}, err
	}
	if existe {
		return Matricula{}, fmt.Errorf("%w: discente já matriculado nesta oferta", apperr.ErrConflict)
	}

	m, err := st.InserirMatricula(ctx, Matricula{
		OfertaID:      ofertaID,
		DiscenteID:    discenteID,
		Status:        MatriculaAtiva,
		DataMatricula: agora,
	})
	if err != nil {
		return Matricula{}, err
	}
	if err := st.AjustarOcupadas(ctx, ofertaID, +1); err != nil {
		return Matricula{}, err
	}
	return m, nil
}

// liberar desfaz a ocupação de vaga de uma matrícula ativa. Trava a
// matrícula e depois a oferta; alocar nunca segura lock de matrícula,
// então a ordem não cruza.
func liberar(ctx context.Context, st txStore, matriculaID uuid.UUID, destino StatusMatricula) (Matricula, error) {
	m, err := st.TravarMatricula(ctx, matriculaID)
	if err != nil {
		return Matricula{}, err
	}
	if m.Status != MatriculaAtiva {
		return Matricula{}, fmt.Errorf("%w: matrícula %s não pode ser liberada", apperr.ErrInvalidState, m.Status)
	}

	ot, err := st.TravarOferta(ctx, m.OfertaID)
	if err != nil {
		return Matricula{}, err
	}
	if ot.Oferta.Status == catalogo.OfertaConcluida {
		return Matricula{}, fmt.Errorf("%w: oferta concluída não libera vagas", apperr.ErrInvalidState)
	}
	if err := st.AtualizarStatusMatricula(ctx, matriculaID, destino); err != nil {
		return Matricula{}, err
	}
	if err := st.AjustarOcupadas(ctx, m.OfertaID, -1); err != nil {
		return Matricula{}, err
	}
	m.Status = destino
	return m, nil
}
