package matricula

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/catalogo"
	"github.com/ppghub/academico/internal/db"
	"github.com/ppghub/academico/internal/discente"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos dados de matrículas. As operações que
// mexem em vaga rodam em transação com lock de linha na oferta; a espera
// pelo lock é limitada por lockTimeout.
type Repository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *Repository {
	return &Repository{db: pool, lockTimeout: lockTimeout}
}

const colunas = `
	id, oferta_id, discente_id, nota, frequencia, conceito, status,
	data_matricula, created_at, updated_at`

func scanMatricula(row pgx.Row) (Matricula, error) {
	var m Matricula
	err := row.Scan(
		&m.ID, &m.OfertaID, &m.DiscenteID, &m.Nota, &m.Frequencia, &m.Conceito, &m.Status,
		&m.DataMatricula, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, apperr.ErrNotFound
	}
	return m, err
}

// txStore sobre uma transação pgx aberta.
type pgxTxStore struct {
	tx pgx.Tx
}

func (s pgxTxStore) TravarOferta(ctx context.Context, ofertaID uuid.UUID) (ofertaTravada, error) {
	var ot ofertaTravada
	err := s.tx.QueryRow(ctx, `
		SELECT o.id, o.disciplina_id, o.docente_id, o.periodo, o.vagas, o.ocupadas,
		       o.horario, o.sala, o.status, o.created_at, o.updated_at,
		       d.programa_id
		  FROM ofertas_disciplinas o
		  JOIN disciplinas d ON d.id = o.disciplina_id
		 WHERE o.id = $1
		   FOR UPDATE OF o`, ofertaID).Scan(
		&ot.Oferta.ID, &ot.Oferta.DisciplinaID, &ot.Oferta.DocenteID, &ot.Oferta.Periodo,
		&ot.Oferta.Vagas, &ot.Oferta.Ocupadas, &ot.Oferta.Horario, &ot.Oferta.Sala,
		&ot.Oferta.Status, &ot.Oferta.CreatedAt, &ot.Oferta.UpdatedAt,
		&ot.ProgramaID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ot, apperr.ErrNotFound
	}
	return ot, err
}

func (s pgxTxStore) BuscarDiscente(ctx context.Context, discenteID uuid.UUID) (discente.Discente, error) {
	var d discente.Discente
	err := s.tx.QueryRow(ctx, `
		SELECT id, programa_id, status FROM discentes WHERE id = $1`, discenteID).
		Scan(&d.ID, &d.ProgramaID, &d.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, apperr.ErrNotFound
	}
	return d, err
}

func (s pgxTxStore) ExisteMatricula(ctx context.Context, ofertaID, discenteID uuid.UUID) (bool, error) {
	var existe bool
	err := s.tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM matriculas_disciplinas
			 WHERE oferta_id = $1 AND discente_id = $2 AND status <> $3
		)`, ofertaID, discenteID, MatriculaCancelada).Scan(&existe)
	return existe, err
}

func (s pgxTxStore) InserirMatricula(ctx context.Context, m Matricula) (Matricula, error) {
	return scanMatricula(s.tx.QueryRow(ctx, `
		INSERT INTO matriculas_disciplinas (oferta_id, discente_id, status, data_matricula)
		VALUES ($1,$2,$3,$4)
		RETURNING `+colunas,
		m.OfertaID, m.DiscenteID, m.Status, m.DataMatricula))
}

func (s pgxTxStore) TravarMatricula(ctx context.Context, matriculaID uuid.UUID) (Matricula, error) {
	return scanMatricula(s.tx.QueryRow(ctx, `
		SELECT `+colunas+` FROM matriculas_disciplinas WHERE id = $1 FOR UPDATE`, matriculaID))
}

func (s pgxTxStore) AtualizarStatusMatricula(ctx context.Context, matriculaID uuid.UUID, status StatusMatricula) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE matriculas_disciplinas SET status = $1, updated_at = now() WHERE id = $2`,
		status, matriculaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s pgxTxStore) AjustarOcupadas(ctx context.Context, ofertaID uuid.UUID, delta int) error {
	tag, err := s.tx.Exec(ctx, `
		UPDATE ofertas_disciplinas
		   SET ocupadas = ocupadas + $1, updated_at = now()
		 WHERE id = $2 AND ocupadas + $1 BETWEEN 0 AND vagas`, delta, ofertaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if delta < 0 {
			return fmt.Errorf("%w: oferta não tem vaga ocupada a devolver", apperr.ErrInvalidState)
		}
		return apperr.ErrCapacityExceeded
	}
	return nil
}

// Matricular roda a seção crítica de alocação dentro de uma transação.
func (r *Repository) Matricular(ctx context.Context, agora time.Time, ofertaID, discenteID uuid.UUID) (Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	var m Matricula
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		m, err = alocar(ctx, pgxTxStore{tx: tx}, agora, ofertaID, discenteID)
		return err
	})
	return m, err
}

// Liberar devolve a vaga de uma matrícula ativa (trancamento ou cancelamento).
func (r *Repository) Liberar(ctx context.Context, matriculaID uuid.UUID, destino StatusMatricula) (Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	var m Matricula
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		m, err = liberar(ctx, pgxTxStore{tx: tx}, matriculaID, destino)
		return err
	})
	return m, err
}

func (r *Repository) BuscarPorID(ctx context.Context, id uuid.UUID) (Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanMatricula(r.db.QueryRow(ctx, `
		SELECT `+colunas+` FROM matriculas_disciplinas WHERE id = $1`, id))
}

func (r *Repository) ListarPorOferta(ctx context.Context, ofertaID uuid.UUID) ([]Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunas+` FROM matriculas_disciplinas WHERE oferta_id = $1 ORDER BY created_at`, ofertaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return coletar(rows)
}

func (r *Repository) ListarPorDiscente(ctx context.Context, discenteID uuid.UUID) ([]Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunas+` FROM matriculas_disciplinas WHERE discente_id = $1 ORDER BY created_at`, discenteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return coletar(rows)
}

func coletar(rows pgx.Rows) ([]Matricula, error) {
	var matriculas []Matricula
	for rows.Next() {
		m, err := scanMatricula(rows)
		if err != nil {
			return nil, err
		}
		matriculas = append(matriculas, m)
	}
	return matriculas, rows.Err()
}

func (r *Repository) BuscarOferta(ctx context.Context, ofertaID uuid.UUID) (catalogo.Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var o catalogo.Oferta
	err := r.db.QueryRow(ctx, `
		SELECT id, disciplina_id, docente_id, periodo, vagas, ocupadas,
		       horario, sala, status, created_at, updated_at
		  FROM ofertas_disciplinas WHERE id = $1`, ofertaID).Scan(
		&o.ID, &o.DisciplinaID, &o.DocenteID, &o.Periodo, &o.Vagas, &o.Ocupadas,
		&o.Horario, &o.Sala, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, apperr.ErrNotFound
	}
	return o, err
}

// Salvar grava nota, frequência, conceito e status consolidados.
func (r *Repository) Salvar(ctx context.Context, m Matricula) (Matricula, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanMatricula(r.db.QueryRow(ctx, `
		UPDATE matriculas_disciplinas
		   SET nota = $1, frequencia = $2, conceito = $3, status = $4, updated_at = now()
		 WHERE id = $5
		RETURNING `+colunas,
		m.Nota, m.Frequencia, m.Conceito, m.Status, m.ID))
}
