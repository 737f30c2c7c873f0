package catalogo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ppghub/academico/internal/apperr"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos dados de disciplinas e ofertas.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const colunasDisciplina = `
	id, programa_id, codigo, nome, ementa,
	carga_horaria_teoria, carga_horaria_pratica, tipo, status,
	created_at, updated_at`

func scanDisciplina(row pgx.Row) (Disciplina, error) {
	var d Disciplina
	err := row.Scan(
		&d.ID, &d.ProgramaID, &d.Codigo, &d.Nome, &d.Ementa,
		&d.CargaHorariaTeoria, &d.CargaHorariaPratica, &d.Tipo, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, apperr.ErrNotFound
	}
	return d, err
}

func (r *Repository) CriarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDisciplina(r.db.QueryRow(ctx, `
		INSERT INTO disciplinas (programa_id, codigo, nome, ementa, carga_horaria_teoria, carga_horaria_pratica, tipo, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+colunasDisciplina,
		d.ProgramaID, d.Codigo, d.Nome, d.Ementa,
		d.CargaHorariaTeoria, d.CargaHorariaPratica, d.Tipo, d.Status))
}

func (r *Repository) BuscarDisciplina(ctx context.Context, id uuid.UUID) (Disciplina, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDisciplina(r.db.QueryRow(ctx, `
		SELECT `+colunasDisciplina+` FROM disciplinas WHERE id = $1`, id))
}

func (r *Repository) BuscarDisciplinaPorCodigo(ctx context.Context, programaID uuid.UUID, codigo string) (Disciplina, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDisciplina(r.db.QueryRow(ctx, `
		SELECT `+colunasDisciplina+` FROM disciplinas WHERE programa_id = $1 AND codigo = $2`,
		programaID, codigo))
}

func (r *Repository) ListarDisciplinas(ctx context.Context, programaID uuid.UUID) ([]Disciplina, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunasDisciplina+` FROM disciplinas WHERE programa_id = $1 ORDER BY codigo`, programaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disciplinas []Disciplina
	for rows.Next() {
		d, err := scanDisciplina(rows)
		if err != nil {
			return nil, err
		}
		disciplinas = append(disciplinas, d)
	}
	return disciplinas, rows.Err()
}

func (r *Repository) AtualizarDisciplina(ctx context.Context, d Disciplina) (Disciplina, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDisciplina(r.db.QueryRow(ctx, `
		UPDATE disciplinas
		   SET nome = $1, ementa = $2, carga_horaria_teoria = $3, carga_horaria_pratica = $4,
		       tipo = $5, status = $6, updated_at = now()
		 WHERE id = $7
		RETURNING `+colunasDisciplina,
		d.Nome, d.Ementa, d.CargaHorariaTeoria, d.CargaHorariaPratica,
		d.Tipo, d.Status, d.ID))
}

const colunasOferta = `
	id, disciplina_id, docente_id, periodo, vagas, ocupadas,
	horario, sala, status, created_at, updated_at`

func scanOferta(row pgx.Row) (Oferta, error) {
	var o Oferta
	err := row.Scan(
		&o.ID, &o.DisciplinaID, &o.DocenteID, &o.Periodo, &o.Vagas, &o.Ocupadas,
		&o.Horario, &o.Sala, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, apperr.ErrNotFound
	}
	return o, err
}

func (r *Repository) CriarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanOferta(r.db.QueryRow(ctx, `
		INSERT INTO ofertas_disciplinas (disciplina_id, docente_id, periodo, vagas, horario, sala, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+colunasOferta,
		o.DisciplinaID, o.DocenteID, o.Periodo, o.Vagas, o.Horario, o.Sala, o.Status))
}

func (r *Repository) BuscarOferta(ctx context.Context, id uuid.UUID) (Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanOferta(r.db.QueryRow(ctx, `
		SELECT `+colunasOferta+` FROM ofertas_disciplinas WHERE id = $1`, id))
}

func (r *Repository) ListarOfertasPorPeriodo(ctx context.Context, periodo string) ([]Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunasOferta+` FROM ofertas_disciplinas WHERE periodo = $1 ORDER BY created_at`, periodo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return coletarOfertas(rows)
}

func (r *Repository) ListarOfertasComVagas(ctx context.Context, periodo string) ([]Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunasOferta+`
		  FROM ofertas_disciplinas
		 WHERE periodo = $1 AND status = $2 AND ocupadas < vagas
		 ORDER BY created_at`, periodo, OfertaAberta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return coletarOfertas(rows)
}

func coletarOfertas(rows pgx.Rows) ([]Oferta, error) {
	var ofertas []Oferta
	for rows.Next() {
		o, err := scanOferta(rows)
		if err != nil {
			return nil, err
		}
		ofertas = append(ofertas, o)
	}
	return ofertas, rows.Err()
}

func (r *Repository) AtualizarOferta(ctx context.Context, o Oferta) (Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanOferta(r.db.QueryRow(ctx, `
		UPDATE ofertas_disciplinas
		   SET docente_id = $1, vagas = $2, horario = $3, sala = $4, updated_at = now()
		 WHERE id = $5
		RETURNING `+colunasOferta,
		o.DocenteID, o.Vagas, o.Horario, o.Sala, o.ID))
}

func (r *Repository) AtualizarStatusOferta(ctx context.Context, id uuid.UUID, status StatusOferta) (Oferta, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanOferta(r.db.QueryRow(ctx, `
		UPDATE ofertas_disciplinas SET status = $1, updated_at = now()
		 WHERE id = $2
		RETURNING `+colunasOferta, status, id))
}
