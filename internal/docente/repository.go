package docente

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

// Repository fornece acesso aos dados de docentes.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const colunas = `
	id, programa_id, nome, email, vinculo, status,
	orientacoes_mestrado_andamento, orientacoes_doutorado_andamento,
	orientacoes_mestrado_concluidas, orientacoes_doutorado_concluidas,
	created_at, updated_at`

func scanDocente(row pgx.Row) (Docente, error) {
	var d Docente
	err := row.Scan(
		&d.ID, &d.ProgramaID, &d.Nome, &d.Email, &d.Vinculo, &d.Status,
		&d.OrientacoesMestradoAndamento, &d.OrientacoesDoutoradoAndamento,
		&d.OrientacoesMestradoConcluidas, &d.OrientacoesDoutoradoConcluidas,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, apperr.ErrNotFound
	}
	return d, err
}

func (r *Repository) Criar(ctx context.Context, d Docente) (Docente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDocente(r.db.QueryRow(ctx, `
		INSERT INTO docentes (programa_id, nome, email, vinculo, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+colunas,
		d.ProgramaID, d.Nome, d.Email, d.Vinculo, d.Status))
}

func (r *Repository) BuscarPorID(ctx context.Context, id uuid.UUID) (Docente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDocente(r.db.QueryRow(ctx, `
		SELECT `+colunas+` FROM docentes WHERE id = $1`, id))
}

func (r *Repository) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Docente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunas+` FROM docentes WHERE programa_id = $1 ORDER BY nome`, programaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docentes []Docente
	for rows.Next() {
		d, err := scanDocente(rows)
		if err != nil {
			return nil, err
		}
		docentes = append(docentes, d)
	}
	return docentes, rows.Err()
}

func (r *Repository) AtualizarStatus(ctx context.Context, id uuid.UUID, status StatusDocente) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE docentes SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AjustarOrientacoes aplica os deltas nos contadores de orientação. A cláusula
// WHERE impede contador negativo e o estouro do limite de andamento.
func (r *Repository) AjustarOrientacoes(ctx context.Context, id uuid.UUID, tipo TipoOrientacao, deltaAndamento, deltaConcluidas int) (Docente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	colAndamento := "orientacoes_mestrado_andamento"
	colConcluidas := "orientacoes_mestrado_concluidas"
	if tipo == OrientacaoDoutorado {
		colAndamento = "orientacoes_doutorado_andamento"
		colConcluidas = "orientacoes_doutorado_concluidas"
	}

	d, err := scanDocente(r.db.QueryRow(ctx, `
		UPDATE docentes
		SET `+colAndamento+` = `+colAndamento+` + $1,
		    `+colConcluidas+` = `+colConcluidas+` + $2,
		    updated_at = now()
		WHERE id = $3 AND `+colAndamento+` + $1 >= 0
		RETURNING `+colunas,
		deltaAndamento, deltaConcluidas, id))
	if errors.Is(err, apperr.ErrNotFound) {
		// distingue inexistente de contador que ficaria negativo
		if _, lookupErr := r.BuscarPorID(ctx, id); lookupErr == nil {
			return Docente{}, apperr.ErrInvalidState
		}
		return Docente{}, apperr.ErrNotFound
	}
	return d, err
}
