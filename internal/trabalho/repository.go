package trabalho

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

// Repository fornece acesso aos dados de trabalhos de conclusão.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const colunas = `
	id, discente_id, orientador_id, titulo, resumo, palavras_chave, tipo, status,
	arquivo_url, data_defesa, nota_final, local_publicacao, data_publicacao,
	created_at, updated_at`

func scanTrabalho(row pgx.Row) (TrabalhoConclusao, error) {
	var t TrabalhoConclusao
	err := row.Scan(
		&t.ID, &t.DiscenteID, &t.OrientadorID, &t.Titulo, &t.Resumo, &t.PalavrasChave, &t.Tipo, &t.Status,
		&t.ArquivoURL, &t.DataDefesa, &t.NotaFinal, &t.LocalPublicacao, &t.DataPublicacao,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, apperr.ErrNotFound
	}
	return t, err
}

func (r *Repository) Criar(ctx context.Context, t TrabalhoConclusao) (TrabalhoConclusao, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanTrabalho(r.db.QueryRow(ctx, `
		INSERT INTO trabalhos_conclusao (discente_id, orientador_id, titulo, resumo, palavras_chave, tipo, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+colunas,
		t.DiscenteID, t.OrientadorID, t.Titulo, t.Resumo, t.PalavrasChave, t.Tipo, t.Status))
}

func (r *Repository) BuscarPorID(ctx context.Context, id uuid.UUID) (TrabalhoConclusao, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanTrabalho(r.db.QueryRow(ctx, `
		SELECT `+colunas+` FROM trabalhos_conclusao WHERE id = $1`, id))
}

func (r *Repository) BuscarPorDiscente(ctx context.Context, discenteID uuid.UUID) (TrabalhoConclusao, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanTrabalho(r.db.QueryRow(ctx, `
		SELECT `+colunas+` FROM trabalhos_conclusao WHERE discente_id = $1`, discenteID))
}

func (r *Repository) ListarPorOrientador(ctx context.Context, orientadorID uuid.UUID) ([]TrabalhoConclusao, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunas+` FROM trabalhos_conclusao WHERE orientador_id = $1 ORDER BY created_at`, orientadorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trabalhos []TrabalhoConclusao
	for rows.Next() {
		t, err := scanTrabalho(rows)
		if err != nil {
			return nil, err
		}
		trabalhos = append(trabalhos, t)
	}
	return trabalhos, rows.Err()
}

func (r *Repository) Salvar(ctx context.Context, t TrabalhoConclusao) (TrabalhoConclusao, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanTrabalho(r.db.QueryRow(ctx, `
		UPDATE trabalhos_conclusao
		   SET titulo = $1, resumo = $2, palavras_chave = $3, status = $4,
		       arquivo_url = $5, data_defesa = $6, nota_final = $7,
		       local_publicacao = $8, data_publicacao = $9, updated_at = now()
		 WHERE id = $10
		RETURNING `+colunas,
		t.Titulo, t.Resumo, t.PalavrasChave, t.Status,
		t.ArquivoURL, t.DataDefesa, t.NotaFinal,
		t.LocalPublicacao, t.DataPublicacao, t.ID))
}

// ContarPorStatus alimenta o painel do programa.
func (r *Repository) ContarPorStatus(ctx context.Context) (map[StatusTrabalho]int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT status, count(*) FROM trabalhos_conclusao GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contagem := make(map[StatusTrabalho]int)
	for rows.Next() {
		var status StatusTrabalho
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, err
		}
		contagem[status] = total
	}
	return contagem, rows.Err()
}
