package discente

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ppghub/academico/internal/apperr"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos dados de discentes.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const colunas = `
	id, programa_id, orientador_id, nome, email, tipo_curso, data_ingresso,
	qualificacao_realizada, data_qualificacao, resultado_qualificacao,
	data_defesa, resultado_defesa, nota_defesa,
	data_limite, prorrogacoes, status, motivo_desligamento,
	created_at, updated_at`

func scanDiscente(row pgx.Row) (Discente, error) {
	var d Discente
	var prorrogacoes []byte
	err := row.Scan(
		&d.ID, &d.ProgramaID, &d.OrientadorID, &d.Nome, &d.Email, &d.TipoCurso, &d.DataIngresso,
		&d.QualificacaoRealizada, &d.DataQualificacao, &d.ResultadoQualificacao,
		&d.DataDefesa, &d.ResultadoDefesa, &d.NotaDefesa,
		&d.DataLimite, &prorrogacoes, &d.Status, &d.MotivoDesligamento,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, apperr.ErrNotFound
	}
	if err != nil {
		return d, err
	}
	if len(prorrogacoes) > 0 {
		if err := json.Unmarshal(prorrogacoes, &d.Prorrogacoes); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (r *Repository) Criar(ctx context.Context, d Discente) (Discente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDiscente(r.db.QueryRow(ctx, `
		INSERT INTO discentes
			(programa_id, orientador_id, nome, email, tipo_curso, data_ingresso, data_limite, status, prorrogacoes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'[]')
		RETURNING `+colunas,
		d.ProgramaID, d.OrientadorID, d.Nome, d.Email, d.TipoCurso, d.DataIngresso, d.DataLimite, d.Status))
}

func (r *Repository) BuscarPorID(ctx context.Context, id uuid.UUID) (Discente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanDiscente(r.db.QueryRow(ctx, `
		SELECT `+colunas+` FROM discentes WHERE id = $1`, id))
}

func (r *Repository) ListarPorPrograma(ctx context.Context, programaID uuid.UUID) ([]Discente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunas+` FROM discentes WHERE programa_id = $1 ORDER BY nome`, programaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discentes []Discente
	for rows.Next() {
		d, err := scanDiscente(rows)
		if err != nil {
			return nil, err
		}
		discentes = append(discentes, d)
	}
	return discentes, rows.Err()
}

// Salvar persiste os campos mutáveis do ciclo de vida do discente.
func (r *Repository) Salvar(ctx context.Context, d Discente) (Discente, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	prorrogacoes, err := json.Marshal(d.Prorrogacoes)
	if err != nil {
		return Discente{}, err
	}
	if d.Prorrogacoes == nil {
		prorrogacoes = []byte(`[]`)
	}

	return scanDiscente(r.db.QueryRow(ctx, `
		UPDATE discentes SET
			orientador_id = $1,
			qualificacao_realizada = $2, data_qualificacao = $3, resultado_qualificacao = $4,
			data_defesa = $5, resultado_defesa = $6, nota_defesa = $7,
			data_limite = $8, prorrogacoes = $9,
			status = $10, motivo_desligamento = $11,
			updated_at = now()
		WHERE id = $12
		RETURNING `+colunas,
		d.OrientadorID,
		d.QualificacaoRealizada, d.DataQualificacao, d.ResultadoQualificacao,
		d.DataDefesa, d.ResultadoDefesa, d.NotaDefesa,
		d.DataLimite, prorrogacoes,
		d.Status, d.MotivoDesligamento,
		d.ID))
}

// TemTrabalhoVinculado indica se existe trabalho de conclusão referenciando o discente.
func (r *Repository) TemTrabalhoVinculado(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var existe bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM trabalhos_conclusao WHERE discente_id = $1)`, id).Scan(&existe)
	return existe, err
}

func (r *Repository) Deletar(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM discentes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
