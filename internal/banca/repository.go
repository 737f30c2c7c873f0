package banca

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ppghub/academico/internal/apperr"
	"github.com/ppghub/academico/internal/db"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos dados de bancas e seus membros.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

const colunasBanca = `
	id, trabalho_id, secretario_id, tipo, status, modalidade, data_agendada, local, link_video,
	ata, resultado, nota_final, correcoes_exigidas, prazo_correcoes, motivo, created_at, updated_at`

func scanBanca(row pgx.Row) (Banca, error) {
	var b Banca
	err := row.Scan(
		&b.ID, &b.TrabalhoID, &b.SecretarioID, &b.Tipo, &b.Status, &b.Modalidade, &b.DataAgendada,
		&b.Local, &b.LinkVideo, &b.Ata, &b.Resultado, &b.NotaFinal,
		&b.CorrecoesExigidas, &b.PrazoCorrecoes, &b.Motivo,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return b, apperr.ErrNotFound
	}
	return b, err
}

const colunasMembro = `
	id, banca_id, docente_id, nome, instituicao, funcao, tipo,
	nota, parecer, presenca_confirmada, presente, justificativa_ausencia, created_at`

func scanMembro(row pgx.Row) (MembroBanca, error) {
	var m MembroBanca
	err := row.Scan(
		&m.ID, &m.BancaID, &m.DocenteID, &m.Nome, &m.Instituicao, &m.Funcao, &m.Tipo,
		&m.Nota, &m.Parecer, &m.PresencaConfirmada, &m.Presente, &m.JustificativaAusencia, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, apperr.ErrNotFound
	}
	return m, err
}

func (r *Repository) Criar(ctx context.Context, b Banca) (Banca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanBanca(r.db.QueryRow(ctx, `
		INSERT INTO bancas (trabalho_id, secretario_id, tipo, status, modalidade, data_agendada, local, link_video)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+colunasBanca,
		b.TrabalhoID, b.SecretarioID, b.Tipo, b.Status, b.Modalidade, b.DataAgendada, b.Local, b.LinkVideo))
}

// BuscarPorID devolve a banca com a composição carregada.
func (r *Repository) BuscarPorID(ctx context.Context, id uuid.UUID) (Banca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	b, err := scanBanca(r.db.QueryRow(ctx, `
		SELECT `+colunasBanca+` FROM bancas WHERE id = $1`, id))
	if err != nil {
		return b, err
	}

	b.Membros, err = r.listarMembros(ctx, r.db, id)
	return b, err
}

func (r *Repository) ListarPorTrabalho(ctx context.Context, trabalhoID uuid.UUID) ([]Banca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+colunasBanca+` FROM bancas WHERE trabalho_id = $1 ORDER BY data_agendada`, trabalhoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bancas []Banca
	for rows.Next() {
		b, err := scanBanca(rows)
		if err != nil {
			return nil, err
		}
		bancas = append(bancas, b)
	}
	return bancas, rows.Err()
}

func (r *Repository) Salvar(ctx context.Context, b Banca) (Banca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanBanca(r.db.QueryRow(ctx, `
		UPDATE bancas
		   SET status = $1, modalidade = $2, data_agendada = $3, local = $4, link_video = $5,
		       ata = $6, resultado = $7, nota_final = $8, correcoes_exigidas = $9,
		       prazo_correcoes = $10, motivo = $11, updated_at = now()
		 WHERE id = $12
		RETURNING `+colunasBanca,
		b.Status, b.Modalidade, b.DataAgendada, b.Local, b.LinkVideo,
		b.Ata, b.Resultado, b.NotaFinal, b.CorrecoesExigidas, b.PrazoCorrecoes, b.Motivo, b.ID))
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *Repository) listarMembros(ctx context.Context, q querier, bancaID uuid.UUID) ([]MembroBanca, error) {
	rows, err := q.Query(ctx, `
		SELECT `+colunasMembro+` FROM membros_banca WHERE banca_id = $1 ORDER BY created_at`, bancaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var membros []MembroBanca
	for rows.Next() {
		m, err := scanMembro(rows)
		if err != nil {
			return nil, err
		}
		membros = append(membros, m)
	}
	return membros, rows.Err()
}

func (r *Repository) ListarMembros(ctx context.Context, bancaID uuid.UUID) ([]MembroBanca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return r.listarMembros(ctx, r.db, bancaID)
}

func (r *Repository) InserirMembro(ctx context.Context, m MembroBanca) (MembroBanca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanMembro(r.db.QueryRow(ctx, `
		INSERT INTO membros_banca (banca_id, docente_id, nome, instituicao, funcao, tipo)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+colunasMembro,
		m.BancaID, m.DocenteID, m.Nome, m.Instituicao, m.Funcao, m.Tipo))
}

func (r *Repository) BuscarMembro(ctx context.Context, bancaID, membroID uuid.UUID) (MembroBanca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanMembro(r.db.QueryRow(ctx, `
		SELECT `+colunasMembro+` FROM membros_banca WHERE id = $1 AND banca_id = $2`,
		membroID, bancaID))
}

func (r *Repository) SalvarMembro(ctx context.Context, m MembroBanca) (MembroBanca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanMembro(r.db.QueryRow(ctx, `
		UPDATE membros_banca
		   SET nota = $1, parecer = $2, presenca_confirmada = $3, presente = $4,
		       justificativa_ausencia = $5
		 WHERE id = $6
		RETURNING `+colunasMembro,
		m.Nota, m.Parecer, m.PresencaConfirmada, m.Presente, m.JustificativaAusencia, m.ID))
}

func (r *Repository) RemoverMembro(ctx context.Context, bancaID, membroID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM membros_banca WHERE id = $1 AND banca_id = $2`, membroID, bancaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DefinirPresidente rebaixa o presidente atual a titular e promove o
// membro indicado, tudo na mesma transação.
func (r *Repository) DefinirPresidente(ctx context.Context, bancaID, membroID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE membros_banca SET funcao = $1 WHERE banca_id = $2 AND funcao = $3`,
			FuncaoTitular, bancaID, FuncaoPresidente); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE membros_banca SET funcao = $1 WHERE id = $2 AND banca_id = $3`,
			FuncaoPresidente, membroID, bancaID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

// Finalizar trava a linha da banca, entrega o estado corrente a fn e
// persiste o que fn devolver. Duas finalizações concorrentes serializam
// no lock; a segunda enxerga a banca já realizada.
func (r *Repository) Finalizar(ctx context.Context, bancaID uuid.UUID, fn func(b Banca) (Banca, error)) (Banca, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var final Banca
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		b, err := scanBanca(tx.QueryRow(ctx, `
			SELECT `+colunasBanca+` FROM bancas WHERE id = $1 FOR UPDATE`, bancaID))
		if err != nil {
			return err
		}
		if b.Membros, err = r.listarMembros(ctx, tx, bancaID); err != nil {
			return err
		}

		atualizada, err := fn(b)
		if err != nil {
			return err
		}

		final, err = scanBanca(tx.QueryRow(ctx, `
			UPDATE bancas
			   SET status = $1, ata = $2, resultado = $3, nota_final = $4,
			       correcoes_exigidas = $5, prazo_correcoes = $6, updated_at = now()
			 WHERE id = $7
			RETURNING `+colunasBanca,
			atualizada.Status, atualizada.Ata, atualizada.Resultado, atualizada.NotaFinal,
			atualizada.CorrecoesExigidas, atualizada.PrazoCorrecoes, bancaID))
		if err != nil {
			return err
		}
		final.Membros = atualizada.Membros
		return nil
	})
	return final, err
}
