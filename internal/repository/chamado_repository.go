package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// ChamadoPatch captures a partial update merged server-side. Nil fields are
// left untouched.
type ChamadoPatch struct {
	Motivo      *string
	Descricao   *string
	Cliente     *string
	ClienteID   *string
	ClienteNome *string
	Data        *string
	Status      *domain.StatusChamado
	Resolucao   *string
}

// ChamadoRepository encapsulates chamado persistence scoped to one user's
// partition.
type ChamadoRepository interface {
	ListByUser(ctx context.Context, uid string) ([]domain.Chamado, error)
	Create(ctx context.Context, uid string, chamado *domain.Chamado) error
	Update(ctx context.Context, uid, id string, patch ChamadoPatch) error
	Complete(ctx context.Context, uid, id, resolucao string) error
	Delete(ctx context.Context, uid, id string) error
}

type chamadoRepository struct {
	pool *pgxpool.Pool
}

// NewChamadoRepository instantiates repository.
func NewChamadoRepository(pool *pgxpool.Pool) ChamadoRepository {
	return &chamadoRepository{pool: pool}
}

func (r *chamadoRepository) ListByUser(ctx context.Context, uid string) ([]domain.Chamado, error) {
	const query = `
        SELECT id, motivo, descricao, cliente, COALESCE(cliente_id::text, ''), cliente_nome,
               data, status, resolucao, criado_em, concluido_em, tipo_cadastro
        FROM chamados WHERE user_id=$1
        ORDER BY criado_em`

	rows, err := r.pool.Query(ctx, query, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChamados(rows)
}

// Create inserts a chamado, letting the server assign id and instants. A
// chamado created already completed gets concluido_em stamped in the same
// statement.
func (r *chamadoRepository) Create(ctx context.Context, uid string, chamado *domain.Chamado) error {
	const query = `
        INSERT INTO chamados (user_id, motivo, descricao, cliente, cliente_id, cliente_nome, data, status, resolucao, tipo_cadastro, concluido_em)
        VALUES ($1, $2, $3, $4, NULLIF($5,'')::uuid, $6, $7, $8, $9, $10,
                CASE WHEN $8 = 'concluido' THEN NOW() END)
        RETURNING id, criado_em, concluido_em`

	return r.pool.QueryRow(ctx, query,
		uid,
		chamado.Motivo,
		chamado.Descricao,
		chamado.Cliente,
		chamado.ClienteID,
		chamado.ClienteNome,
		chamado.Data,
		chamado.Status,
		chamado.Resolucao,
		chamado.TipoCadastro,
	).Scan(&chamado.ID, &chamado.CriadoEm, &chamado.ConcluidoEm)
}

func (r *chamadoRepository) Update(ctx context.Context, uid, id string, patch ChamadoPatch) error {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Motivo != nil {
		appendSet("motivo", *patch.Motivo)
	}
	if patch.Descricao != nil {
		appendSet("descricao", *patch.Descricao)
	}
	if patch.Cliente != nil {
		appendSet("cliente", *patch.Cliente)
	}
	if patch.ClienteID != nil {
		args = append(args, *patch.ClienteID)
		sets = append(sets, fmt.Sprintf("cliente_id=NULLIF($%d,'')::uuid", len(args)))
	}
	if patch.ClienteNome != nil {
		appendSet("cliente_nome", *patch.ClienteNome)
	}
	if patch.Data != nil {
		appendSet("data", *patch.Data)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.Resolucao != nil {
		appendSet("resolucao", *patch.Resolucao)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	idPlaceholder := len(args)
	args = append(args, uid)
	uidPlaceholder := len(args)

	query := fmt.Sprintf(`UPDATE chamados SET %s WHERE id=$%d AND user_id=$%d`,
		strings.Join(sets, ", "), idPlaceholder, uidPlaceholder)

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Complete closes a chamado atomically: status, resolution text and the
// completion instant change in one statement.
func (r *chamadoRepository) Complete(ctx context.Context, uid, id, resolucao string) error {
	const query = `
        UPDATE chamados SET status='concluido', resolucao=$1, concluido_em=NOW()
        WHERE id=$2 AND user_id=$3`

	cmd, err := r.pool.Exec(ctx, query, resolucao, id, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *chamadoRepository) Delete(ctx context.Context, uid, id string) error {
	const query = `DELETE FROM chamados WHERE id=$1 AND user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanChamados(rows pgx.Rows) ([]domain.Chamado, error) {
	result := []domain.Chamado{}
	for rows.Next() {
		var chamado domain.Chamado
		if err := rows.Scan(
			&chamado.ID,
			&chamado.Motivo,
			&chamado.Descricao,
			&chamado.Cliente,
			&chamado.ClienteID,
			&chamado.ClienteNome,
			&chamado.Data,
			&chamado.Status,
			&chamado.Resolucao,
			&chamado.CriadoEm,
			&chamado.ConcluidoEm,
			&chamado.TipoCadastro,
		); err != nil {
			return nil, err
		}
		result = append(result, chamado)
	}
	return result, rows.Err()
}
