package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// ClientePatch captures a partial cliente update. Nil fields are left
// untouched; atualizado_em is stamped on every update regardless.
type ClientePatch struct {
	Nome       *string
	Telefone   *string
	Email      *string
	Observacao *string
}

// ClienteRepository encapsulates cliente persistence scoped to one user's
// partition.
type ClienteRepository interface {
	ListByUser(ctx context.Context, uid string) ([]domain.Cliente, error)
	Create(ctx context.Context, uid string, cliente *domain.Cliente) error
	Update(ctx context.Context, uid, id string, patch ClientePatch) error
	Delete(ctx context.Context, uid, id string) error
}

type clienteRepository struct {
	pool *pgxpool.Pool
}

// NewClienteRepository instantiates repository.
func NewClienteRepository(pool *pgxpool.Pool) ClienteRepository {
	return &clienteRepository{pool: pool}
}

func (r *clienteRepository) ListByUser(ctx context.Context, uid string) ([]domain.Cliente, error) {
	const query = `
        SELECT id, nome, telefone, email, observacao, ativo, criado_em, atualizado_em
        FROM clientes WHERE user_id=$1
        ORDER BY criado_em`

	rows, err := r.pool.Query(ctx, query, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Cliente{}
	for rows.Next() {
		var cliente domain.Cliente
		if err := rows.Scan(
			&cliente.ID,
			&cliente.Nome,
			&cliente.Telefone,
			&cliente.Email,
			&cliente.Observacao,
			&cliente.Ativo,
			&cliente.CriadoEm,
			&cliente.AtualizadoEm,
		); err != nil {
			return nil, err
		}
		result = append(result, cliente)
	}
	return result, rows.Err()
}

func (r *clienteRepository) Create(ctx context.Context, uid string, cliente *domain.Cliente) error {
	const query = `
        INSERT INTO clientes (user_id, nome, telefone, email, observacao, ativo)
        VALUES ($1, $2, $3, $4, $5, TRUE)
        RETURNING id, ativo, criado_em, atualizado_em`

	return r.pool.QueryRow(ctx, query,
		uid,
		cliente.Nome,
		cliente.Telefone,
		cliente.Email,
		cliente.Observacao,
	).Scan(&cliente.ID, &cliente.Ativo, &cliente.CriadoEm, &cliente.AtualizadoEm)
}

func (r *clienteRepository) Update(ctx context.Context, uid, id string, patch ClientePatch) error {
	sets := []string{"atualizado_em=NOW()"}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Nome != nil {
		appendSet("nome", *patch.Nome)
	}
	if patch.Telefone != nil {
		appendSet("telefone", *patch.Telefone)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.Observacao != nil {
		appendSet("observacao", *patch.Observacao)
	}

	args = append(args, id)
	idPlaceholder := len(args)
	args = append(args, uid)
	uidPlaceholder := len(args)

	query := fmt.Sprintf(`UPDATE clientes SET %s WHERE id=$%d AND user_id=$%d`,
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

func (r *clienteRepository) Delete(ctx context.Context, uid, id string) error {
	const query = `DELETE FROM clientes WHERE id=$1 AND user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
