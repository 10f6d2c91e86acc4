package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders inicia una transacción, ejecuta fn con el repo de pedidos atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q))
	})
}

// RunUsers igual que RunOrders para usuarios.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q))
	})
}

// RunAccounts agrupa usuario y seller (alta de un seller con su cuenta primaria).
func (r *TxRunner) RunAccounts(ctx context.Context, fn func(users repository.UserRepository, sellers repository.SellerRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q), NewSellerRepository(q))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
