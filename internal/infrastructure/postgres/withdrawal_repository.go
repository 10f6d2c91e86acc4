package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

const withdrawalColumns = `id, seller_id, requested_by, amount, currency, bank_name, account_name, account_number,
	status, payout_ref, failure_reason, reviewed_by, created_at, updated_at`

// WithdrawalRepo implementación del puerto WithdrawalRepository sobre PostgreSQL.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador.
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create persiste una solicitud de retiro.
func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO withdrawals (`+withdrawalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		w.ID, w.SellerID, w.RequestedBy, w.Amount, w.Currency, w.BankName, w.AccountName, w.AccountNumber,
		w.Status, nullIfEmpty(w.PayoutRef), nullIfEmpty(w.FailureReason), nullIfEmpty(w.ReviewedBy),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID obtiene un retiro. Devuelve nil, nil si no existe.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id string) (*entity.Withdrawal, error) {
	w, err := scanWithdrawal(r.q.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return w, nil
}

// List lista retiros, más recientes primero.
func (r *WithdrawalRepo) List(ctx context.Context, f repository.WithdrawalFilter) ([]*entity.Withdrawal, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE ($1 = '' OR seller_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`, f.SellerID, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Transition aplica el cambio de estado en una sola sentencia condicionada al estado previo.
// Si no afecta filas se distingue entre retiro inexistente y estado distinto.
func (r *WithdrawalRepo) Transition(ctx context.Context, id, from, to string, patch entity.WithdrawalPatch) (*entity.Withdrawal, error) {
	w, err := scanWithdrawal(r.q.QueryRow(ctx, `
		UPDATE withdrawals SET status = $3,
			payout_ref = COALESCE($4, payout_ref),
			failure_reason = COALESCE($5, failure_reason),
			reviewed_by = COALESCE($6, reviewed_by),
			updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+withdrawalColumns,
		id, from, to, nullIfEmpty(patch.PayoutRef), nullIfEmpty(patch.FailureReason), nullIfEmpty(patch.ReviewedBy),
	))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transition withdrawal: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM withdrawals WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check withdrawal: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrStatusMismatch
}

func scanWithdrawal(row pgx.Row) (*entity.Withdrawal, error) {
	var (
		w                         entity.Withdrawal
		payoutRef, reason, review *string
	)
	if err := row.Scan(&w.ID, &w.SellerID, &w.RequestedBy, &w.Amount, &w.Currency, &w.BankName,
		&w.AccountName, &w.AccountNumber, &w.Status, &payoutRef, &reason, &review,
		&w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.PayoutRef = deref(payoutRef)
	w.FailureReason = deref(reason)
	w.ReviewedBy = deref(review)
	return &w, nil
}
