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

var _ repository.WarrantyRuleRepository = (*WarrantyRuleRepo)(nil)

const warrantyColumns = `id, category_id, duration_days, coverage, active, created_at, updated_at`

// WarrantyRuleRepo implementación del puerto WarrantyRuleRepository.
type WarrantyRuleRepo struct {
	q Querier
}

func NewWarrantyRuleRepository(q Querier) *WarrantyRuleRepo {
	return &WarrantyRuleRepo{q: q}
}

func (r *WarrantyRuleRepo) Create(ctx context.Context, w *entity.WarrantyRule) error {
	_, err := r.q.Exec(ctx, `INSERT INTO warranty_rules (`+warrantyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.CategoryID, w.DurationDays, w.Coverage, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert warranty rule: %w", err)
	}
	return nil
}

func (r *WarrantyRuleRepo) GetByID(ctx context.Context, id string) (*entity.WarrantyRule, error) {
	w, err := scanWarranty(r.q.QueryRow(ctx, `SELECT `+warrantyColumns+` FROM warranty_rules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warranty rule: %w", err)
	}
	return w, nil
}

func (r *WarrantyRuleRepo) List(ctx context.Context, categoryID string) ([]*entity.WarrantyRule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+warrantyColumns+` FROM warranty_rules
		WHERE ($1 = '' OR category_id = $1) ORDER BY created_at`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list warranty rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarrantyRule
	for rows.Next() {
		w, err := scanWarranty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warranty rule: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WarrantyRuleRepo) Update(ctx context.Context, w *entity.WarrantyRule) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE warranty_rules SET category_id = $2, duration_days = $3, coverage = $4, active = $5, updated_at = $6
		WHERE id = $1`, w.ID, w.CategoryID, w.DurationDays, w.Coverage, w.Active, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warranty rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarrantyRuleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM warranty_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warranty rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWarranty(row pgx.Row) (*entity.WarrantyRule, error) {
	var w entity.WarrantyRule
	if err := row.Scan(&w.ID, &w.CategoryID, &w.DurationDays, &w.Coverage, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
