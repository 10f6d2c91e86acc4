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

var _ repository.PolicyRepository = (*PolicyRepo)(nil)

const policyColumns = `id, kind, title, body, version, published, created_at, updated_at`

// PolicyRepo implementación del puerto PolicyRepository.
type PolicyRepo struct {
	q Querier
}

func NewPolicyRepository(q Querier) *PolicyRepo {
	return &PolicyRepo{q: q}
}

func (r *PolicyRepo) Create(ctx context.Context, p *entity.Policy) error {
	_, err := r.q.Exec(ctx, `INSERT INTO policies (`+policyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Kind, p.Title, p.Body, p.Version, p.Published, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

func (r *PolicyRepo) GetByID(ctx context.Context, id string) (*entity.Policy, error) {
	p, err := scanPolicy(r.q.QueryRow(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return p, nil
}

func (r *PolicyRepo) List(ctx context.Context, publishedOnly bool) ([]*entity.Policy, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE (NOT $1 OR published) ORDER BY kind, updated_at DESC`, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PolicyRepo) Update(ctx context.Context, p *entity.Policy) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE policies SET kind = $2, title = $3, body = $4, version = $5, published = $6, updated_at = $7
		WHERE id = $1`, p.ID, p.Kind, p.Title, p.Body, p.Version, p.Published, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PolicyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPolicy(row pgx.Row) (*entity.Policy, error) {
	var p entity.Policy
	if err := row.Scan(&p.ID, &p.Kind, &p.Title, &p.Body, &p.Version, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
