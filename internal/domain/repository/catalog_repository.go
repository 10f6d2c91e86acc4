package repository

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

// PolicyRepository puerto de persistencia de políticas.
type PolicyRepository interface {
	Create(ctx context.Context, p *entity.Policy) error
	GetByID(ctx context.Context, id string) (*entity.Policy, error)
	List(ctx context.Context, publishedOnly bool) ([]*entity.Policy, error)
	Update(ctx context.Context, p *entity.Policy) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
}

// WarrantyRuleRepository puerto de persistencia de reglas de garantía.
type WarrantyRuleRepository interface {
	Create(ctx context.Context, r *entity.WarrantyRule) error
	GetByID(ctx context.Context, id string) (*entity.WarrantyRule, error)
	// List filtra por categoría si categoryID no está vacío.
	List(ctx context.Context, categoryID string) ([]*entity.WarrantyRule, error)
	Update(ctx context.Context, r *entity.WarrantyRule) error
	Delete(ctx context.Context, id string) error
}
