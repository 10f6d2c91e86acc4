package repository

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
)

// UserFilter filtros de listado. ParentID vacío no filtra por cuenta padre.
type UserFilter struct {
	ParentID string
	Role     string
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePermissions(ctx context.Context, id string, perms permission.Map) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// ScanAfter recorre usuarios por ID ascendente (scripts de backfill).
	ScanAfter(ctx context.Context, afterID string, limit int) ([]*entity.User, error)
}
