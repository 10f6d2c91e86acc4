package repository

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

// SellerRepository define el puerto de persistencia para Seller.
type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	GetByID(ctx context.Context, id string) (*entity.Seller, error)
	Update(ctx context.Context, seller *entity.Seller) error
	// List filtra por estado de verificación si verification no está vacío.
	List(ctx context.Context, verification string, limit, offset int) ([]*entity.Seller, error)
}
