package repository

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

// WithdrawalFilter filtros de listado de retiros.
type WithdrawalFilter struct {
	SellerID string
	Status   string
	Limit    int
	Offset   int
}

// WithdrawalRepository puerto de persistencia de retiros.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *entity.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entity.Withdrawal, error)
	List(ctx context.Context, filter WithdrawalFilter) ([]*entity.Withdrawal, error)
	// Transition cambia el estado solo si el estado actual es from (actualización condicional atómica).
	// Devuelve domain.ErrNotFound si no existe y domain.ErrStatusMismatch si el estado difiere.
	Transition(ctx context.Context, id, from, to string, patch entity.WithdrawalPatch) (*entity.Withdrawal, error)
}
