package usecase

import (
	"time"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
)

// Clock permite fijar la hora en tests.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// requireAdmin operaciones reservadas a administradores.
func requireAdmin(actor access.Access) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// sellerScope devuelve el seller cuyos datos puede ver el actor ("" = todos).
func sellerScope(actor access.Access) (string, error) {
	if actor.IsAdmin() {
		return "", nil
	}
	if actor.SellerID == "" {
		return "", domain.ErrForbidden
	}
	return actor.SellerID, nil
}

// canSeeSeller informa si el actor puede operar sobre datos del seller.
func canSeeSeller(actor access.Access, sellerID string) bool {
	return actor.IsAdmin() || (actor.SellerID != "" && actor.SellerID == sellerID)
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
