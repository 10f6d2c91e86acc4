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

// Asegura que SellerRepo implementa repository.SellerRepository.
var _ repository.SellerRepository = (*SellerRepo)(nil)

const sellerColumns = `id, owner_user_id, shop_name, contact_email, contact_phone, address, verification, partner_account_id, created_at, updated_at`

// SellerRepo implementación del puerto SellerRepository sobre PostgreSQL.
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador.
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

// Create persiste un seller.
func (r *SellerRepo) Create(ctx context.Context, s *entity.Seller) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sellers (`+sellerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OwnerUserID, s.ShopName, s.ContactEmail, s.ContactPhone, s.Address,
		s.Verification, nullIfEmpty(s.PartnerAccountID), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

// GetByID obtiene un seller por ID. Devuelve nil, nil si no existe.
func (r *SellerRepo) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	s, err := scanSeller(r.q.QueryRow(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return s, nil
}

// Update actualiza perfil, verificación y cuenta de socio.
func (r *SellerRepo) Update(ctx context.Context, s *entity.Seller) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sellers SET shop_name = $2, contact_email = $3, contact_phone = $4, address = $5,
			verification = $6, partner_account_id = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.ShopName, s.ContactEmail, s.ContactPhone, s.Address,
		s.Verification, nullIfEmpty(s.PartnerAccountID), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista sellers, opcionalmente por estado de verificación.
func (r *SellerRepo) List(ctx context.Context, verification string, limit, offset int) ([]*entity.Seller, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+sellerColumns+` FROM sellers
		WHERE ($1 = '' OR verification = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, verification, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSeller(row pgx.Row) (*entity.Seller, error) {
	var (
		s       entity.Seller
		partner *string
	)
	if err := row.Scan(&s.ID, &s.OwnerUserID, &s.ShopName, &s.ContactEmail, &s.ContactPhone,
		&s.Address, &s.Verification, &partner, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.PartnerAccountID = deref(partner)
	return &s, nil
}
