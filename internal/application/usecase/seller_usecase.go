package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// AccountTxRunner crea cuenta primaria y tienda en la misma transacción.
type AccountTxRunner interface {
	RunAccounts(ctx context.Context, fn func(users repository.UserRepository, sellers repository.SellerRepository) error) error
}

// SellerUseCase gestión de tiendas.
type SellerUseCase struct {
	sellers   repository.SellerRepository
	tx        AccountTxRunner
	functions ports.FunctionsClient
	now       Clock
}

// NewSellerUseCase construye el caso de uso.
func NewSellerUseCase(sellers repository.SellerRepository, tx AccountTxRunner, functions ports.FunctionsClient) *SellerUseCase {
	return &SellerUseCase{sellers: sellers, tx: tx, functions: functions, now: utcNow}
}

// Create da de alta la tienda y su cuenta primaria con los permisos por defecto del rol seller.
func (uc *SellerUseCase) Create(ctx context.Context, actor access.Access, in dto.CreateSellerRequest) (*dto.SellerResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	sellerID := uuid.New().String()
	owner := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleSeller,
		Active:       true,
		Permissions:  permission.RoleDefaults(entity.RoleSeller),
		SellerID:     sellerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seller := &entity.Seller{
		ID:           sellerID,
		OwnerUserID:  owner.ID,
		ShopName:     strings.TrimSpace(in.ShopName),
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		Verification: entity.SellerPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunAccounts(ctx, func(users repository.UserRepository, sellers repository.SellerRepository) error {
		existing, err := users.GetByEmail(ctx, owner.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, owner); err != nil {
			return err
		}
		return sellers.Create(ctx, seller)
	})
	if err != nil {
		return nil, err
	}
	resp := toSellerResponse(seller)
	return &resp, nil
}

// List admin: todas (filtro opcional por verificación); seller: solo la propia.
func (uc *SellerUseCase) List(ctx context.Context, actor access.Access, in dto.SellerListRequest) ([]dto.SellerResponse, error) {
	if !actor.IsAdmin() {
		s, err := uc.Get(ctx, actor, actor.SellerID)
		if err != nil {
			return nil, err
		}
		return []dto.SellerResponse{*s}, nil
	}
	in.DefaultPage()
	list, err := uc.sellers.List(ctx, in.Verification, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SellerResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSellerResponse(s))
	}
	return out, nil
}

// Get obtiene una tienda visible para el actor.
func (uc *SellerUseCase) Get(ctx context.Context, actor access.Access, id string) (*dto.SellerResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toSellerResponse(s)
	return &resp, nil
}

// Update edita el perfil de la tienda (admin o la cuenta primaria de la tienda; nunca una subcuenta).
func (uc *SellerUseCase) Update(ctx context.Context, actor access.Access, id string, in dto.UpdateSellerRequest) (*dto.SellerResponse, error) {
	if actor.SubAccount {
		return nil, domain.ErrForbidden
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.ShopName = strings.TrimSpace(in.ShopName)
	s.ContactEmail = in.ContactEmail
	s.ContactPhone = in.ContactPhone
	s.Address = in.Address
	s.UpdatedAt = uc.now()
	if err := uc.sellers.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := toSellerResponse(s)
	return &resp, nil
}

// SetVerification cambia el estado de verificación (admin).
func (uc *SellerUseCase) SetVerification(ctx context.Context, actor access.Access, id, status string) (*dto.SellerResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !entity.IsValidVerification(status) {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.Verification = status
	s.UpdatedAt = uc.now()
	if err := uc.sellers.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := toSellerResponse(s)
	return &resp, nil
}

// ProvisionPartner crea la cuenta de la tienda en el proveedor externo. Solo tiendas aprobadas
// y una sola vez.
func (uc *SellerUseCase) ProvisionPartner(ctx context.Context, actor access.Access, id string) (*dto.SellerResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.Verification != entity.SellerApproved || s.PartnerAccountID != "" {
		return nil, domain.ErrConflict
	}
	res, err := uc.functions.ProvisionPartnerAccount(ctx, ports.PartnerAccountInput{
		SellerID:     s.ID,
		ShopName:     s.ShopName,
		ContactEmail: s.ContactEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("provision partner: %w", err)
	}
	s.PartnerAccountID = res.AccountID
	s.UpdatedAt = uc.now()
	if err := uc.sellers.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := toSellerResponse(s)
	return &resp, nil
}

func (uc *SellerUseCase) load(ctx context.Context, actor access.Access, id string) (*entity.Seller, error) {
	if !canSeeSeller(actor, id) {
		return nil, domain.ErrForbidden
	}
	s, err := uc.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toSellerResponse(s *entity.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:               s.ID,
		OwnerUserID:      s.OwnerUserID,
		ShopName:         s.ShopName,
		ContactEmail:     s.ContactEmail,
		ContactPhone:     s.ContactPhone,
		Address:          s.Address,
		Verification:     s.Verification,
		PartnerAccountID: s.PartnerAccountID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
