package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// UserUseCase gestión de cuentas: los admins ven todas, un seller primario solo sus subcuentas.
type UserUseCase struct {
	repo repository.UserRepository
	now  Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: utcNow}
}

// List lista usuarios visibles para el actor.
func (uc *UserUseCase) List(ctx context.Context, actor access.Access, in dto.UserListRequest) ([]dto.UserResponse, error) {
	in.DefaultPage()
	filter := repository.UserFilter{Role: in.Role, Limit: in.Limit, Offset: in.Offset}
	if !actor.IsAdmin() {
		if actor.SubAccount {
			return nil, domain.ErrForbidden
		}
		filter.ParentID = actor.UserID
		filter.Role = ""
	}
	users, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Get obtiene un usuario. Cualquier cuenta puede leerse a sí misma.
func (uc *UserUseCase) Get(ctx context.Context, actor access.Access, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.ID != actor.UserID && !canManage(actor, u) {
		return nil, domain.ErrForbidden
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// CreateSubAccount crea una subcuenta delegada por un seller primario. Los flags de gestión
// de cuentas se guardan en false.
func (uc *UserUseCase) CreateSubAccount(ctx context.Context, actor access.Access, in dto.CreateSubAccountRequest) (*dto.UserResponse, error) {
	if actor.Role != entity.RoleSeller || actor.SubAccount || actor.SellerID == "" {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleSeller,
		Active:       true,
		Permissions:  permission.ForSubAccount(permission.FromStrings(in.Permissions)),
		IsSubAccount: true,
		ParentID:     actor.UserID,
		SellerID:     actor.SellerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// UpdatePermissions reemplaza los flags almacenados. Claves desconocidas se descartan.
func (uc *UserUseCase) UpdatePermissions(ctx context.Context, actor access.Access, id string, in dto.UpdatePermissionsRequest) (*dto.UserResponse, error) {
	u, err := uc.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	perms := permission.FromStrings(in.Permissions)
	if u.IsSubAccount {
		perms = permission.ForSubAccount(perms)
	}
	if err := uc.repo.UpdatePermissions(ctx, u.ID, perms); err != nil {
		return nil, err
	}
	u.Permissions = perms
	u.UpdatedAt = uc.now()
	resp := ToUserResponse(u)
	return &resp, nil
}

// SetActive activa o suspende una cuenta. Nadie puede suspenderse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actor access.Access, id string, active bool) (*dto.UserResponse, error) {
	if id == actor.UserID {
		return nil, domain.ErrForbidden
	}
	u, err := uc.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	u.Active = active
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Delete elimina una subcuenta.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Access, id string) error {
	u, err := uc.managed(ctx, actor, id)
	if err != nil {
		return err
	}
	if !u.IsSubAccount {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, u.ID)
}

func (uc *UserUseCase) managed(ctx context.Context, actor access.Access, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !canManage(actor, u) {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// canManage: admin gestiona cualquier cuenta salvo la propia; un seller primario, sus subcuentas.
func canManage(actor access.Access, u *entity.User) bool {
	if actor.IsAdmin() {
		return u.ID != actor.UserID
	}
	return !actor.SubAccount && u.IsSubAccount && u.ParentID == actor.UserID
}

// ToUserResponse convierte la entidad a DTO (sin password).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Active:       u.Active,
		IsSubAccount: u.IsSubAccount,
		ParentID:     u.ParentID,
		SellerID:     u.SellerID,
		Permissions:  u.Permissions.Strings(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
