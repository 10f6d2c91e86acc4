package access

import (
	"context"
	"fmt"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// Access permisos efectivos de una cuenta en un instante dado.
type Access struct {
	UserID      string
	SellerID    string
	Role        string
	SubAccount  bool
	ParentID    string
	Active      bool
	Permissions permission.Map
}

// Allows informa si la cuenta activa tiene la capacidad.
func (a Access) Allows(c permission.Capability) bool {
	return a.Active && a.Permissions.Allows(c)
}

// IsAdmin informa si la cuenta es administradora.
func (a Access) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Equal compara dos resultados (para no reemitir cambios sin efecto).
func (a Access) Equal(b Access) bool {
	if a.UserID != b.UserID || a.SellerID != b.SellerID || a.Role != b.Role ||
		a.SubAccount != b.SubAccount || a.ParentID != b.ParentID || a.Active != b.Active {
		return false
	}
	for _, c := range permission.All() {
		if a.Permissions[c] != b.Permissions[c] {
			return false
		}
	}
	return true
}

// ToResponse convierte a DTO.
func (a Access) ToResponse() dto.AccessResponse {
	granted := a.Permissions.Granted()
	names := make([]string, 0, len(granted))
	for _, c := range granted {
		names = append(names, string(c))
	}
	return dto.AccessResponse{
		UserID:      a.UserID,
		Role:        a.Role,
		SubAccount:  a.SubAccount,
		Permissions: a.Permissions.Strings(),
		Granted:     names,
	}
}

// Resolver carga la cuenta (y su padre si es subcuenta) y calcula los permisos efectivos.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve devuelve domain.ErrUserNotFound si la cuenta no existe. Un padre que no se puede leer,
// no existe o está inactivo cuenta como no disponible: la subcuenta queda sin permisos.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Access, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return Access{}, fmt.Errorf("access: %w", err)
	}
	if user == nil {
		return Access{}, domain.ErrUserNotFound
	}
	return r.ForUser(ctx, user), nil
}

// ForUser resuelve a partir de una cuenta ya cargada.
func (r *Resolver) ForUser(ctx context.Context, user *entity.User) Access {
	in := permission.Input{
		Role:       user.Role,
		Stored:     user.Permissions,
		SubAccount: user.IsSubAccount,
	}
	if user.IsSubAccount && user.ParentID != "" {
		parent, err := r.users.GetByID(ctx, user.ParentID)
		if err == nil && parent != nil && parent.Active {
			in.Parent = parent.Permissions
			in.ParentFound = true
		}
	}
	return Access{
		UserID:      user.ID,
		SellerID:    user.SellerID,
		Role:        user.Role,
		SubAccount:  user.IsSubAccount,
		ParentID:    user.ParentID,
		Active:      user.Active,
		Permissions: permission.Resolve(in),
	}
}
