package entity

import (
	"time"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
)

// Roles válidos para User.
const (
	RoleAdmin  = permission.RoleAdmin
	RoleSeller = permission.RoleSeller
)

// User perfil de una cuenta del dashboard (admin, seller o subcuenta de un seller).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, seller
	Active       bool
	Permissions  permission.Map // flags almacenados; las claves pueden faltar
	IsSubAccount bool
	ParentID     string // solo subcuentas: cuenta primaria que las delegó
	SellerID     string // tienda que opera la cuenta (seller y sus subcuentas)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin informa si el usuario es administrador.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
