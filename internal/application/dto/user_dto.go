package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuario + permisos efectivos.
type LoginResponse struct {
	Token  string         `json:"token"`
	User   UserResponse   `json:"user"`
	Access AccessResponse `json:"access"`
}

// UserResponse salida de un usuario (sin password). Permissions son los flags almacenados.
type UserResponse struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Active       bool            `json:"active"`
	IsSubAccount bool            `json:"is_sub_account"`
	ParentID     string          `json:"parent_id,omitempty"`
	SellerID     string          `json:"seller_id,omitempty"`
	Permissions  map[string]bool `json:"permissions"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UserListRequest filtros del listado de usuarios.
type UserListRequest struct {
	PageRequest
	Role string `query:"role" validate:"omitempty,oneof=admin seller"`
}

// CreateSubAccountRequest alta de una subcuenta por su seller primario.
type CreateSubAccountRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Permissions map[string]bool `json:"permissions"`
}

// UpdatePermissionsRequest reemplaza los flags almacenados de una cuenta.
type UpdatePermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

// SetActiveRequest activa o suspende una cuenta.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// AccessResponse permisos efectivos de la cuenta autenticada.
type AccessResponse struct {
	UserID      string          `json:"user_id"`
	Role        string          `json:"role"`
	SubAccount  bool            `json:"sub_account"`
	Permissions map[string]bool `json:"permissions"`
	Granted     []string        `json:"granted"`
}
