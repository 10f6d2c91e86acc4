package dto

import "time"

// CreateSellerRequest alta de una tienda junto con su cuenta primaria (admin).
type CreateSellerRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name" validate:"required,max=200"`
	ShopName     string `json:"shop_name" validate:"required,max=200"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=40"`
	Address      string `json:"address" validate:"omitempty,max=500"`
}

// UpdateSellerRequest edición del perfil de la tienda.
type UpdateSellerRequest struct {
	ShopName     string `json:"shop_name" validate:"required,max=200"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=40"`
	Address      string `json:"address" validate:"omitempty,max=500"`
}

// SetVerificationRequest cambio de estado de verificación (admin).
type SetVerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved suspended"`
}

// SellerListRequest filtros del listado de sellers.
type SellerListRequest struct {
	PageRequest
	Verification string `query:"verification" validate:"omitempty,oneof=pending approved suspended"`
}

// SellerResponse salida de un seller.
type SellerResponse struct {
	ID               string    `json:"id"`
	OwnerUserID      string    `json:"owner_user_id"`
	ShopName         string    `json:"shop_name"`
	ContactEmail     string    `json:"contact_email"`
	ContactPhone     string    `json:"contact_phone"`
	Address          string    `json:"address"`
	Verification     string    `json:"verification"`
	PartnerAccountID string    `json:"partner_account_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
