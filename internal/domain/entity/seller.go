package entity

import "time"

// Estados de verificación de un seller.
const (
	SellerPending   = "pending"
	SellerApproved  = "approved"
	SellerSuspended = "suspended"
)

// Seller tienda registrada en el marketplace.
type Seller struct {
	ID               string
	OwnerUserID      string
	ShopName         string
	ContactEmail     string
	ContactPhone     string
	Address          string
	Verification     string // pending, approved, suspended
	PartnerAccountID string // asignado tras el aprovisionamiento con el socio externo
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValidVerification valida el estado de verificación.
func IsValidVerification(s string) bool {
	return s == SellerPending || s == SellerApproved || s == SellerSuspended
}
