package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest solicitud de retiro de saldo. Amount debe ser > 0 (se valida en el use case).
type WithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	BankName      string          `json:"bank_name" validate:"required,max=120"`
	AccountName   string          `json:"account_name" validate:"required,max=200"`
	AccountNumber string          `json:"account_number" validate:"required,max=60"`
}

// WithdrawalListRequest filtros del listado.
type WithdrawalListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=pending approved processing completed failed"`
}

// CompleteWithdrawalRequest cierre manual de un retiro en proceso.
type CompleteWithdrawalRequest struct {
	PayoutRef string `json:"payout_ref" validate:"omitempty,max=200"`
}

// FailWithdrawalRequest marca un retiro en proceso como fallido.
type FailWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// WithdrawalResponse salida de un retiro.
type WithdrawalResponse struct {
	ID            string          `json:"id"`
	SellerID      string          `json:"seller_id"`
	RequestedBy   string          `json:"requested_by"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	BankName      string          `json:"bank_name"`
	AccountName   string          `json:"account_name"`
	AccountNumber string          `json:"account_number"`
	Status        string          `json:"status"`
	PayoutRef     string          `json:"payout_ref,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	ReviewedBy    string          `json:"reviewed_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
