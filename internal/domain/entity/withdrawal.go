package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un retiro de fondos.
const (
	WithdrawalPending    = "pending"
	WithdrawalApproved   = "approved"
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
	WithdrawalFailed     = "failed"
)

// withdrawalTransitions transiciones permitidas: pending → approved → processing → completed|failed.
var withdrawalTransitions = map[string][]string{
	WithdrawalPending:    {WithdrawalApproved},
	WithdrawalApproved:   {WithdrawalProcessing},
	WithdrawalProcessing: {WithdrawalCompleted, WithdrawalFailed},
}

// CanTransition informa si el cambio from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range withdrawalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Withdrawal solicitud de retiro de saldo de un seller.
type Withdrawal struct {
	ID            string
	SellerID      string
	RequestedBy   string
	Amount        decimal.Decimal
	Currency      string
	BankName      string
	AccountName   string
	AccountNumber string
	Status        string
	PayoutRef     string
	FailureReason string
	ReviewedBy    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WithdrawalPatch campos que acompañan a una transición de estado (vacío = no se modifica).
type WithdrawalPatch struct {
	PayoutRef     string
	FailureReason string
	ReviewedBy    string
}
