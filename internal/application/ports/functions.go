package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Errores de las funciones. ErrFunctionRejected: la función respondió no-2xx, la operación no
// ocurrió. ErrFunctionUnavailable: no hubo respuesta (timeout, red), el resultado es desconocido.
var (
	ErrFunctionRejected    = errors.New("function rejected the request")
	ErrFunctionUnavailable = errors.New("function unavailable")
)

// FunctionsClient puerto de salida hacia las funciones serverless del marketplace.
// Toda llamada lleva ctx con timeout; un error no-2xx llega como *functions.Error.
type FunctionsClient interface {
	LookupPaymentTransaction(ctx context.Context, in PaymentLookupInput) (*PaymentLookupResult, error)
	ProcessPayout(ctx context.Context, in PayoutInput) (*PayoutResult, error)
	CreateShippingLabel(ctx context.Context, in ShippingLabelInput) (*ShippingLabelResult, error)
	ProvisionPartnerAccount(ctx context.Context, in PartnerAccountInput) (*PartnerAccountResult, error)
}

// PaymentLookupInput consulta de una transacción por pedido o referencia.
type PaymentLookupInput struct {
	OrderID    string `json:"orderId"`
	PaymentRef string `json:"paymentRef,omitempty"`
}

// PaymentLookupResult estado reportado por la pasarela.
type PaymentLookupResult struct {
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
}

// PayoutInput orden de pago de un retiro.
type PayoutInput struct {
	WithdrawalID  string          `json:"withdrawalId"`
	SellerID      string          `json:"sellerId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	BankName      string          `json:"bankName"`
	AccountName   string          `json:"accountName"`
	AccountNumber string          `json:"accountNumber"`
}

// PayoutResult respuesta del proveedor de pagos. Status completed, paid, succeeded o success cierra el retiro.
type PayoutResult struct {
	PayoutRef string `json:"payoutRef"`
	Status    string `json:"status"`
}

// ShippingLabelInput datos para generar la guía.
type ShippingLabelInput struct {
	OrderID  string `json:"orderId"`
	SellerID string `json:"sellerId"`
	Carrier  string `json:"carrier,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ShippingLabelResult guía generada.
type ShippingLabelResult struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl"`
}

// PartnerAccountInput alta de la tienda en el proveedor externo.
type PartnerAccountInput struct {
	SellerID     string `json:"sellerId"`
	ShopName     string `json:"shopName"`
	ContactEmail string `json:"contactEmail"`
}

// PartnerAccountResult cuenta creada en el proveedor.
type PartnerAccountResult struct {
	AccountID string `json:"accountId"`
}
