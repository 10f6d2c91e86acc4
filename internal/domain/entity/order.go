package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderstatus"
)

// Order pedido de un comprador a un seller. El estado canónico se recalcula en cada lectura
// a partir de Signals; nunca se confía en un valor almacenado.
type Order struct {
	ID            string
	BuyerID       string
	SellerID      string
	Items         []OrderItem
	Summary       OrderSummary
	History       []StatusChange
	Shipping      ShippingInfo
	PaymentRef    string
	Signals       orderstatus.Signals
	Status        orderstatus.Canonical
	SchemaVersion int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	// Document documento almacenado del que se decodificó el pedido; nil si es nuevo.
	Document map[string]any
}

// OrderItem línea del pedido.
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total de la línea.
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderSummary resumen monetario.
type OrderSummary struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// StatusChange entrada del historial de estados.
type StatusChange struct {
	Status string
	At     time.Time
	Note   string
}

// ShippingInfo metadatos de envío.
type ShippingInfo struct {
	Carrier        string
	TrackingNumber string
	LabelURL       string
	Address        string
}
