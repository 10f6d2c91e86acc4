package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderListRequest filtros del listado. Status es el estado canónico.
type OrderListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=completed failed-delivery processing to-ship cancelled pending"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderSummaryResponse resumen monetario.
type OrderSummaryResponse struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// StatusChangeResponse entrada del historial.
type StatusChangeResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// ShippingResponse metadatos de envío.
type ShippingResponse struct {
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	LabelURL       string `json:"label_url,omitempty"`
	Address        string `json:"address,omitempty"`
}

// OrderResponse salida de un pedido con su estado canónico recalculado.
type OrderResponse struct {
	ID         string                 `json:"id"`
	BuyerID    string                 `json:"buyer_id"`
	SellerID   string                 `json:"seller_id"`
	Status     string                 `json:"status"`
	Items      []OrderItemResponse    `json:"items"`
	Summary    OrderSummaryResponse   `json:"summary"`
	History    []StatusChangeResponse `json:"history"`
	Shipping   ShippingResponse       `json:"shipping"`
	PaymentRef string                 `json:"payment_ref,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// OrderListResponse página de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CancelOrderRequest motivo opcional de cancelación.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ShippingLabelRequest solicitud de guía de envío.
type ShippingLabelRequest struct {
	Carrier string `json:"carrier" validate:"omitempty,max=100"`
}

// PaymentLookupResponse estado de la transacción según la pasarela.
type PaymentLookupResponse struct {
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
}

// StatusCountResponse número de pedidos por estado canónico.
type StatusCountResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
