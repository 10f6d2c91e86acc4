package usecase

import (
	"context"
	"fmt"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderschema"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderstatus"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// Valores de estado de primer nivel que escribe el dashboard.
const (
	topConfirmed = "confirmed"
	topCancelled = "cancelled"
)

// OrderUseCase consulta y operaciones sobre pedidos. El estado canónico llega ya recalculado
// por el repositorio.
type OrderUseCase struct {
	orders    repository.OrderRepository
	functions ports.FunctionsClient
	exporter  ports.OrderReportExporter
	now       Clock
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, functions ports.FunctionsClient, exporter ports.OrderReportExporter) *OrderUseCase {
	return &OrderUseCase{orders: orders, functions: functions, exporter: exporter, now: utcNow}
}

// List pedidos del actor filtrados por estado canónico.
func (uc *OrderUseCase) List(ctx context.Context, actor access.Access, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	orders, err := uc.scoped(ctx, actor, in.Status)
	if err != nil {
		return nil, err
	}
	page := paginate(orders, in.Limit, in.Offset)
	items := make([]dto.OrderResponse, 0, len(page))
	for _, o := range page {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(orders)},
	}, nil
}

// Get obtiene un pedido visible para el actor.
func (uc *OrderUseCase) Get(ctx context.Context, actor access.Access, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// Confirm acepta un pedido pendiente.
func (uc *OrderUseCase) Confirm(ctx context.Context, actor access.Access, id string) (*dto.OrderResponse, error) {
	return uc.setTopStatus(ctx, actor, id, topConfirmed, "")
}

// Cancel cancela un pedido mientras siga pendiente.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor access.Access, id string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	return uc.setTopStatus(ctx, actor, id, topCancelled, in.Reason)
}

func (uc *OrderUseCase) setTopStatus(ctx context.Context, actor access.Access, id, status, note string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if o.Status != orderstatus.Pending {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	o.Signals.Top = status
	o.History = append(o.History, entity.StatusChange{Status: status, At: now, Note: note})
	o.UpdatedAt = now
	if err := uc.orders.Merge(ctx, o.ID, o.Document, orderschema.Fields(o, "status", "statusHistory", "updatedAt")); err != nil {
		return nil, err
	}
	o.Status = orderstatus.Classify(o.Signals)
	resp := toOrderResponse(o)
	return &resp, nil
}

// CreateShippingLabel genera la guía de un pedido listo para enviar y la guarda en shipping.
func (uc *OrderUseCase) CreateShippingLabel(ctx context.Context, actor access.Access, id string, in dto.ShippingLabelRequest) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if o.Status != orderstatus.ToShip {
		return nil, domain.ErrConflict
	}
	label, err := uc.functions.CreateShippingLabel(ctx, ports.ShippingLabelInput{
		OrderID:  o.ID,
		SellerID: o.SellerID,
		Carrier:  in.Carrier,
		Address:  o.Shipping.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("shipping label: %w", err)
	}
	o.Shipping.Carrier = label.Carrier
	o.Shipping.TrackingNumber = label.TrackingNumber
	o.Shipping.LabelURL = label.LabelURL
	o.UpdatedAt = uc.now()
	// La guía ya existe en el transportista: se guarda aunque el pedido haya cambiado entretanto.
	if err := uc.orders.Merge(ctx, o.ID, nil, orderschema.Fields(o, "shipping", "updatedAt")); err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// LookupPayment consulta el estado de la transacción en la pasarela.
func (uc *OrderUseCase) LookupPayment(ctx context.Context, actor access.Access, id string) (*dto.PaymentLookupResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	res, err := uc.functions.LookupPaymentTransaction(ctx, ports.PaymentLookupInput{OrderID: o.ID, PaymentRef: o.PaymentRef})
	if err != nil {
		return nil, fmt.Errorf("payment lookup: %w", err)
	}
	return &dto.PaymentLookupResponse{
		OrderID:       o.ID,
		TransactionID: res.TransactionID,
		Status:        res.Status,
		Amount:        res.Amount,
	}, nil
}

// CountByStatus resumen del dashboard: pedidos por estado canónico (todos los estados presentes).
func (uc *OrderUseCase) CountByStatus(ctx context.Context, actor access.Access) (*dto.StatusCountResponse, error) {
	orders, err := uc.scoped(ctx, actor, "")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(orderstatus.All()))
	for _, s := range orderstatus.All() {
		counts[string(s)] = 0
	}
	for _, o := range orders {
		counts[string(o.Status)]++
	}
	return &dto.StatusCountResponse{Counts: counts, Total: len(orders)}, nil
}

// Export genera el XLSX de los pedidos visibles (filtro opcional por estado).
func (uc *OrderUseCase) Export(ctx context.Context, actor access.Access, status string) ([]byte, error) {
	orders, err := uc.scoped(ctx, actor, status)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportOrders(orders)
}

func (uc *OrderUseCase) scoped(ctx context.Context, actor access.Access, status string) ([]*entity.Order, error) {
	var want orderstatus.Canonical
	if status != "" {
		s, ok := orderstatus.Parse(status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		want = s
	}
	sellerID, err := sellerScope(actor)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if want == "" {
		return orders, nil
	}
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == want {
			out = append(out, o)
		}
	}
	return out, nil
}

func (uc *OrderUseCase) load(ctx context.Context, actor access.Access, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !canSeeSeller(actor, o.SellerID) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total(),
		})
	}
	history := make([]dto.StatusChangeResponse, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, dto.StatusChangeResponse{Status: h.Status, At: h.At, Note: h.Note})
	}
	return dto.OrderResponse{
		ID:       o.ID,
		BuyerID:  o.BuyerID,
		SellerID: o.SellerID,
		Status:   string(o.Status),
		Items:    items,
		Summary: dto.OrderSummaryResponse{
			Subtotal:    o.Summary.Subtotal,
			ShippingFee: o.Summary.ShippingFee,
			Discount:    o.Summary.Discount,
			Total:       o.Summary.Total,
		},
		History: history,
		Shipping: dto.ShippingResponse{
			Carrier:        o.Shipping.Carrier,
			TrackingNumber: o.Shipping.TrackingNumber,
			LabelURL:       o.Shipping.LabelURL,
			Address:        o.Shipping.Address,
		},
		PaymentRef: o.PaymentRef,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
