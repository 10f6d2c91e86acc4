package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler pedidos con estado canónico.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List GET /api/orders?status=&limit=&offset=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary GET /api/orders/summary: conteo por estado canónico.
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.CountByStatus(c.UserContext(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export GET /api/orders/export?status=
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext(), Actor(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// Get GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm POST /api/orders/:id/confirm
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Cancel(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ShippingLabel POST /api/orders/:id/shipping-label
func (h *OrderHandler) ShippingLabel(c *fiber.Ctx) error {
	var in dto.ShippingLabelRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateShippingLabel(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Payment GET /api/orders/:id/payment
func (h *OrderHandler) Payment(c *fiber.Ctx) error {
	out, err := h.uc.LookupPayment(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
