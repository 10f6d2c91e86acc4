package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
)

// WithdrawalHandler retiros de saldo.
type WithdrawalHandler struct {
	uc *usecase.WithdrawalUseCase
}

func NewWithdrawalHandler(uc *usecase.WithdrawalUseCase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

// Request POST /api/withdrawals (seller)
func (h *WithdrawalHandler) Request(c *fiber.Ctx) error {
	var in dto.WithdrawalRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Request(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/withdrawals?status=
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	var in dto.WithdrawalListRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/withdrawals/:id
func (h *WithdrawalHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statement GET /api/withdrawals/:id/statement (PDF)
func (h *WithdrawalHandler) Statement(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.Statement(c.UserContext(), Actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="withdrawal-`+id+`.pdf"`)
	return c.Send(data)
}

// Approve POST /api/withdrawals/:id/approve (admin)
func (h *WithdrawalHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Process POST /api/withdrawals/:id/process (admin). Un payout rechazado deja el retiro en failed.
func (h *WithdrawalHandler) Process(c *fiber.Ctx) error {
	out, err := h.uc.Process(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete POST /api/withdrawals/:id/complete (admin)
func (h *WithdrawalHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteWithdrawalRequest
	if len(c.Body()) > 0 && !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Complete(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Fail POST /api/withdrawals/:id/fail (admin)
func (h *WithdrawalHandler) Fail(c *fiber.Ctx) error {
	var in dto.FailWithdrawalRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Fail(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
