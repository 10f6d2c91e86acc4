package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
)

// SellerHandler tiendas del marketplace.
type SellerHandler struct {
	uc *usecase.SellerUseCase
}

func NewSellerHandler(uc *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// Create POST /api/sellers (admin): tienda + cuenta primaria.
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSellerRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/sellers?verification=
func (h *SellerHandler) List(c *fiber.Ctx) error {
	var in dto.SellerListRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/sellers/:id
func (h *SellerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/sellers/:id
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSellerRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetVerification PATCH /api/sellers/:id/verification (admin)
func (h *SellerHandler) SetVerification(c *fiber.Ctx) error {
	var in dto.SetVerificationRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.SetVerification(c.UserContext(), Actor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProvisionPartner POST /api/sellers/:id/partner-account (admin)
func (h *SellerHandler) ProvisionPartner(c *fiber.Ctx) error {
	out, err := h.uc.ProvisionPartner(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
