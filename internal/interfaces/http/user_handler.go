package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
)

// UserHandler cuentas del dashboard y subcuentas.
type UserHandler struct {
	uc *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List GET /api/users?role=&limit=&offset=
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.UserListRequest
	if !parseQuery(c, &in) {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSubAccount POST /api/users
func (h *UserHandler) CreateSubAccount(c *fiber.Ctx) error {
	var in dto.CreateSubAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateSubAccount(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePermissions PUT /api/users/:id/permissions
func (h *UserHandler) UpdatePermissions(c *fiber.Ctx) error {
	var in dto.UpdatePermissionsRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdatePermissions(c.UserContext(), Actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetActive PATCH /api/users/:id/active
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.SetActive(c.UserContext(), Actor(c), c.Params("id"), *in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), Actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
