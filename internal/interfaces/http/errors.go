package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/functions"
)

// errorStatus relación error de dominio → status HTTP y código.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrStatusMismatch, fiber.StatusConflict, "STATUS_MISMATCH"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{ports.ErrFunctionUnavailable, fiber.StatusBadGateway, "FUNCTION_UNAVAILABLE"},
}

// respondError traduce err a la respuesta JSON correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	var fnErr *functions.Error
	if errors.As(err, &fnErr) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "FUNCTION_FAILED",
			Message: fnErr.Error(),
		})
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ErrorHandler manejador global de Fiber para errores no tratados en los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
