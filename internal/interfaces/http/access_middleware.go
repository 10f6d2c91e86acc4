package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
)

// LocalAccess key del acceso efectivo resuelto para la petición.
const LocalAccess = "access"

// accessResolver contrato mínimo que necesita el middleware. Lo implementa *access.Resolver.
type accessResolver interface {
	Resolve(ctx context.Context, userID string) (access.Access, error)
}

// LoadAccess resuelve los permisos efectivos de la cuenta del token en cada petición.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → la cuenta del token ya no existe.
//   - 403 → cuenta inactiva.
//   - 503 → fallo al consultar la DB.
func LoadAccess(resolver accessResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		a, err := resolver.Resolve(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    "UNAUTHORIZED",
					Message: "la cuenta del token no existe",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCESS_CHECK_FAILED",
				Message: "no se pudieron verificar los permisos, intente más tarde",
			})
		}
		if !a.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "INACTIVE_ACCOUNT",
				Message: "cuenta inactiva o suspendida",
			})
		}
		c.Locals(LocalAccess, a)
		return c.Next()
	}
}

// RequireCapability exige que el acceso efectivo conceda todas las capacidades indicadas.
// Debe usarse DESPUÉS de LoadAccess.
func RequireCapability(caps ...permission.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, ok := c.Locals(LocalAccess).(access.Access)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "acceso no resuelto",
			})
		}
		for _, need := range caps {
			if !a.Allows(need) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "CAPABILITY_DENIED",
					Message: "la cuenta no tiene habilitado '" + string(need) + "'",
				})
			}
		}
		return c.Next()
	}
}

// Actor devuelve el acceso efectivo cargado por LoadAccess. Sin él, un acceso vacío (nada permitido).
func Actor(c *fiber.Ctx) access.Access {
	a, _ := c.Locals(LocalAccess).(access.Access)
	return a
}
