package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/functions"
)

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRespondError_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("withdrawal: %w", domain.ErrStatusMismatch), http.StatusConflict, "STATUS_MISMATCH"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrInactiveAccount, http.StatusForbidden, "INACTIVE_ACCOUNT"},
		{fmt.Errorf("payout: %w", &functions.Error{Function: "processPayout", StatusCode: 500, Message: "boom"}), http.StatusBadGateway, "FUNCTION_FAILED"},
		{fmt.Errorf("payout: %w: %w", ports.ErrFunctionUnavailable, context.DeadlineExceeded), http.StatusBadGateway, "FUNCTION_UNAVAILABLE"},
		{fmt.Errorf("inesperado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestParseBody_DetallePorCampoConNombreJSON(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.CreateSubAccountRequest
		if !parseBody(c, &in) {
			return nil
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"no-es-email","password":"corta"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", out.Code)

	fields := map[string]string{}
	for _, d := range out.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "debe ser un email válido", fields["email"])
	assert.Equal(t, "mínimo 8", fields["password"])
	assert.Equal(t, "es requerido", fields["name"])
}

func TestParseBody_JSONMalformado(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.LoginRequest
		if !parseBody(c, &in) {
			return nil
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestParseQuery_EstadoDesconocido(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		var in dto.OrderListRequest
		if !parseQuery(c, &in) {
			return nil
		}
		return c.JSON(in)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?status=shipped", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, resp)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "status", out.Details[0].Field)
}
