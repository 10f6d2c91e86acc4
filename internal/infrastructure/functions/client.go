// Package functions cliente HTTP de las funciones serverless (pagos, payouts, guías, socios).
package functions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// Nombres de las funciones publicadas.
const (
	FnLookupPayment    = "lookupPaymentTransaction"
	FnProcessPayout    = "processPayout"
	FnShippingLabel    = "createShippingLabel"
	FnProvisionPartner = "provisionPartnerAccount"
)

const defaultTimeout = 20 * time.Second

var _ ports.FunctionsClient = (*Client)(nil)

// Error respuesta no-2xx de una función.
type Error struct {
	Function   string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("functions: %s respondió %d: %s", e.Function, e.StatusCode, e.Message)
}

// Is permite errors.Is(err, ports.ErrFunctionRejected).
func (e *Error) Is(target error) bool {
	return target == ports.ErrFunctionRejected
}

// errorBody formatos de error que devuelven las funciones.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Config parámetros de conexión.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implementa ports.FunctionsClient sobre resty. No reintenta: un payout duplicado cobra dos veces.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient crea el cliente con token Bearer y timeout por llamada.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}
	return &Client{http: c, log: log.Named("functions")}
}

func (c *Client) LookupPaymentTransaction(ctx context.Context, in ports.PaymentLookupInput) (*ports.PaymentLookupResult, error) {
	var out ports.PaymentLookupResult
	if err := c.call(ctx, FnLookupPayment, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProcessPayout(ctx context.Context, in ports.PayoutInput) (*ports.PayoutResult, error) {
	var out ports.PayoutResult
	if err := c.call(ctx, FnProcessPayout, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateShippingLabel(ctx context.Context, in ports.ShippingLabelInput) (*ports.ShippingLabelResult, error) {
	var out ports.ShippingLabelResult
	if err := c.call(ctx, FnShippingLabel, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProvisionPartnerAccount(ctx context.Context, in ports.PartnerAccountInput) (*ports.PartnerAccountResult, error) {
	var out ports.PartnerAccountResult
	if err := c.call(ctx, FnProvisionPartner, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call hace POST <BaseURL>/<name> con el cuerpo JSON y decodifica la respuesta en out.
func (c *Client) call(ctx context.Context, name string, body, out any) error {
	var fail errorBody
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&fail).
		Post("/" + name)
	if err != nil {
		c.log.Error().Err(err).Str("function", name).Msg("llamada a función fallida")
		return fmt.Errorf("functions: %s: %w: %w", name, ports.ErrFunctionUnavailable, err)
	}

	c.log.Debug().
		Str("function", name).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("función invocada")

	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		msg := fail.Error
		if msg == "" {
			msg = fail.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &Error{Function: name, StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
