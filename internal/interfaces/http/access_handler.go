package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

const heartbeatInterval = 20 * time.Second

// accessWatcher lo implementa *access.Watcher.
type accessWatcher interface {
	Watch(ctx context.Context, userID string) (*access.Stream, error)
}

// AccessHandler expone los permisos efectivos de la sesión.
type AccessHandler struct {
	base    context.Context // al cancelarse se cierran los streams abiertos
	watcher accessWatcher
	log     *logger.Logger
}

// NewAccessHandler construye el handler.
func NewAccessHandler(base context.Context, watcher accessWatcher, log *logger.Logger) *AccessHandler {
	return &AccessHandler{base: base, watcher: watcher, log: log.Named("access_stream")}
}

// Me GET /api/me/access.
func (h *AccessHandler) Me(c *fiber.Ctx) error {
	return c.JSON(Actor(c).ToResponse())
}

// Stream GET /api/me/access/stream: server-sent events con el acceso inicial y cada cambio.
// El stream termina cuando el cliente se desconecta o al apagar el servidor.
func (h *AccessHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)
	ctx, cancel := context.WithCancel(h.base)
	stream, err := h.watcher.Watch(ctx, userID)
	if err != nil {
		cancel()
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	log := h.log
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stream.Cancel()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case a, ok := <-stream.Updates():
				if !ok {
					return
				}
				if err := writeEvent(w, "access", a.ToResponse()); err != nil {
					log.Debug().Err(err).Str("user_id", userID).Msg("cliente desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}
