package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	apphttp "github.com/christoferrrnewtech/dentpal-api/internal/interfaces/http"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

type fakeUsers struct {
	repository.UserRepository
	users map[string]*entity.User
	err   error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func usersWith(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func sellerUser(active bool, perms permission.Map) *entity.User {
	return &entity.User{ID: testUserID, Role: entity.RoleSeller, SellerID: testSellerID, Active: active, Permissions: perms}
}

// buildAccessApp AuthMiddleware + LoadAccess + RequireCapability(caps...).
func buildAccessApp(users *fakeUsers, caps ...permission.Capability) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.LoadAccess(access.NewResolver(users)),
		apphttp.RequireCapability(caps...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"seller_id": apphttp.Actor(c).SellerID})
		},
	)
	return app
}

func TestRequireCapability_ConcedidaPorDefectoDelRol(t *testing.T) {
	app := buildAccessApp(usersWith(sellerUser(true, nil)), permission.Bookings, permission.Withdrawal)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSellerID, body["seller_id"])
}

func TestRequireCapability_FlagApagadoRetorna403(t *testing.T) {
	app := buildAccessApp(usersWith(sellerUser(true, permission.Map{permission.Reports: false})), permission.Reports)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "CAPABILITY_DENIED")
	assert.Contains(t, string(body), "reports")
}

func TestRequireCapability_SubcuentaNuncaGestionaUsuarios(t *testing.T) {
	parent := &entity.User{ID: "parent", Role: entity.RoleSeller, Active: true,
		Permissions: permission.Map{permission.Users: true, permission.Access: true}}
	sub := &entity.User{ID: testUserID, Role: entity.RoleSeller, Active: true, IsSubAccount: true, ParentID: "parent",
		Permissions: permission.Map{permission.Users: true, permission.Access: true}}
	app := buildAccessApp(usersWith(parent, sub), permission.Users)

	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoadAccess_CuentaInactivaRetorna403(t *testing.T) {
	app := buildAccessApp(usersWith(sellerUser(false, nil)), permission.Dashboard)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INACTIVE_ACCOUNT")
}

func TestLoadAccess_CuentaEliminadaRetorna401(t *testing.T) {
	app := buildAccessApp(usersWith(), permission.Dashboard)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoadAccess_FalloDeDBRetorna503(t *testing.T) {
	users := usersWith()
	users.err = errors.New("conexión rechazada")
	app := buildAccessApp(users, permission.Dashboard)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "seller"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// closedFeed entrega suscripciones ya cerradas: el watcher emite el estado inicial y termina.
type closedFeed struct{}

type closedSub struct {
	ch   chan struct{}
	once sync.Once
}

func (s *closedSub) Changes() <-chan struct{} { return s.ch }
func (s *closedSub) Cancel()                  {}

func (closedFeed) Subscribe(_, _ string) repository.Subscription {
	s := &closedSub{ch: make(chan struct{})}
	s.once.Do(func() { close(s.ch) })
	return s
}

func TestAccessStream_EmiteEstadoInicial(t *testing.T) {
	users := usersWith(sellerUser(true, permission.Map{permission.Reports: false}))
	resolver := access.NewResolver(users)
	watcher := access.NewWatcher(resolver, closedFeed{}, logger.Nop())
	h := apphttp.NewAccessHandler(context.Background(), watcher, logger.Nop())

	app := fiber.New()
	app.Get("/me/access/stream", apphttp.AuthMiddleware(testJWTSecret), apphttp.LoadAccess(resolver), h.Stream)
	app.Get("/me/access", apphttp.AuthMiddleware(testJWTSecret), apphttp.LoadAccess(resolver), h.Me)

	resp := doRequest(t, app, "/me/access/stream", tokenForRole(t, "seller"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	require.True(t, strings.HasPrefix(body, "event: access\ndata: "), body)

	payload := strings.TrimSpace(strings.TrimPrefix(body, "event: access\ndata: "))
	var got struct {
		UserID      string          `json:"user_id"`
		Permissions map[string]bool `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	assert.Equal(t, testUserID, got.UserID)
	assert.False(t, got.Permissions["reports"])
	assert.True(t, got.Permissions["bookings"])

	me := doRequest(t, app, "/me/access", tokenForRole(t, "seller"))
	defer me.Body.Close()
	assert.Equal(t, http.StatusOK, me.StatusCode)
}
