package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/auth"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Context      context.Context // vida del servidor; corta los streams SSE al apagar
	AuthUC       *auth.AuthUseCase
	Resolver     *access.Resolver
	Watcher      *access.Watcher
	UserUC       *usecase.UserUseCase
	SellerUC     *usecase.SellerUseCase
	OrderUC      *usecase.OrderUseCase
	WithdrawalUC *usecase.WithdrawalUseCase
	PolicyUC     *usecase.PolicyUseCase
	CategoryUC   *usecase.CategoryUseCase
	WarrantyUC   *usecase.WarrantyUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas: JWT + permisos efectivos recalculados en cada petición
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), LoadAccess(deps.Resolver))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Sesión
	accessHandler := NewAccessHandler(deps.Context, deps.Watcher, deps.Log)
	protected.Get("/me/access", accessHandler.Me)
	protected.Get("/me/access/stream", accessHandler.Stream)

	// Usuarios y subcuentas
	users := protected.Group("/users", RequireCapability(permission.Users))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.CreateSubAccount)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id/permissions", RequireCapability(permission.Access), userHandler.UpdatePermissions)
	users.Patch("/:id/active", userHandler.SetActive)
	users.Delete("/:id", userHandler.Delete)

	// Sellers
	sellers := protected.Group("/sellers", RequireCapability(permission.Dashboard))
	sellerHandler := NewSellerHandler(deps.SellerUC)
	sellers.Get("/", sellerHandler.List)
	sellers.Post("/", adminOnly, sellerHandler.Create)
	sellers.Get("/:id", sellerHandler.Get)
	sellers.Put("/:id", sellerHandler.Update)
	sellers.Patch("/:id/verification", adminOnly, sellerHandler.SetVerification)
	sellers.Post("/:id/partner-account", adminOnly, sellerHandler.ProvisionPartner)

	// Pedidos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", RequireCapability(permission.Bookings), orderHandler.List)
	orders.Get("/summary", RequireCapability(permission.Dashboard), orderHandler.Summary)
	orders.Get("/export", RequireCapability(permission.Reports), orderHandler.Export)
	orders.Get("/:id", RequireCapability(permission.Bookings), orderHandler.Get)
	orders.Get("/:id/payment", RequireCapability(permission.Bookings), orderHandler.Payment)
	orders.Post("/:id/confirm", RequireCapability(permission.Confirmation), orderHandler.Confirm)
	orders.Post("/:id/cancel", RequireCapability(permission.Confirmation), orderHandler.Cancel)
	orders.Post("/:id/shipping-label", RequireCapability(permission.Confirmation), orderHandler.ShippingLabel)

	// Retiros
	withdrawals := protected.Group("/withdrawals", RequireCapability(permission.Withdrawal))
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalUC)
	withdrawals.Post("/", RequireRole(entity.RoleSeller), withdrawalHandler.Request)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Get("/:id", withdrawalHandler.Get)
	withdrawals.Get("/:id/statement", withdrawalHandler.Statement)
	withdrawals.Post("/:id/approve", adminOnly, withdrawalHandler.Approve)
	withdrawals.Post("/:id/process", adminOnly, withdrawalHandler.Process)
	withdrawals.Post("/:id/complete", adminOnly, withdrawalHandler.Complete)
	withdrawals.Post("/:id/fail", adminOnly, withdrawalHandler.Fail)

	// Catálogo: lectura para cualquier sesión, escritura según capacidad
	catalog := NewCatalogHandler(deps.PolicyUC, deps.CategoryUC, deps.WarrantyUC)

	policies := protected.Group("/policies")
	canPolicies := RequireCapability(permission.Policies)
	policies.Get("/", catalog.ListPolicies)
	policies.Get("/:id", catalog.GetPolicy)
	policies.Post("/", canPolicies, catalog.CreatePolicy)
	policies.Put("/:id", canPolicies, catalog.UpsertPolicy)
	policies.Patch("/:id/publish", canPolicies, catalog.PublishPolicy)
	policies.Delete("/:id", canPolicies, catalog.DeletePolicy)

	categories := protected.Group("/categories")
	canCategories := RequireCapability(permission.Categories)
	categories.Get("/", catalog.ListCategories)
	categories.Post("/", canCategories, catalog.CreateCategory)
	categories.Put("/:id", canCategories, catalog.UpdateCategory)
	categories.Delete("/:id", canCategories, catalog.DeleteCategory)

	warranty := protected.Group("/warranty-rules")
	canWarranty := RequireCapability(permission.Warranty)
	warranty.Get("/", catalog.ListWarrantyRules)
	warranty.Post("/", canWarranty, catalog.CreateWarrantyRule)
	warranty.Put("/:id", canWarranty, catalog.UpdateWarrantyRule)
	warranty.Delete("/:id", canWarranty, catalog.DeleteWarrantyRule)
}
