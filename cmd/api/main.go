package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/auth"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/functions"
	infrapdf "github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/pdf"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/postgres"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/report"
	httpRouter "github.com/christoferrrnewtech/dentpal-api/internal/interfaces/http"
	"github.com/christoferrrnewtech/dentpal-api/pkg/config"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	sellerRepo := postgres.NewSellerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	withdrawalRepo := postgres.NewWithdrawalRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warrantyRepo := postgres.NewWarrantyRuleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// LISTEN doc_changes: alimenta el stream de permisos
	feed := postgres.NewChangeFeed(pool, log)
	go feed.Start(ctx)

	// Servicios externos
	fnClient := functions.NewClient(functions.Config{
		BaseURL: cfg.Functions.BaseURL,
		Token:   cfg.Functions.Token,
		Timeout: cfg.Functions.Timeout,
	}, log)
	if cfg.Functions.BaseURL == "" {
		log.Warn().Msg("FUNCTIONS_BASE_URL vacío: pagos, payouts y guías fallarán")
	}
	statementPDF := infrapdf.NewStatementGenerator()
	ordersXLSX := report.NewOrdersXLSX()

	// Casos de uso
	resolver := access.NewResolver(userRepo)
	watcher := access.NewWatcher(resolver, feed, log)
	authUC := auth.NewAuthUseCase(userRepo, resolver, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	sellerUC := usecase.NewSellerUseCase(sellerRepo, txRunner, fnClient)
	orderUC := usecase.NewOrderUseCase(orderRepo, fnClient, ordersXLSX)
	withdrawalUC := usecase.NewWithdrawalUseCase(withdrawalRepo, sellerRepo, fnClient, statementPDF)
	policyUC := usecase.NewPolicyUseCase(policyRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warrantyUC := usecase.NewWarrantyUseCase(warrantyRepo, categoryRepo)

	// Sin WriteTimeout: /api/me/access/stream mantiene la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Context:      ctx,
		AuthUC:       authUC,
		Resolver:     resolver,
		Watcher:      watcher,
		UserUC:       userUC,
		SellerUC:     sellerUC,
		OrderUC:      orderUC,
		WithdrawalUC: withdrawalUC,
		PolicyUC:     policyUC,
		CategoryUC:   categoryUC,
		WarrantyUC:   warrantyUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
