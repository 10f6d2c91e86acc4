// Comando backfill-permissions: completa los flags faltantes de las cuentas primarias con los
// valores por defecto del rol. En las subcuentas los faltantes quedan en false y access/users se apagan.
//
// Variables: DRY_RUN=true no escribe; BACKFILL_BATCH_SIZE (1..500, por defecto 400).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/backfill"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/postgres"
	"github.com/christoferrrnewtech/dentpal-api/pkg/config"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "backfill-permissions"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	job := backfill.NewPermissionsJob(postgres.NewUserRepository(pool), postgres.NewTxRunner(pool))
	runner := backfill.NewRunner[*entity.User](job, backfill.Options{
		BatchSize: cfg.Backfill.BatchSize,
		DryRun:    cfg.Backfill.DryRun,
	}, log)

	stats, err := runner.Run(ctx)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int("scanned", stats.Scanned).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Int("batches", stats.Batches).
		Bool("dry_run", cfg.Backfill.DryRun).
		Msg("backfill permissions terminado")
	if err != nil {
		pool.Close()
		os.Exit(1)
	}
}
