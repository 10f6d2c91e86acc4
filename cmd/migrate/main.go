package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/postgres/migrations"
	"github.com/christoferrrnewtech/dentpal-api/pkg/config"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, `uso: migrate <comando> [arg]

comandos:
  up           aplica todas las migraciones pendientes
  down         revierte todas las migraciones
  step <n>     avanza (n>0) o retrocede (n<0) n migraciones
  version      muestra la versión actual
  force <v>    marca la versión v sin ejecutar SQL (limpia el estado dirty)`)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "migrate"})

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("leer migraciones embebidas")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DB.MigrateURL())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer m.Close()

	if err := run(m, args); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("command", args[0]).Msg("sin cambios")
			return
		}
		log.Error().Err(err).Str("command", args[0]).Msg("migración fallida")
		m.Close()
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Error().Err(err).Msg("leer versión")
		os.Exit(1)
	}
	log.Info().Str("command", args[0]).Uint("version", version).Bool("dirty", dirty).Msg("migración completada")
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Force(v)
	case "version":
		return nil
	default:
		usage()
		return fmt.Errorf("comando desconocido %q", args[0])
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requiere un argumento numérico", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %q no es un número", args[0], args[1])
	}
	return n, nil
}
