// Package backfill recorre una colección por lotes, transforma cada registro y confirma los
// cambios lote a lote. Un registro que falla se cuenta y se omite; un fallo de lectura o de
// commit aborta la ejecución.
package backfill

import (
	"context"
	"fmt"

	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// Job una migración concreta sobre registros de tipo T.
type Job[T any] interface {
	Name() string
	// Scan devuelve hasta limit registros con ID mayor que afterID, en orden de ID.
	Scan(ctx context.Context, afterID string, limit int) ([]T, error)
	ID(item T) string
	// Transform devuelve el registro migrado y si cambió.
	Transform(item T) (T, bool, error)
	Commit(ctx context.Context, items []T) error
}

// Options configuración de la ejecución.
type Options struct {
	BatchSize int
	DryRun    bool
}

// Stats contadores de una ejecución.
type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Failed  int
	Batches int
}

// Runner ejecuta un Job.
type Runner[T any] struct {
	job  Job[T]
	opts Options
	log  *logger.Logger
}

// NewRunner construye el runner. BatchSize debe venir ya validado (config.MaxBatchSize).
func NewRunner[T any](job Job[T], opts Options, log *logger.Logger) *Runner[T] {
	return &Runner[T]{job: job, opts: opts, log: log.Named("backfill." + job.Name())}
}

// Run procesa la colección completa. En DryRun no se llama a Commit; Updated cuenta lo que
// se habría escrito.
func (r *Runner[T]) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	if r.opts.BatchSize <= 0 {
		return stats, fmt.Errorf("backfill %s: batch size inválido %d", r.job.Name(), r.opts.BatchSize)
	}
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		items, err := r.job.Scan(ctx, cursor, r.opts.BatchSize)
		if err != nil {
			return stats, fmt.Errorf("backfill %s: scan after %q: %w", r.job.Name(), cursor, err)
		}
		if len(items) == 0 {
			break
		}

		pending := make([]T, 0, len(items))
		for _, item := range items {
			stats.Scanned++
			out, changed, err := r.job.Transform(item)
			if err != nil {
				stats.Failed++
				r.log.Warn().Err(err).Str("id", r.job.ID(item)).Msg("registro omitido")
				continue
			}
			if !changed {
				stats.Skipped++
				continue
			}
			pending = append(pending, out)
		}

		if len(pending) > 0 {
			if !r.opts.DryRun {
				if err := r.job.Commit(ctx, pending); err != nil {
					return stats, fmt.Errorf("backfill %s: commit: %w", r.job.Name(), err)
				}
			}
			stats.Updated += len(pending)
		}
		stats.Batches++
		cursor = r.job.ID(items[len(items)-1])
		r.log.Info().
			Int("batch", stats.Batches).
			Int("scanned", stats.Scanned).
			Int("updated", stats.Updated).
			Bool("dry_run", r.opts.DryRun).
			Msg("lote procesado")

		if len(items) < r.opts.BatchSize {
			break
		}
	}
	return stats, nil
}
