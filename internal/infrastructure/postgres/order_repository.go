package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderschema"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo almacena pedidos como documentos JSONB. Toda lectura pasa por orderschema.Decode.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene un pedido. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var (
		doc                  map[string]any
		createdAt, updatedAt time.Time
	)
	err := r.q.QueryRow(ctx, `SELECT doc, created_at, updated_at FROM orders WHERE id = $1`, id).
		Scan(&doc, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return decodeOrder(id, doc, createdAt, updatedAt)
}

// ListBySeller lista pedidos del seller (vacío = todos) del más reciente al más antiguo.
func (r *OrderRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, doc, created_at, updated_at FROM orders
		WHERE ($1 = '' OR seller_id = $1)
		ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var (
			id                   string
			doc                  map[string]any
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o, err := decodeOrder(id, doc, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Save escribe el pedido en forma canónica (upsert), conservando las claves del documento leído.
func (r *OrderRepo) Save(ctx context.Context, o *entity.Order) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	o.SchemaVersion = orderschema.CurrentVersion
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, seller_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET seller_id = EXCLUDED.seller_id, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		o.ID, o.SellerID, orderschema.Document(o), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// Merge fusiona las claves de primer nivel (operador || de JSONB). Con base, la condición
// doc = base hace de compare-and-swap sobre el documento leído.
func (r *OrderRepo) Merge(ctx context.Context, id string, base, patch map[string]any) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if base == nil {
		tag, err = r.q.Exec(ctx,
			`UPDATE orders SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1`, id, patch)
	} else {
		tag, err = r.q.Exec(ctx,
			`UPDATE orders SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1 AND doc = $3::jsonb`,
			id, patch, base)
	}
	if err != nil {
		return fmt.Errorf("merge order: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("merge order: %w", err)
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

// Delete elimina un pedido.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ScanDocuments recorre documentos crudos por ID ascendente (backfill).
func (r *OrderRepo) ScanDocuments(ctx context.Context, afterID string, limit int) ([]repository.RawDocument, error) {
	rows, err := r.q.Query(ctx, `SELECT id, doc FROM orders WHERE id > $1 ORDER BY id LIMIT $2`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	defer rows.Close()
	var out []repository.RawDocument
	for rows.Next() {
		var d repository.RawDocument
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scan order document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ReplaceDocuments reemplaza documentos completos; pensado para ejecutarse dentro de una tx
// (ver TxRunner.RunOrders) y con pgx.Batch para un solo viaje de red. Un documento con Base que
// cambió desde la lectura no se toca; la siguiente corrida lo vuelve a procesar.
func (r *OrderRepo) ReplaceDocuments(ctx context.Context, docs []repository.RawDocument) error {
	if len(docs) == 0 {
		return nil
	}
	sender, ok := r.q.(batchSender)
	if !ok {
		return fmt.Errorf("replace orders: el querier no soporta batch")
	}
	batch := &pgx.Batch{}
	for _, d := range docs {
		o, err := orderschema.Decode(d.ID, d.Data)
		if err != nil {
			return err
		}
		if d.Base == nil {
			batch.Queue(`UPDATE orders SET doc = $2, seller_id = $3, updated_at = now() WHERE id = $1`,
				d.ID, d.Data, o.SellerID)
			continue
		}
		batch.Queue(`UPDATE orders SET doc = $2, seller_id = $3, updated_at = now() WHERE id = $1 AND doc = $4::jsonb`,
			d.ID, d.Data, o.SellerID, d.Base)
	}
	br := sender.SendBatch(ctx, batch)
	defer br.Close()
	for _, d := range docs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("replace order %s: %w", d.ID, err)
		}
	}
	return nil
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// decodeOrder interpreta el documento; las columnas de fecha completan lo que el documento no traiga.
func decodeOrder(id string, doc map[string]any, createdAt, updatedAt time.Time) (*entity.Order, error) {
	o, err := orderschema.Decode(id, doc)
	if err != nil {
		return nil, err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = createdAt
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = updatedAt
	}
	return o, nil
}
