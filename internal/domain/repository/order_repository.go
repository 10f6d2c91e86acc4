package repository

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

// RawDocument documento de pedido sin interpretar, tal como está almacenado.
// Base, si no es nil, es el documento leído sobre el que se calculó Data.
type RawDocument struct {
	ID   string
	Data map[string]any
	Base map[string]any
}

// OrderRepository puerto de persistencia de pedidos. Las lecturas pasan por el adaptador de
// esquema, de modo que el estado canónico siempre se recalcula.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListBySeller devuelve los pedidos del seller (sellerID vacío = todos), más recientes primero.
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error)
	// Save reemplaza el documento por la forma canónica del pedido.
	Save(ctx context.Context, order *entity.Order) error
	// Merge fusiona las claves de primer nivel de patch en el documento (set con merge).
	// Con base no nil solo aplica si el documento almacenado sigue igual a base; si otro proceso
	// lo modificó devuelve domain.ErrConflict.
	Merge(ctx context.Context, id string, base, patch map[string]any) error
	Delete(ctx context.Context, id string) error

	ScanDocuments(ctx context.Context, afterID string, limit int) ([]RawDocument, error)
	// ReplaceDocuments escribe Data; los documentos cuyo Base ya no coincide quedan sin tocar.
	ReplaceDocuments(ctx context.Context, docs []RawDocument) error
}
