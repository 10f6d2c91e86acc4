package backfill

import (
	"context"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderschema"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// OrderTxRunner transacción sobre el repositorio de pedidos.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// UserTxRunner transacción sobre el repositorio de usuarios.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error
}

// OrdersJob reescribe cada pedido en el esquema canónico.
type OrdersJob struct {
	orders repository.OrderRepository
	tx     OrderTxRunner
}

func NewOrdersJob(orders repository.OrderRepository, tx OrderTxRunner) *OrdersJob {
	return &OrdersJob{orders: orders, tx: tx}
}

func (j *OrdersJob) Name() string { return "orders" }

func (j *OrdersJob) ID(d repository.RawDocument) string { return d.ID }

func (j *OrdersJob) Scan(ctx context.Context, afterID string, limit int) ([]repository.RawDocument, error) {
	return j.orders.ScanDocuments(ctx, afterID, limit)
}

func (j *OrdersJob) Transform(d repository.RawDocument) (repository.RawDocument, bool, error) {
	out, changed, err := orderschema.Canonicalize(d.ID, d.Data)
	if err != nil {
		return d, false, err
	}
	return repository.RawDocument{ID: d.ID, Data: out, Base: d.Data}, changed, nil
}

func (j *OrdersJob) Commit(ctx context.Context, docs []repository.RawDocument) error {
	return j.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		return orders.ReplaceDocuments(ctx, docs)
	})
}

// PermissionsJob completa los mapas de permisos almacenados sin cambiar los permisos efectivos
// de la propia cuenta: a una cuenta primaria se le escriben los valores por defecto del rol; a
// una subcuenta, false en las claves que faltan y en las capacidades de gestión de cuentas.
// Las subcuentas sí pueden ganar capacidades si su padre tenía claves sin almacenar.
type PermissionsJob struct {
	users repository.UserRepository
	tx    UserTxRunner
}

func NewPermissionsJob(users repository.UserRepository, tx UserTxRunner) *PermissionsJob {
	return &PermissionsJob{users: users, tx: tx}
}

func (j *PermissionsJob) Name() string { return "permissions" }

func (j *PermissionsJob) ID(u *entity.User) string { return u.ID }

func (j *PermissionsJob) Scan(ctx context.Context, afterID string, limit int) ([]*entity.User, error) {
	return j.users.ScanAfter(ctx, afterID, limit)
}

func (j *PermissionsJob) Transform(u *entity.User) (*entity.User, bool, error) {
	var filled permission.Map
	if u.IsSubAccount {
		filled = permission.ForSubAccount(u.Permissions)
		for _, c := range permission.All() {
			if _, ok := filled[c]; !ok {
				filled[c] = false
			}
		}
	} else {
		filled, _ = permission.FillDefaults(u.Role, u.Permissions)
	}
	if sameFlags(u.Permissions, filled) {
		return u, false, nil
	}
	out := *u
	out.Permissions = filled
	return &out, true, nil
}

func (j *PermissionsJob) Commit(ctx context.Context, users []*entity.User) error {
	return j.tx.RunUsers(ctx, func(repo repository.UserRepository) error {
		for _, u := range users {
			if err := repo.UpdatePermissions(ctx, u.ID, u.Permissions); err != nil {
				return err
			}
		}
		return nil
	})
}

// sameFlags compara claves y valores (una clave ausente no equivale a false).
func sameFlags(a, b permission.Map) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
