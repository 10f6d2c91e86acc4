package usecase_test

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/orderschema"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

var (
	adminActor  = access.Access{UserID: "admin-1", Role: entity.RoleAdmin, Active: true}
	sellerActor = access.Access{UserID: "seller-user-1", SellerID: "s-1", Role: entity.RoleSeller, Active: true}
	otherSeller = access.Access{UserID: "seller-user-2", SellerID: "s-2", Role: entity.RoleSeller, Active: true}
)

// fakeOrders guarda documentos crudos como el adaptador real y decodifica en cada lectura.
type fakeOrders struct {
	repository.OrderRepository
	mu     sync.Mutex
	docs   map[string]map[string]any
	merges []map[string]any
	// beforeMerge corre una vez antes del siguiente Merge (simula una escritura concurrente).
	beforeMerge func()
}

func newFakeOrders() *fakeOrders { return &fakeOrders{docs: map[string]map[string]any{}} }

func (f *fakeOrders) put(id string, doc map[string]any) { f.docs[id] = doc }

func (f *fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	return orderschema.Decode(id, doc)
}

func (f *fakeOrders) ListBySeller(_ context.Context, sellerID string) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Order
	for _, id := range ids {
		o, err := orderschema.Decode(id, f.docs[id])
		if err != nil {
			return nil, err
		}
		if sellerID == "" || o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Merge reemplaza el documento por una copia fusionada, como la DB: los pedidos ya leídos
// conservan el documento anterior en Document.
func (f *fakeOrders) Merge(_ context.Context, id string, base, patch map[string]any) error {
	if f.beforeMerge != nil {
		hook := f.beforeMerge
		f.beforeMerge = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if base != nil && !reflect.DeepEqual(base, doc) {
		return domain.ErrConflict
	}
	next := make(map[string]any, len(doc)+len(patch))
	for k, v := range doc {
		next[k] = v
	}
	for k, v := range patch {
		next[k] = v
	}
	f.docs[id] = next
	f.merges = append(f.merges, patch)
	return nil
}

// rejectedErr respuesta no-2xx de una función, como la que devuelve el cliente real.
type rejectedErr struct{ msg string }

func (e rejectedErr) Error() string        { return e.msg }
func (e rejectedErr) Is(target error) bool { return target == ports.ErrFunctionRejected }

type fakeFunctions struct {
	payout    *ports.PayoutResult
	payoutErr error
	onPayout  func()
	label     *ports.ShippingLabelResult
	partner   *ports.PartnerAccountResult
	payment   *ports.PaymentLookupResult
	calls     []string
}

func (f *fakeFunctions) LookupPaymentTransaction(_ context.Context, in ports.PaymentLookupInput) (*ports.PaymentLookupResult, error) {
	f.calls = append(f.calls, "lookupPaymentTransaction:"+in.OrderID)
	return f.payment, nil
}

func (f *fakeFunctions) ProcessPayout(_ context.Context, in ports.PayoutInput) (*ports.PayoutResult, error) {
	f.calls = append(f.calls, "processPayout:"+in.WithdrawalID)
	if f.onPayout != nil {
		f.onPayout()
	}
	return f.payout, f.payoutErr
}

func (f *fakeFunctions) CreateShippingLabel(_ context.Context, in ports.ShippingLabelInput) (*ports.ShippingLabelResult, error) {
	f.calls = append(f.calls, "createShippingLabel:"+in.OrderID)
	return f.label, nil
}

func (f *fakeFunctions) ProvisionPartnerAccount(_ context.Context, in ports.PartnerAccountInput) (*ports.PartnerAccountResult, error) {
	f.calls = append(f.calls, "provisionPartnerAccount:"+in.SellerID)
	return f.partner, nil
}

// fakeWithdrawals aplica Transition con la misma semántica condicional que la DB.
type fakeWithdrawals struct {
	repository.WithdrawalRepository
	mu   sync.Mutex
	rows map[string]*entity.Withdrawal
}

func newFakeWithdrawals(ws ...*entity.Withdrawal) *fakeWithdrawals {
	f := &fakeWithdrawals{rows: map[string]*entity.Withdrawal{}}
	for _, w := range ws {
		f.rows[w.ID] = w
	}
	return f
}

func (f *fakeWithdrawals) Create(_ context.Context, w *entity.Withdrawal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *w
	f.rows[w.ID] = &cp
	return nil
}

func (f *fakeWithdrawals) GetByID(_ context.Context, id string) (*entity.Withdrawal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWithdrawals) Transition(ctx context.Context, id, from, to string, patch entity.WithdrawalPatch) (*entity.Withdrawal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if w.Status != from {
		return nil, domain.ErrStatusMismatch
	}
	w.Status = to
	if patch.PayoutRef != "" {
		w.PayoutRef = patch.PayoutRef
	}
	if patch.FailureReason != "" {
		w.FailureReason = patch.FailureReason
	}
	if patch.ReviewedBy != "" {
		w.ReviewedBy = patch.ReviewedBy
	}
	cp := *w
	return &cp, nil
}

type fakeUsers struct {
	repository.UserRepository
	users map[string]*entity.User
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdatePermissions(_ context.Context, id string, perms permission.Map) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Permissions = perms
	return nil
}

func (f *fakeUsers) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if filter.ParentID != "" && u.ParentID != filter.ParentID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}
