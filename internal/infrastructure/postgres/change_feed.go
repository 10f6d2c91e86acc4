package postgres

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// ChangeChannel canal NOTIFY que alimentan los triggers notify_doc_change.
const ChangeChannel = "doc_changes"

var _ repository.ChangeFeed = (*ChangeFeed)(nil)

// ChangeFeed mantiene una conexión con LISTEN y reparte cada notificación a los suscriptores
// del documento afectado.
type ChangeFeed struct {
	pool *pgxpool.Pool
	log  *logger.Logger

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]*subscription
}

// NewChangeFeed construye el feed. Start debe llamarse para empezar a recibir notificaciones.
func NewChangeFeed(pool *pgxpool.Pool, log *logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		pool: pool,
		log:  log.Named("change_feed"),
		subs: make(map[string]map[int]*subscription),
	}
}

// Start escucha hasta que ctx se cancele, reconectando tras un error.
func (f *ChangeFeed) Start(ctx context.Context) {
	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		f.log.Error().Err(err).Msg("change feed desconectado, reintentando")
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (f *ChangeFeed) listen(ctx context.Context) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return err
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		f.dispatch(n.Payload)
	}
}

// dispatch recibe "<colección>:<id>".
func (f *ChangeFeed) dispatch(payload string) {
	collection, id, ok := strings.Cut(payload, ":")
	if !ok {
		return
	}
	f.Notify(collection, id)
}

// Notify avisa a los suscriptores de un documento. Nunca bloquea: si un suscriptor ya tiene
// un aviso pendiente, el nuevo se fusiona con él.
func (f *ChangeFeed) Notify(collection, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs[key(collection, id)] {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registra interés en un documento.
func (f *ChangeFeed) Subscribe(collection, id string) repository.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(collection, id)
	f.nextID++
	s := &subscription{feed: f, key: k, id: f.nextID, ch: make(chan struct{}, 1)}
	if f.subs[k] == nil {
		f.subs[k] = make(map[int]*subscription)
	}
	f.subs[k][s.id] = s
	return s
}

func (f *ChangeFeed) remove(s *subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group, ok := f.subs[s.key]
	if !ok {
		return
	}
	if _, ok := group[s.id]; !ok {
		return
	}
	delete(group, s.id)
	if len(group) == 0 {
		delete(f.subs, s.key)
	}
	close(s.ch)
}

// Subscribers número de suscripciones activas de un documento.
func (f *ChangeFeed) Subscribers(collection, id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[key(collection, id)])
}

func key(collection, id string) string { return collection + ":" + id }

type subscription struct {
	feed *ChangeFeed
	key  string
	id   int
	ch   chan struct{}
	once sync.Once
}

func (s *subscription) Changes() <-chan struct{} { return s.ch }

// Cancel es idempotente.
func (s *subscription) Cancel() {
	s.once.Do(func() { s.feed.remove(s) })
}
