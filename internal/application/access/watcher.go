package access

import (
	"context"
	"sync"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

// Watcher vuelve a calcular los permisos de una cuenta cuando cambia su documento o el de su padre.
type Watcher struct {
	resolver *Resolver
	feed     repository.ChangeFeed
	log      *logger.Logger
}

// NewWatcher construye el watcher.
func NewWatcher(resolver *Resolver, feed repository.ChangeFeed, log *logger.Logger) *Watcher {
	return &Watcher{resolver: resolver, feed: feed, log: log.Named("access_watcher")}
}

// Stream entrega el estado inicial y cada cambio posterior. Updates se cierra tras Cancel
// o cuando el contexto del Watch termina.
type Stream struct {
	updates chan Access
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Updates canal de permisos efectivos.
func (s *Stream) Updates() <-chan Access { return s.updates }

// Cancel detiene el stream y libera las suscripciones. Es idempotente y espera a que termine.
func (s *Stream) Cancel() {
	s.once.Do(s.cancel)
	<-s.done
}

// Watch resuelve el estado inicial y arranca la escucha. El primer valor de Updates es el inicial.
func (w *Watcher) Watch(ctx context.Context, userID string) (*Stream, error) {
	current, err := w.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		updates: make(chan Access, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.updates <- current
	go w.loop(ctx, s, current)
	return s, nil
}

func (w *Watcher) loop(ctx context.Context, s *Stream, current Access) {
	defer close(s.done)
	defer close(s.updates)

	self := w.feed.Subscribe(repository.CollectionUsers, current.UserID)
	defer self.Cancel()

	var parent repository.Subscription
	subscribeParent := func(parentID string) {
		if parent != nil {
			parent.Cancel()
			parent = nil
		}
		if parentID != "" {
			parent = w.feed.Subscribe(repository.CollectionUsers, parentID)
		}
	}
	subscribeParent(current.ParentID)
	defer func() {
		if parent != nil {
			parent.Cancel()
		}
	}()

	for {
		var parentChanges <-chan struct{}
		if parent != nil {
			parentChanges = parent.Changes()
		}
		select {
		case <-ctx.Done():
			return
		case _, ok := <-self.Changes():
			if !ok {
				return
			}
		case _, ok := <-parentChanges:
			if !ok {
				return
			}
		}

		next, err := w.resolver.Resolve(ctx, current.UserID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Cuenta eliminada o ilegible: se emite el estado sin permisos y se sigue escuchando.
			w.log.Warn().Err(err).Str("user_id", current.UserID).Msg("no se pudo recalcular el acceso")
			next = Access{UserID: current.UserID, Role: current.Role, SubAccount: current.SubAccount}
		}
		if next.ParentID != current.ParentID {
			subscribeParent(next.ParentID)
		}
		if next.Equal(current) {
			continue
		}
		current = next
		select {
		case s.updates <- next:
		case <-ctx.Done():
			return
		}
	}
}
