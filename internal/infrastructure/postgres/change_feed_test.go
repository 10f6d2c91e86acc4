package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	"github.com/christoferrrnewtech/dentpal-api/internal/infrastructure/postgres"
	"github.com/christoferrrnewtech/dentpal-api/pkg/logger"
)

func TestChangeFeed_NotificaSoloAlDocumento(t *testing.T) {
	feed := postgres.NewChangeFeed(nil, logger.Nop())
	a := feed.Subscribe(repository.CollectionUsers, "u1")
	b := feed.Subscribe(repository.CollectionUsers, "u2")
	defer a.Cancel()
	defer b.Cancel()

	feed.Notify(repository.CollectionUsers, "u1")

	select {
	case <-a.Changes():
	default:
		t.Fatal("u1 debía recibir aviso")
	}
	select {
	case <-b.Changes():
		t.Fatal("u2 no debía recibir aviso")
	default:
	}
}

func TestChangeFeed_AvisosSeFusionanSinBloquear(t *testing.T) {
	feed := postgres.NewChangeFeed(nil, logger.Nop())
	s := feed.Subscribe(repository.CollectionOrders, "o1")
	defer s.Cancel()

	for i := 0; i < 10; i++ {
		feed.Notify(repository.CollectionOrders, "o1")
	}
	<-s.Changes()
	select {
	case <-s.Changes():
		t.Fatal("solo debía quedar un aviso pendiente")
	default:
	}
}

func TestChangeFeed_CancelCierraYLibera(t *testing.T) {
	feed := postgres.NewChangeFeed(nil, logger.Nop())
	s := feed.Subscribe(repository.CollectionSellers, "s1")
	require.Equal(t, 1, feed.Subscribers(repository.CollectionSellers, "s1"))

	s.Cancel()
	s.Cancel()

	_, open := <-s.Changes()
	assert.False(t, open)
	assert.Equal(t, 0, feed.Subscribers(repository.CollectionSellers, "s1"))
	feed.Notify(repository.CollectionSellers, "s1")
}
