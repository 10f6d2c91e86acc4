package repository

// Colecciones que emiten notificaciones de cambio.
const (
	CollectionUsers       = "users"
	CollectionSellers     = "sellers"
	CollectionOrders      = "orders"
	CollectionWithdrawals = "withdrawals"
)

// Subscription suscripción a los cambios de un documento. El consumidor debe llamar a Cancel
// al terminar; Changes se cierra después de Cancel.
type Subscription interface {
	Changes() <-chan struct{}
	Cancel()
}

// ChangeFeed entrega notificaciones cuando cambia un documento concreto.
type ChangeFeed interface {
	Subscribe(collection, id string) Subscription
}
