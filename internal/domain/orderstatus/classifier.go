// Package orderstatus reconcilia las señales de estado de un pedido (envío, pago y estado
// principal) en un único estado canónico para visualización y filtrado.
package orderstatus

import "strings"

// Canonical estado normalizado del ciclo de vida de un pedido.
type Canonical string

// Estados canónicos.
const (
	Completed      Canonical = "completed"
	FailedDelivery Canonical = "failed-delivery"
	Processing     Canonical = "processing"
	ToShip         Canonical = "to-ship"
	Cancelled      Canonical = "cancelled"
	Pending        Canonical = "pending"
)

// All devuelve los estados canónicos en orden de precedencia.
func All() []Canonical {
	return []Canonical{Completed, FailedDelivery, Processing, ToShip, Cancelled, Pending}
}

// Parse valida un estado canónico recibido como texto (por ejemplo en un filtro de listado).
func Parse(s string) (Canonical, bool) {
	c := Canonical(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range All() {
		if k == c {
			return c, true
		}
	}
	return "", false
}

// Signals señales crudas leídas del documento. Cualquiera puede estar vacía.
type Signals struct {
	Shipping string `json:"shipping,omitempty"`
	Payment  string `json:"payment,omitempty"`
	Top      string `json:"top,omitempty"`
}

// Normalized devuelve las señales recortadas y en minúsculas.
func (s Signals) Normalized() Signals {
	return Signals{
		Shipping: normalize(s.Shipping),
		Payment:  normalize(s.Payment),
		Top:      normalize(s.Top),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type set map[string]struct{}

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	if v == "" {
		return false
	}
	_, ok := s[v]
	return ok
}

var (
	completedSet      = newSet("delivered", "completed", "success", "succeeded")
	failedDeliverySet = newSet("failed-delivery", "delivery_failed", "failed_delivery")
	inTransitSet      = newSet("shipping", "in_transit", "in-transit", "dispatched", "out_for_delivery", "out-for-delivery")
	toShipSet         = newSet("confirmed", "to_ship", "to-ship", "packed", "ready_to_ship")
	paidSet           = newSet("paid", "success", "succeeded")
	cancelledSet      = newSet("cancelled", "canceled")
	paymentFailedSet  = newSet("failed", "payment_failed", "refused")
	pendingSet        = newSet("pending", "unpaid")
)

// Classify aplica la tabla de precedencia (gana la primera regla que coincide).
func Classify(sig Signals) Canonical {
	s := sig.Normalized()
	switch {
	case completedSet.has(s.Shipping) || completedSet.has(s.Top):
		return Completed
	case failedDeliverySet.has(s.Shipping) || failedDeliverySet.has(s.Top):
		return FailedDelivery
	case inTransitSet.has(s.Shipping):
		return Processing
	case toShipSet.has(s.Shipping) || toShipSet.has(s.Top) || paidSet.has(s.Payment):
		return ToShip
	case cancelledSet.has(s.Top) || paymentFailedSet.has(s.Payment):
		return Cancelled
	case pendingSet.has(s.Payment) || pendingSet.has(s.Top):
		return Pending
	}
	return Pending
}
