// Package permission resuelve el rol y el conjunto efectivo de capacidades de una cuenta.
//
// Las cuentas primarias (admin, seller) usan su mapa almacenado y, para las claves ausentes,
// la tabla de valores por defecto del rol. Las subcuentas nunca superan a la cuenta padre:
// cada capacidad efectiva es hijo[C] && padre[C], y las capacidades de gestión de cuentas
// quedan siempre denegadas.
package permission

import "sort"

// Roles de cuenta.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Capability nombre de un área funcional del dashboard controlada por un flag booleano.
type Capability string

// Conjunto fijo de capacidades.
const (
	Dashboard    Capability = "dashboard"
	Bookings     Capability = "bookings"
	Confirmation Capability = "confirmation"
	Withdrawal   Capability = "withdrawal"
	Access       Capability = "access"
	Images       Capability = "images"
	Users        Capability = "users"
	Inventory    Capability = "inventory"
	Reports      Capability = "reports"
	Policies     Capability = "policies"
	Categories   Capability = "categories"
	Warranty     Capability = "warranty"
)

var all = []Capability{
	Dashboard, Bookings, Confirmation, Withdrawal, Access, Images,
	Users, Inventory, Reports, Policies, Categories, Warranty,
}

// subAccountDenied capacidades que una subcuenta nunca obtiene, sin importar los flags almacenados.
var subAccountDenied = map[Capability]bool{
	Access: true,
	Users:  true,
}

var sellerDefaults = map[Capability]bool{
	Dashboard:    true,
	Bookings:     true,
	Confirmation: true,
	Withdrawal:   true,
	Images:       true,
	Inventory:    true,
	Reports:      true,
}

// All devuelve las capacidades en orden estable.
func All() []Capability {
	out := make([]Capability, len(all))
	copy(out, all)
	return out
}

// IsKnown informa si c pertenece al conjunto fijo.
func IsKnown(c Capability) bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}

// DeniedForSubAccounts devuelve las capacidades siempre denegadas a subcuentas.
func DeniedForSubAccounts() []Capability {
	out := make([]Capability, 0, len(subAccountDenied))
	for _, c := range all {
		if subAccountDenied[c] {
			out = append(out, c)
		}
	}
	return out
}

// IsKnownRole informa si role es admin o seller.
func IsKnownRole(role string) bool {
	return role == RoleAdmin || role == RoleSeller
}

// RoleDefaults devuelve el mapa completo por defecto del rol. Un rol desconocido no concede nada.
func RoleDefaults(role string) Map {
	out := make(Map, len(all))
	for _, c := range all {
		switch role {
		case RoleAdmin:
			out[c] = true
		case RoleSeller:
			out[c] = sellerDefaults[c]
		default:
			out[c] = false
		}
	}
	return out
}

// Input datos necesarios para resolver los permisos efectivos.
// Parent solo se consulta si SubAccount es true; ParentFound=false equivale a un padre sin permisos.
type Input struct {
	Role        string
	Stored      Map
	SubAccount  bool
	Parent      Map
	ParentFound bool
}

// Resolve calcula el mapa efectivo sobre el conjunto fijo de capacidades. Función pura.
func Resolve(in Input) Map {
	out := make(Map, len(all))
	if in.SubAccount {
		for _, c := range all {
			if subAccountDenied[c] || !in.ParentFound {
				out[c] = false
				continue
			}
			out[c] = in.Stored[c] && in.Parent[c]
		}
		return out
	}

	defaults := RoleDefaults(in.Role)
	for _, c := range all {
		if v, ok := in.Stored[c]; ok {
			out[c] = v
			continue
		}
		out[c] = defaults[c]
	}
	return out
}

// Map flags de capacidades. En un mapa almacenado las claves pueden faltar.
type Map map[Capability]bool

// FromStrings construye un Map descartando claves desconocidas.
func FromStrings(raw map[string]bool) Map {
	out := make(Map, len(raw))
	for k, v := range raw {
		c := Capability(k)
		if IsKnown(c) {
			out[c] = v
		}
	}
	return out
}

// Strings convierte el mapa a claves string (persistencia y JSON).
func (m Map) Strings() map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// Allows informa si la capacidad está concedida. Una clave ausente es false.
func (m Map) Allows(c Capability) bool {
	return m[c]
}

// Granted devuelve las capacidades concedidas ordenadas alfabéticamente.
func (m Map) Granted() []Capability {
	out := make([]Capability, 0, len(m))
	for c, ok := range m {
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone copia el mapa.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ForSubAccount devuelve una copia del mapa almacenado con las capacidades de gestión en false.
func ForSubAccount(stored Map) Map {
	out := stored.Clone()
	for c := range subAccountDenied {
		out[c] = false
	}
	return out
}

// FillDefaults completa las claves ausentes con los valores por defecto del rol.
// changed es true si se añadió alguna clave.
func FillDefaults(role string, stored Map) (filled Map, changed bool) {
	filled = stored.Clone()
	defaults := RoleDefaults(role)
	for _, c := range all {
		if _, ok := filled[c]; !ok {
			filled[c] = defaults[c]
			changed = true
		}
	}
	return filled, changed
}
