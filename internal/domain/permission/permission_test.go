package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/domain/permission"
)

// flagState representa una clave ausente, false o true en un mapa almacenado.
type flagState int

const (
	missing flagState = iota
	off
	on
)

func (s flagState) apply(m permission.Map, c permission.Capability) {
	switch s {
	case off:
		m[c] = false
	case on:
		m[c] = true
	}
}

func (s flagState) value() bool { return s == on }

func TestResolve_SubcuentaTopadaPorPadre(t *testing.T) {
	states := []flagState{missing, off, on}
	for _, c := range permission.All() {
		for _, child := range states {
			for _, parent := range states {
				stored := permission.Map{}
				parentMap := permission.Map{}
				child.apply(stored, c)
				parent.apply(parentMap, c)

				got := permission.Resolve(permission.Input{
					Role:        permission.RoleSeller,
					Stored:      stored,
					SubAccount:  true,
					Parent:      parentMap,
					ParentFound: true,
				})

				want := child.value() && parent.value()
				if c == permission.Access || c == permission.Users {
					want = false
				}
				assert.Equal(t, want, got[c], "capacidad %s hijo=%d padre=%d", c, child, parent)
			}
		}
	}
}

func TestResolve_SubcuentaNuncaObtieneGestionDeCuentas(t *testing.T) {
	full := permission.RoleDefaults(permission.RoleAdmin)
	got := permission.Resolve(permission.Input{
		Role:        permission.RoleAdmin,
		Stored:      full,
		SubAccount:  true,
		Parent:      full,
		ParentFound: true,
	})

	assert.False(t, got.Allows(permission.Access))
	assert.False(t, got.Allows(permission.Users))
	assert.True(t, got.Allows(permission.Dashboard))
	assert.ElementsMatch(t,
		[]permission.Capability{permission.Access, permission.Users},
		permission.DeniedForSubAccounts())
}

func TestResolve_PadreNoDisponible_FallaCerrado(t *testing.T) {
	full := permission.RoleDefaults(permission.RoleAdmin)
	got := permission.Resolve(permission.Input{
		Role:        permission.RoleSeller,
		Stored:      full,
		SubAccount:  true,
		Parent:      full,
		ParentFound: false,
	})

	require.Len(t, got, len(permission.All()))
	assert.Empty(t, got.Granted(), "sin padre no se concede ninguna capacidad")
}

func TestResolve_CuentaPrimariaUsaDefaultsDelRol(t *testing.T) {
	for _, role := range []string{permission.RoleAdmin, permission.RoleSeller, "unknown"} {
		defaults := permission.RoleDefaults(role)
		for _, c := range permission.All() {
			for _, s := range []flagState{missing, off, on} {
				stored := permission.Map{}
				s.apply(stored, c)

				got := permission.Resolve(permission.Input{Role: role, Stored: stored})

				want := defaults[c]
				if s != missing {
					want = s.value()
				}
				assert.Equal(t, want, got[c], "rol %s capacidad %s", role, c)
			}
		}
	}
}

func TestRoleDefaults(t *testing.T) {
	admin := permission.RoleDefaults(permission.RoleAdmin)
	assert.Len(t, admin.Granted(), len(permission.All()))

	seller := permission.RoleDefaults(permission.RoleSeller)
	assert.True(t, seller.Allows(permission.Bookings))
	assert.True(t, seller.Allows(permission.Withdrawal))
	assert.False(t, seller.Allows(permission.Access))
	assert.False(t, seller.Allows(permission.Users))
	assert.False(t, seller.Allows(permission.Policies))

	assert.Empty(t, permission.RoleDefaults("").Granted())
}

func TestFromStrings_DescartaClavesDesconocidas(t *testing.T) {
	m := permission.FromStrings(map[string]bool{"dashboard": true, "bogus": true})
	assert.Equal(t, permission.Map{permission.Dashboard: true}, m)
	assert.Equal(t, map[string]bool{"dashboard": true}, m.Strings())
}

func TestFillDefaults(t *testing.T) {
	filled, changed := permission.FillDefaults(permission.RoleSeller, permission.Map{permission.Bookings: false})
	assert.True(t, changed)
	assert.False(t, filled[permission.Bookings], "un valor almacenado no se sobrescribe")
	assert.True(t, filled[permission.Dashboard])
	assert.Len(t, filled, len(permission.All()))

	_, changed = permission.FillDefaults(permission.RoleSeller, filled)
	assert.False(t, changed)
}

func TestForSubAccount(t *testing.T) {
	in := permission.Map{permission.Users: true, permission.Access: true, permission.Reports: true}
	out := permission.ForSubAccount(in)
	assert.False(t, out[permission.Users])
	assert.False(t, out[permission.Access])
	assert.True(t, out[permission.Reports])
	assert.True(t, in[permission.Users], "el mapa de entrada no se modifica")
}
