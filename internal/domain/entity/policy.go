package entity

import "time"

// Tipos de política publicada en el marketplace.
const (
	PolicyTerms    = "terms"
	PolicyPrivacy  = "privacy"
	PolicyReturns  = "returns"
	PolicyShipping = "shipping"
)

// IsValidPolicyKind valida el tipo de política.
func IsValidPolicyKind(k string) bool {
	switch k {
	case PolicyTerms, PolicyPrivacy, PolicyReturns, PolicyShipping:
		return true
	}
	return false
}

// Policy documento legal/operativo versionado.
type Policy struct {
	ID        string
	Kind      string
	Title     string
	Body      string
	Version   int
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
