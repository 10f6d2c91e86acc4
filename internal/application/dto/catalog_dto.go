package dto

import "time"

// UpsertPolicyRequest crea o actualiza una política. La versión la gestiona el servidor.
type UpsertPolicyRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=terms privacy returns shipping"`
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"`
}

// PublishPolicyRequest publica o retira una política.
type PublishPolicyRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// PolicyResponse salida de una política.
type PolicyResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Version   int       `json:"version"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRequest alta o edición de categoría. Active nil = true en alta, sin cambio en edición.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	ParentID  string `json:"parent_id" validate:"omitempty"`
	Active    *bool  `json:"active"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  string    `json:"parent_id,omitempty"`
	Active    bool      `json:"active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarrantyRuleRequest alta o edición de una regla de garantía.
type WarrantyRuleRequest struct {
	CategoryID   string `json:"category_id" validate:"required"`
	DurationDays int    `json:"duration_days" validate:"required,min=1,max=3650"`
	Coverage     string `json:"coverage" validate:"omitempty,max=1000"`
	Active       *bool  `json:"active"`
}

// WarrantyRuleResponse salida de una regla de garantía.
type WarrantyRuleResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	DurationDays int       `json:"duration_days"`
	Coverage     string    `json:"coverage"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
