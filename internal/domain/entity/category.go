package entity

import "time"

// Category categoría del catálogo de productos.
type Category struct {
	ID        string
	Name      string
	Slug      string
	ParentID  string // vacío = categoría raíz
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
