package entity

import "time"

// WarrantyRule regla de garantía aplicada a los productos de una categoría.
type WarrantyRule struct {
	ID           string
	CategoryID   string
	DurationDays int
	Coverage     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
