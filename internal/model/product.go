package model

import "time"

// Product represents a catalog entry.
// Slug is globally unique and URL-safe; Price is stored as integer cents
// so two-decimal monetary values round-trip without floating point error.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	Slug        string    `json:"slug"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
