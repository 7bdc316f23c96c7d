package service

import "github.com/oklog/ulid/v2"

// generateULID generates a unique, lexicographically sortable ID.
// Sorting by ID matches insertion order, which the listing relies on.
func generateULID() string {
	return ulid.Make().String()
}
