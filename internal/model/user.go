// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// The password hash never leaves the model layer; JSON marshalling skips it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the authenticated identity resolved by the auth gate.
// Token holds the presenting plaintext token for the request so logout can
// revoke exactly that session; it is never persisted or logged.
type AuthContext struct {
	UserID string
	Email  string
	Token  string
}
