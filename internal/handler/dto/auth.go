package dto

import "github.com/stockroom/stockroom/internal/model"

// AuthData wraps the registered/logged-in user and their bearer token.
// The token plaintext appears here once and is never retrievable again.
type AuthData struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}
