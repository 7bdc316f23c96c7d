package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Token format: st_{secret}
// Example: st_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b
const tokenSecretLen = 40 // hex encoded 20 bytes

// tokenFormatRegex validates the bearer token format.
var tokenFormatRegex = regexp.MustCompile(`^st_[a-f0-9]{40}$`)

// GenerateToken creates a new opaque session token.
// The plaintext is returned once to the client; only its digest is stored.
func GenerateToken() (string, error) {
	secretBytes := make([]byte, tokenSecretLen/2)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "st_" + hex.EncodeToString(secretBytes), nil
}

// ValidTokenFormat reports whether the token matches the expected format.
// Used to reject garbage before touching the session store.
func ValidTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}

// TokenDigest returns the SHA-256 hex digest of a token.
// Sessions are keyed by digest so a store dump never reveals live tokens.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
