package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenManager issues opaque bearer tokens. Tokens are random, carry no
// claims, and are validated against the sessions table; only the SHA-256 of
// a token is ever persisted.
type TokenManager struct {
	ttl time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{ttl: ttl}
}

// Issue generates a fresh token, returning the plaintext handed to the
// caller, its storable hash, and the expiry.
func (tm *TokenManager) Issue() (token, hash string, expiresAt time.Time) {
	token = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return token, HashToken(token), time.Now().Add(tm.ttl)
}

// HashToken computes the storable digest of a plaintext token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
