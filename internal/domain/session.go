package domain

import "time"

// Session is an issued bearer token, stored hashed. Logging in revokes every
// prior session for the account, so at most one session is live per login.
type Session struct {
	ID        string
	AccountID string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Usable reports whether the session still authenticates requests.
func (s *Session) Usable(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// PasswordReset is a single-use token allowing an account holder to set a
// new password out of band.
type PasswordReset struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
