package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Account   *domain.Account
	SessionID string
	TokenHash string
}

// AuthMiddleware validates bearer tokens against the session table and loads
// the caller's account. The session cache keeps the hot path off Postgres.
type AuthMiddleware struct {
	sessions repository.SessionRepository
	accounts repository.AccountRepository
	cache    *SessionCache
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(sessions repository.SessionRepository, accounts repository.AccountRepository, cache *SessionCache) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, accounts: accounts, cache: cache}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Unauthorized. Please log in.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	tokenHash := HashToken(parts[1])

	sessionID, accountID, ok := m.cache.Get(c.UserContext(), tokenHash)
	if !ok {
		session, err := m.sessions.GetByTokenHash(c.UserContext(), tokenHash)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("Unauthorized. Please log in.")
			}
			return apperrors.MapError(err)
		}
		sessionID, accountID = session.ID, session.AccountID
		m.cache.Put(c.UserContext(), tokenHash, session)
	}

	account, err := m.accounts.GetByID(c.UserContext(), accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("Unauthorized. Please log in.")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Account: account, SessionID: sessionID, TokenHash: tokenHash})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// MustPrincipal retrieves the authenticated entity on routes guarded by the
// middleware, where absence is a programming error.
func MustPrincipal(c *fiber.Ctx) *Principal {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		panic("auth: principal missing from guarded route")
	}
	return principal
}
