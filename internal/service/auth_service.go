package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/config"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

// AuthService coordinates registration, login and session lifecycle.
type AuthService struct {
	accounts   repository.AccountRepository
	sessions   repository.SessionRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	cache      *auth.SessionCache
	limiter    *redis.Client
	bcryptCost int
	resetTTL   time.Duration
	rateLimit  int
	rateWindow time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo       repository.AccountRepository
	SessionRepo       repository.SessionRepository
	PasswordResetRepo repository.PasswordResetRepository
	SessionCache      *auth.SessionCache
	RateLimiter       *redis.Client
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		sessions:   deps.SessionRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.SessionTTL()),
		cache:      deps.SessionCache,
		limiter:    deps.RateLimiter,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		rateLimit:  cfg.Auth.LoginRateLimit,
		rateWindow: cfg.Auth.LoginRateWindow(),
	}
}

// Register creates a customer account and issues its first token. The role
// is always customer; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Account, string, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewValidationError("Registration failed", map[string]any{
			"email": []string{"The email has already been taken."},
		})
	} else if err != pgx.ErrNoRows {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		Active:       true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login authenticates an account, revokes every prior session, and issues a
// fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	if err := s.checkLoginRate(ctx, email); err != nil {
		return nil, "", err
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", invalidCredentials()
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", invalidCredentials()
	}
	if !account.Active {
		return nil, "", apperrors.NewForbidden("Your account has been deactivated. Please contact support.")
	}

	if err := s.sessions.RevokeAllForAccount(ctx, account.ID); err != nil {
		return nil, "", err
	}
	s.cache.DropAccount(ctx, account.ID)

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Logout revokes the presented session.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return apperrors.NewUnauthorized("Unauthorized. Please log in.")
	}
	if err := s.sessions.Revoke(ctx, principal.SessionID); err != nil {
		return err
	}
	s.cache.DropToken(ctx, principal.TokenHash, principal.Account.ID)
	return nil
}

// RequestPasswordReset persists a single-use reset token for the email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordReset, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset := &domain.PasswordReset{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return nil, err
	}
	return reset, nil
}

// ConfirmPasswordReset validates the reset token, updates the password, and
// revokes every live session for the account.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	reset, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if reset.UsedAt != nil || time.Now().After(reset.ExpiresAt) {
		return apperrors.NewInvalidState("reset token expired or already used")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, reset.AccountID)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	if err := s.sessions.RevokeAllForAccount(ctx, account.ID); err != nil {
		return err
	}
	s.cache.DropAccount(ctx, account.ID)

	return s.resets.MarkUsed(ctx, reset.ID)
}

func (s *AuthService) openSession(ctx context.Context, accountID string) (string, error) {
	token, hash, expiresAt := s.tokenMgr.Issue()
	session := &domain.Session{
		AccountID: accountID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) checkLoginRate(ctx context.Context, email string) error {
	if s.limiter == nil || s.rateLimit <= 0 {
		return nil
	}
	key := fmt.Sprintf("login_attempts:%s", email)
	count, err := s.limiter.Incr(ctx, key).Result()
	if err != nil {
		// rate limiting is best effort; an unreachable redis must not block logins
		return nil
	}
	if count == 1 {
		_ = s.limiter.Expire(ctx, key, s.rateWindow).Err()
	}
	if count > int64(s.rateLimit) {
		return apperrors.NewDomainError("RATE_LIMITED", "Too many login attempts. Please try again later.", http.StatusTooManyRequests, nil)
	}
	return nil
}

func invalidCredentials() error {
	return apperrors.NewValidationError("Login failed", map[string]any{
		"email": []string{"The provided credentials are incorrect."},
	})
}
