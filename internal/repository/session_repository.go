package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-service/internal/domain"
)

// SessionRepository manages opaque bearer-token sessions. Tokens are stored
// hashed; the plaintext never touches the database.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForAccount(ctx context.Context, accountID string) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (account_id, token_hash, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		session.AccountID,
		session.TokenHash,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	const query = `
        SELECT id, account_id, token_hash, expires_at, created_at, revoked_at
        FROM sessions
        WHERE token_hash=$1 AND revoked_at IS NULL AND expires_at > NOW()`
	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.AccountID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.RevokedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, id string) error {
	const query = `
        UPDATE sessions SET revoked_at=NOW()
        WHERE id=$1 AND revoked_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *sessionRepository) RevokeAllForAccount(ctx context.Context, accountID string) error {
	const query = `
        UPDATE sessions SET revoked_at=NOW()
        WHERE account_id=$1 AND revoked_at IS NULL`
	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}
