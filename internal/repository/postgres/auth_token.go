package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/blog-auth-server/internal/model"
)

var (
	_ model.TokenStore         = (*AuthTokenRepository)(nil)
	_ model.ExpiredTokenPurger = (*AuthTokenRepository)(nil)
)

type AuthTokenRepository struct {
	db dbtx
}

func NewAuthTokenRepository(db *Connection) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) Save(ctx context.Context, token model.AuthToken) (model.AuthToken, error) {
	const query = `
        INSERT INTO auth_tokens (principal_id, id, token_value, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (principal_id) DO UPDATE SET
            id = EXCLUDED.id,
            token_value = EXCLUDED.token_value,
            expires_at = EXCLUDED.expires_at,
            created_at = EXCLUDED.created_at,
            updated_at = EXCLUDED.updated_at
    `

	_, err := r.db.Exec(ctx, query,
		token.PrincipalID(), token.ID(), token.TokenValue(),
		token.ExpiresAt(), token.CreatedAt(), token.UpdatedAt(),
	)
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("failed to save auth token: %w", err)
	}
	return token, nil
}

func (r *AuthTokenRepository) FindByPrincipal(ctx context.Context, principalID uuid.UUID) (model.AuthToken, bool, error) {
	const query = `
        SELECT id, principal_id, token_value, expires_at, created_at, updated_at
        FROM auth_tokens WHERE principal_id = $1
    `

	var (
		id, owner                       uuid.UUID
		value                           string
		expiresAt, createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, principalID).Scan(&id, &owner, &value, &expiresAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuthToken{}, false, nil
		}
		return model.AuthToken{}, false, fmt.Errorf("failed to get auth token by principal: %w", err)
	}

	return model.RehydrateAuthToken(id, owner, value, expiresAt, createdAt, updatedAt), true, nil
}

func (r *AuthTokenRepository) DeleteByPrincipal(ctx context.Context, principalID uuid.UUID) error {
	const query = `DELETE FROM auth_tokens WHERE principal_id = $1`

	if _, err := r.db.Exec(ctx, query, principalID); err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) ReplaceIfCurrent(ctx context.Context, expectedValue string, next model.AuthToken) (bool, error) {
	const query = `
        UPDATE auth_tokens
        SET id = $3, token_value = $4, expires_at = $5, created_at = $6, updated_at = $7
        WHERE principal_id = $1 AND token_value = $2
    `

	tag, err := r.db.Exec(ctx, query,
		next.PrincipalID(), expectedValue,
		next.ID(), next.TokenValue(), next.ExpiresAt(), next.CreatedAt(), next.UpdatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to replace auth token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteExpired removes records that expired before the given instant.
func (r *AuthTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM auth_tokens WHERE expires_at < $1`

	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired auth tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AuthTokenRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
