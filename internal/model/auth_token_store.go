package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenStore keeps at most one AuthToken per principal.
type TokenStore interface {
	// Save replaces any record stored for token.PrincipalID().
	Save(ctx context.Context, token AuthToken) (AuthToken, error)
	// FindByPrincipal returns false when nothing is stored for the principal.
	FindByPrincipal(ctx context.Context, principalID uuid.UUID) (AuthToken, bool, error)
	// DeleteByPrincipal is a no-op when nothing is stored.
	DeleteByPrincipal(ctx context.Context, principalID uuid.UUID) error
	// ReplaceIfCurrent stores next only if the record for next.PrincipalID()
	// still holds expectedValue. It reports whether the swap happened.
	ReplaceIfCurrent(ctx context.Context, expectedValue string, next AuthToken) (bool, error)
	Ping(ctx context.Context) error
}

// ExpiredTokenPurger is implemented by stores without native expiry.
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
