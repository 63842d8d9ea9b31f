package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores the authenticated principal on a request context.
type ContextManager interface {
	SetPrincipalIDToContext(ctx context.Context, principalID uuid.UUID) context.Context
	GetPrincipalIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
