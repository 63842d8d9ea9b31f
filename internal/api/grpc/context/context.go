package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/blog-auth-server/internal/model"
)

// principalIDKey is the incoming metadata key the authenticated principal is
// stored under. Any client-supplied value is overwritten by the middleware.
const principalIDKey = "x-principal-id"

var _ model.ContextManager = (*Manager)(nil)

// Manager keeps the authenticated principal in gRPC incoming metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalIDToContext returns a context whose incoming metadata carries principalID.
func (m *Manager) SetPrincipalIDToContext(ctx context.Context, principalID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{principalIDKey: principalID.String()})
	} else {
		md = md.Copy()
		md.Set(principalIDKey, principalID.String())
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetPrincipalIDFromContext reads the principal set by SetPrincipalIDToContext.
func (m *Manager) GetPrincipalIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	ids := md.Get(principalIDKey)
	if len(ids) == 0 {
		return uuid.Nil, false
	}

	principalID, err := uuid.Parse(ids[0])
	if err != nil {
		return uuid.Nil, false
	}

	return principalID, true
}
