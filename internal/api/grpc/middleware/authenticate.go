package middleware

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/blog-auth-server/internal/api/grpc/handler"
	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

// IssuerKeyHeader carries the shared key of the trusted login component.
const IssuerKeyHeader = "x-issuer-key"

// TokenService resolves a principal from an access token.
type TokenService interface {
	PrincipalFromAccessToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer access tokens and puts the principal into the context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc is an auth.AuthFunc for the go-grpc-middleware auth interceptor.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	tokenString := handler.BearerToken(ctx)
	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, handler.MsgAuthFailed)
	}

	principalID, err := m.tokenService.PrincipalFromAccessToken(ctx, tokenString)
	if err != nil || principalID == uuid.Nil {
		m.logger.Debug("Authenticate middleware: access token rejected")
		return nil, status.Error(codes.Unauthenticated, handler.MsgAuthFailed)
	}

	return m.contextManager.SetPrincipalIDToContext(ctx, principalID), nil
}

// IssuerKey admits only callers presenting the configured issuer key.
type IssuerKey struct {
	key    []byte
	logger *logger.Logger
}

func NewIssuerKey(key string, logger *logger.Logger) *IssuerKey {
	return &IssuerKey{key: []byte(key), logger: logger}
}

func (m *IssuerKey) AuthFunc(ctx context.Context) (context.Context, error) {
	var presented string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(IssuerKeyHeader); len(values) > 0 {
			presented = values[0]
		}
	}

	if len(m.key) == 0 || subtle.ConstantTimeCompare([]byte(presented), m.key) != 1 {
		m.logger.Warn("Issuer key middleware: rejected issue request")
		return nil, status.Error(codes.PermissionDenied, "issuer key required")
	}
	return ctx, nil
}
