package router

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/blog-auth-server/internal/api/grpc/handler"
	"github.com/dtroode/blog-auth-server/internal/api/grpc/middleware"
	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

// TokenService is everything the transport needs from the token workflows.
type TokenService interface {
	handler.TokenService
	middleware.TokenService
}

// Router builds the gRPC server with its interceptor chain.
type Router struct {
	tokenService   TokenService
	contextManager model.ContextManager
	issuerKey      string
	logger         *logger.Logger
}

func New(
	tokenService TokenService,
	contextManager model.ContextManager,
	issuerKey string,
	logger *logger.Logger,
) *Router {
	return &Router{
		tokenService:   tokenService,
		contextManager: contextManager,
		issuerKey:      issuerKey,
		logger:         logger,
	}
}

func methodIs(fullMethod string) selector.Matcher {
	return selector.MatchFunc(func(_ context.Context, c interceptors.CallMeta) bool {
		return c.FullMethod() == fullMethod
	})
}

// Register creates the server. Revoke requires an access token, Issue
// requires the issuer key, Rotate authenticates with the refresh token itself.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	issuerKey := middleware.NewIssuerKey(r.issuerKey, r.logger)

	panicHandler := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked", "panic", fmt.Sprint(p), "stack", string(debug.Stack()))
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(panicHandler),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				methodIs(handler.TokenService_Revoke_FullMethodName),
			),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(issuerKey.AuthFunc),
				methodIs(handler.TokenService_Issue_FullMethodName),
			),
		),
	)
	r.registerTokenRoutes(s)

	return s
}

func (r *Router) registerTokenRoutes(server *grpc.Server) {
	tokenHandler := handler.NewToken(r.tokenService, r.contextManager, r.logger)
	handler.RegisterTokenServiceServer(server, tokenHandler)
}
