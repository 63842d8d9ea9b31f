package handler

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

// TokenService defines the token operations exposed over gRPC.
type TokenService interface {
	Issue(ctx context.Context, principalID uuid.UUID) (model.TokenPair, error)
	Rotate(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Revoke(ctx context.Context, principalID uuid.UUID) error
}

var _ TokenServiceServer = (*Token)(nil)

// Token handles the token service endpoints.
type Token struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewToken(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Token {
	return &Token{
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Issue returns a fresh token pair for an already authenticated principal.
func (h *Token) Issue(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	principalID, err := uuid.Parse(req.GetValue())
	if err != nil || principalID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "principal id must be a uuid")
	}

	pair, err := h.tokenService.Issue(ctx, principalID)
	if err != nil {
		h.logger.Error("Token handler: issue failed",
			"principal_id", principalID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return pairToStruct(pair)
}

// Rotate exchanges the refresh token from the authorization metadata.
func (h *Token) Rotate(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	refreshToken := BearerToken(ctx)
	if refreshToken == "" {
		return nil, status.Error(codes.Unauthenticated, MsgAuthFailed)
	}

	pair, err := h.tokenService.Rotate(ctx, refreshToken)
	if err != nil {
		if reason, ok := model.InvalidTokenReasonOf(err); ok {
			h.logger.Info("Token handler: rotation rejected", "reason", string(reason))
		} else {
			h.logger.Error("Token handler: rotation failed", "error", err.Error())
		}
		return nil, handleAuthError(err)
	}

	return pairToStruct(pair)
}

// Revoke drops the refresh token of the authenticated principal.
func (h *Token) Revoke(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	principalID, ok := h.contextManager.GetPrincipalIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, MsgAuthFailed)
	}

	if err := h.tokenService.Revoke(ctx, principalID); err != nil {
		h.logger.Error("Token handler: revoke failed",
			"principal_id", principalID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

// BearerToken returns the token of the first authorization metadata value,
// or "" when there is none.
func BearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(values[0], "Bearer "))
}

func pairToStruct(pair model.TokenPair) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"access_token":             pair.AccessToken,
		"refresh_token":            pair.RefreshToken,
		"access_token_expires_in":  pair.AccessTokenExpiresIn,
		"refresh_token_expires_in": pair.RefreshTokenExpiresIn,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return s, nil
}
