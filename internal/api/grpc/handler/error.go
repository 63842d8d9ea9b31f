package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/blog-auth-server/internal/model"
)

// MsgAuthFailed is the only message a client gets for any token failure.
const MsgAuthFailed = "authentication failed, please log in again"

func handleError(err error) error {
	if st, ok := status.FromError(err); ok {
		return st.Err()
	}

	switch {
	case errors.Is(err, model.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, MsgAuthFailed)
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// handleAuthError collapses every failure into the single re-login outcome.
// Used on the refresh path, where clients must not learn why a token failed.
func handleAuthError(error) error {
	return status.Error(codes.Unauthenticated, MsgAuthFailed)
}
