package model

import "errors"

var (
	// ErrInvalidToken is the only token failure callers get to see.
	ErrInvalidToken = errors.New("invalid token")
	ErrNotFound     = errors.New("not found")
)

// InvalidTokenReason records why a token was rejected. It is meant for logs
// and metrics, never for the client.
type InvalidTokenReason string

const (
	ReasonMalformed        InvalidTokenReason = "malformed"
	ReasonWrongKind        InvalidTokenReason = "wrong_kind"
	ReasonUnknownPrincipal InvalidTokenReason = "unknown_principal"
	ReasonReuseDetected    InvalidTokenReason = "reuse_detected"
	ReasonExpired          InvalidTokenReason = "expired"
	ReasonRotationConflict InvalidTokenReason = "rotation_conflict"
)

// InvalidTokenError carries the internal reason for a rejected token.
type InvalidTokenError struct {
	Reason InvalidTokenReason
}

func NewInvalidToken(reason InvalidTokenReason) *InvalidTokenError {
	return &InvalidTokenError{Reason: reason}
}

func (e *InvalidTokenError) Error() string {
	return "invalid token: " + string(e.Reason)
}

func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

// InvalidTokenReasonOf extracts the reason from err, if any.
func InvalidTokenReasonOf(err error) (InvalidTokenReason, bool) {
	var ite *InvalidTokenError
	if errors.As(err, &ite) {
		return ite.Reason, true
	}
	return "", false
}
