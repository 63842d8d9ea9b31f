package model

import "github.com/google/uuid"

// TokenKind discriminates access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenCodec mints and verifies signed, time-bounded tokens.
type TokenCodec interface {
	MintAccessToken(principalID uuid.UUID) (string, error)
	MintRefreshToken(principalID uuid.UUID) (string, error)
	// Verify reports whether the signature is valid and the token has not expired.
	Verify(token string) bool
	// VerifyKind is Verify plus a check of the kind discriminator.
	VerifyKind(token string, kind TokenKind) bool
	SubjectOf(token string) (uuid.UUID, error)
	SecondsUntilExpiry(token string) (int64, error)
}

// TokenPair is returned to the client after issuance or rotation.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresIn  int64
	RefreshTokenExpiresIn int64
}
