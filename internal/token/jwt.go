package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/blog-auth-server/internal/model"
)

// Claims represents JWT claims with the token kind. The principal is carried
// in the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
	TokenType model.TokenKind `json:"typ"`
}

var _ model.TokenCodec = (*JWT)(nil)

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWT creates a codec signing with secretKey and minting tokens that live
// accessTTL and refreshTTL respectively.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock returns a copy of the codec that reads time from now.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	cp := *j
	cp.now = now
	return &cp
}

// MintAccessToken creates a short-lived access token.
func (j *JWT) MintAccessToken(principalID uuid.UUID) (string, error) {
	token, err := j.mint(principalID, model.TokenKindAccess, j.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// MintRefreshToken creates a long-lived refresh token.
func (j *JWT) MintRefreshToken(principalID uuid.UUID) (string, error) {
	token, err := j.mint(principalID, model.TokenKindRefresh, j.refreshTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

func (j *JWT) mint(principalID uuid.UUID, kind model.TokenKind, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principalID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: kind,
	})
	return token.SignedString(j.secretKey)
}

// Verify reports whether the token carries a valid signature and is not expired.
func (j *JWT) Verify(tokenString string) bool {
	_, err := j.parse(tokenString)
	return err == nil
}

// VerifyKind is Verify plus a check that the token is of the given kind.
func (j *JWT) VerifyKind(tokenString string, kind model.TokenKind) bool {
	claims, err := j.parse(tokenString)
	if err != nil {
		return false
	}
	return claims.TokenType == kind
}

// SubjectOf extracts the principal from a valid token.
func (j *JWT) SubjectOf(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	principalID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a principal id: %w", err)
	}
	return principalID, nil
}

// SecondsUntilExpiry returns the whole seconds left before the token expires.
func (j *JWT) SecondsUntilExpiry(tokenString string) (int64, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return 0, err
	}
	left := claims.ExpiresAt.Time.Sub(j.now())
	if left < 0 {
		return 0, nil
	}
	return int64(left / time.Second), nil
}

func (j *JWT) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	return claims, nil
}
