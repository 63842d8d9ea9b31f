package model

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// RotationVerdict is the outcome of checking a presented refresh token
// against the stored one.
type RotationVerdict int

const (
	// RotationValid means the presented token is the live one and has not expired.
	RotationValid RotationVerdict = iota
	// RotationTheftDetected means the presented token is not the live one.
	RotationTheftDetected
	// RotationExpired means the presented token is the live one but has expired.
	RotationExpired
)

func (v RotationVerdict) String() string {
	switch v {
	case RotationValid:
		return "valid"
	case RotationTheftDetected:
		return "theft_detected"
	case RotationExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// AuthToken is the single live refresh token record of a principal.
// Values are immutable; rotation produces a new AuthToken.
type AuthToken struct {
	id          uuid.UUID
	principalID uuid.UUID
	tokenValue  string
	expiresAt   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// IssueAuthToken creates a record for a freshly minted refresh token that
// expires lifetimeSeconds after now.
func IssueAuthToken(principalID uuid.UUID, tokenValue string, lifetimeSeconds int64, now time.Time) AuthToken {
	return AuthToken{
		id:          uuid.New(),
		principalID: principalID,
		tokenValue:  tokenValue,
		expiresAt:   now.Add(time.Duration(lifetimeSeconds) * time.Second),
		createdAt:   now,
		updatedAt:   now,
	}
}

// RehydrateAuthToken rebuilds a stored record without any validation.
func RehydrateAuthToken(id, principalID uuid.UUID, tokenValue string, expiresAt, createdAt, updatedAt time.Time) AuthToken {
	return AuthToken{
		id:          id,
		principalID: principalID,
		tokenValue:  tokenValue,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t AuthToken) ID() uuid.UUID          { return t.id }
func (t AuthToken) PrincipalID() uuid.UUID { return t.principalID }
func (t AuthToken) TokenValue() string     { return t.tokenValue }
func (t AuthToken) ExpiresAt() time.Time   { return t.expiresAt }
func (t AuthToken) CreatedAt() time.Time   { return t.createdAt }
func (t AuthToken) UpdatedAt() time.Time   { return t.updatedAt }

// IsZero reports whether t is the zero value.
func (t AuthToken) IsZero() bool {
	return t.id == uuid.Nil && t.principalID == uuid.Nil && t.tokenValue == ""
}

// ValidateRotation decides whether candidate may be exchanged for a new pair.
// A mismatch is reported before expiry is considered.
func (t AuthToken) ValidateRotation(candidate string, now time.Time) RotationVerdict {
	if !t.MatchesValue(candidate) {
		return RotationTheftDetected
	}
	if now.After(t.expiresAt) {
		return RotationExpired
	}
	return RotationValid
}

// MatchesValue reports whether value equals the stored token value.
func (t AuthToken) MatchesValue(value string) bool {
	return subtle.ConstantTimeCompare([]byte(value), []byte(t.tokenValue)) == 1
}
