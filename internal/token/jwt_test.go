package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blog-auth-server/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	access, err := j.MintAccessToken(u)
	require.NoError(t, err)

	require.True(t, j.Verify(access))
	require.True(t, j.VerifyKind(access, model.TokenKindAccess))
	got, err := j.SubjectOf(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	refresh, err := j.MintRefreshToken(u)
	require.NoError(t, err)

	require.True(t, j.VerifyKind(refresh, model.TokenKindRefresh))
	got, err := j.SubjectOf(refresh)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_TwoMintsDiffer(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	j := NewJWT("secret", time.Minute, time.Hour).WithClock(fixedClock(now))
	u := uuid.New()

	a, err := j.MintRefreshToken(u)
	require.NoError(t, err)
	b, err := j.MintRefreshToken(u)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestJWT_TokenKind_Mismatch(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	u := uuid.New()

	access, err := j.MintAccessToken(u)
	require.NoError(t, err)
	refresh, err := j.MintRefreshToken(u)
	require.NoError(t, err)

	assert.True(t, j.Verify(access))
	assert.False(t, j.VerifyKind(access, model.TokenKindRefresh))
	assert.False(t, j.VerifyKind(refresh, model.TokenKindAccess))
}

func TestJWT_Expiry(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	j := NewJWT("secret", time.Minute, time.Hour).WithClock(fixedClock(issued))
	u := uuid.New()

	refresh, err := j.MintRefreshToken(u)
	require.NoError(t, err)

	secs, err := j.SecondsUntilExpiry(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), secs)

	later := j.WithClock(fixedClock(issued.Add(59*time.Minute + 30*time.Second)))
	secs, err = later.SecondsUntilExpiry(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(30), secs)

	expired := j.WithClock(fixedClock(issued.Add(time.Hour)))
	assert.False(t, expired.Verify(refresh))
	_, err = expired.SubjectOf(refresh)
	assert.Error(t, err)
	_, err = expired.SecondsUntilExpiry(refresh)
	assert.Error(t, err)
}

func TestJWT_RejectsTampering(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	other := NewJWT("other-secret", time.Minute, time.Hour)
	u := uuid.New()

	access, err := j.MintAccessToken(u)
	require.NoError(t, err)

	assert.False(t, other.Verify(access))

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	forged := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	assert.False(t, j.Verify(forged))
}

func TestJWT_MalformedInput(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)

	for _, in := range []string{"", "garbage", "a.b.c", "....", "eyJhbGciOiJub25lIn0.e30."} {
		assert.False(t, j.Verify(in), in)
		assert.False(t, j.VerifyKind(in, model.TokenKindRefresh), in)
		_, err := j.SubjectOf(in)
		assert.Error(t, err, in)
		_, err = j.SecondsUntilExpiry(in)
		assert.Error(t, err, in)
	}
}

func TestJWT_RejectsNonHMAC(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: model.TokenKindRefresh,
	})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.False(t, j.Verify(s))
}

func TestJWT_RejectsMissingExpiry(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
		TokenType:        model.TokenKindRefresh,
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.False(t, j.Verify(s))
}

func TestJWT_SubjectNotUUID(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: model.TokenKindRefresh,
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	require.True(t, j.Verify(s))
	_, err = j.SubjectOf(s)
	assert.Error(t, err)
}
