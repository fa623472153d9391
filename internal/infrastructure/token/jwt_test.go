package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/auth-system/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret")

	signed, err := m.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, TTL, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWTManager_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := NewJWTManager("secret", WithClock(fixedClock(issuedAt)))

	signed, err := issuer.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret").Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestJWTManager_ValidJustBeforeExpiry(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	issuer := NewJWTManager("secret", WithClock(fixedClock(issuedAt)))
	signed, err := issuer.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	verifier := NewJWTManager("secret", WithClock(fixedClock(issuedAt.Add(TTL-time.Second))))
	_, err = verifier.Verify(signed)
	require.NoError(t, err)

	verifier = NewJWTManager("secret", WithClock(fixedClock(issuedAt.Add(TTL+time.Second))))
	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	signed, err := NewJWTManager("secret").Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = NewJWTManager("other").Verify(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := NewJWTManager("secret")
	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(in)
		require.ErrorIs(t, err, domain.ErrInvalidToken, "input %q", in)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		UserID: "user-1",
		Email:  "a@x.com",
	})
	signed, err := tkn.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret").Verify(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RequiresExpiry(t *testing.T) {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1", Email: "a@x.com"})
	signed, err := tkn.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret").Verify(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
