package session

import (
	"postboard/internal/core/domain/user"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewJWT("test-secret", 7*24*time.Hour, fixedNow(NOW))
	u := user.User{ID: 42, Email: "test@test.test"}

	token, err := issuer.IssueToken(u)
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID(42), claims.UserID)
	require.True(t, claims.IssuedAt.Equal(NOW))
}

func TestTokensAreUnique(t *testing.T) {
	issuer := NewJWT("test-secret", time.Hour, fixedNow(NOW))
	tokens := make(map[user.SessionToken]struct{})
	for i := 0; i < 100; i++ {
		token, err := issuer.IssueToken(user.User{ID: 1})
		require.NoError(t, err)
		require.NotContains(t, tokens, token)
		tokens[token] = struct{}{}
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := NewJWT("test-secret", time.Hour, fixedNow(NOW)).IssueToken(user.User{ID: 1})
	require.NoError(t, err)

	_, err = NewJWT("test-secret", time.Hour, fixedNow(NOW.Add(time.Hour+time.Second))).ParseToken(token)
	require.ErrorIs(t, err, user.ErrInvalidSessionToken)
}

func TestOtherSecret(t *testing.T) {
	token, err := NewJWT("test-secret", time.Hour, fixedNow(NOW)).IssueToken(user.User{ID: 1})
	require.NoError(t, err)

	_, err = NewJWT("other-secret", time.Hour, fixedNow(NOW)).ParseToken(token)
	require.ErrorIs(t, err, user.ErrInvalidSessionToken)
}

func TestUnexpectedSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(NOW),
			ExpiresAt: jwt.NewNumericDate(NOW.Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("test-secret", time.Hour, fixedNow(NOW)).ParseToken(user.SessionToken(signed))
	require.ErrorIs(t, err, user.ErrInvalidSessionToken)
}

func TestMalformedToken(t *testing.T) {
	issuer := NewJWT("test-secret", time.Hour, fixedNow(NOW))
	for _, token := range []user.SessionToken{"", "abc", "a.b.c"} {
		_, err := issuer.ParseToken(token)
		require.ErrorIs(t, err, user.ErrInvalidSessionToken)
	}
}
