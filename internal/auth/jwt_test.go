package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signRaw(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("Round Trip", func(t *testing.T) {
		token, err := m.Issue(Identity{Role: "Owner", UserID: 7, HasUserID: true})
		require.NoError(t, err)

		id, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, Identity{Role: RoleOwner, UserID: 7, HasUserID: true}, id)
	})

	t.Run("Issue Rejects Unknown Role", func(t *testing.T) {
		_, err := m.Issue(Identity{Role: "coach", UserID: 1, HasUserID: true})
		assert.ErrorIs(t, err, errUnknownRole)
	})

	t.Run("Issue Rejects Missing User Id", func(t *testing.T) {
		_, err := m.Issue(Identity{Role: RoleUser})
		assert.ErrorIs(t, err, errBadSubject)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := NewJWTManager("test-secret", -time.Minute).Issue(Identity{Role: RoleUser, UserID: 1, HasUserID: true})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Within Clock Skew", func(t *testing.T) {
		token, err := NewJWTManager("test-secret", -5*time.Second).Issue(Identity{Role: RoleUser, UserID: 1, HasUserID: true})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.NoError(t, err)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := NewJWTManager("other", time.Hour).Issue(Identity{Role: RoleAdmin, UserID: 1, HasUserID: true})
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Other HMAC Algorithm", func(t *testing.T) {
		token := signRaw(t, jwt.SigningMethodHS512, []byte("test-secret"), &accessClaims{
			Role:             RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "1", ExpiresAt: future},
		})

		_, err := m.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Foreign Issuer", func(t *testing.T) {
		token := signRaw(t, jwt.SigningMethodHS256, []byte("test-secret"), &accessClaims{
			Role:             RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "court-booking", Subject: "1", ExpiresAt: future},
		})

		_, err := m.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("No Expiry", func(t *testing.T) {
		token := signRaw(t, jwt.SigningMethodHS256, []byte("test-secret"), &accessClaims{
			Role:             RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "1"},
		})

		_, err := m.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("Forged Role", func(t *testing.T) {
		token := signRaw(t, jwt.SigningMethodHS256, []byte("test-secret"), &accessClaims{
			Role:             "superuser",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "1", ExpiresAt: future},
		})

		_, err := m.Verify(token)
		assert.ErrorIs(t, err, errUnknownRole)
	})

	t.Run("Non Numeric Subject", func(t *testing.T) {
		token := signRaw(t, jwt.SigningMethodHS256, []byte("test-secret"), &accessClaims{
			Role:             RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "alice", ExpiresAt: future},
		})

		_, err := m.Verify(token)
		assert.ErrorIs(t, err, errBadSubject)
	})
}
