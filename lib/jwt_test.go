package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-do-not-use-in-production"

func signTestToken(t *testing.T, secret string, sub, jti uuid.UUID) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub.String(),
		"email": "shopper@example.com",
		"role":  "user",
		"iat":   now.Unix(),
		"exp":   now.Add(15 * time.Minute).Unix(),
		"jti":   jti.String(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	sub := uuid.New()
	jti := uuid.New()
	signed := signTestToken(t, testSecret, sub, jti)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, sub, claims.Sub)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, jti, claims.Jti)
	assert.True(t, claims.Exp.After(time.Now()))
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed := signTestToken(t, testSecret, uuid.New(), uuid.New())

	_, err := ParseToken(signed, "a-different-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "shopper@example.com",
		"role":  "user",
		"iat":   now.Add(-2 * time.Hour).Unix(),
		"exp":   now.Add(-1 * time.Hour).Unix(),
		"jti":   uuid.New().String(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	t.Run("authorization header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")

		token, err := ExtractBearerToken(r)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "abc123")

		_, err := ExtractBearerToken(r)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-token"})

		token, err := ExtractBearerToken(r)
		require.NoError(t, err)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("nothing present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := ExtractBearerToken(r)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
