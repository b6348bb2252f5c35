package authutils

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-server/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func userClaims(userID uuid.UUID, exp time.Time) *models.Claims {
	return &models.Claims{
		UserID: userID,
		Roles:  []string{models.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}
}

func TestNewJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("", nil)
	assert.Error(t, err)
}

func TestVerifyToken(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		token := signClaims(t, userClaims(userID, time.Now().Add(time.Hour)), jwt.SigningMethodHS256, []byte(testSecret))
		claims, err := v.VerifyToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, []string{models.RoleUser}, claims.Roles)
	})

	t.Run("expired", func(t *testing.T) {
		token := signClaims(t, userClaims(userID, time.Now().Add(-time.Minute)), jwt.SigningMethodHS256, []byte(testSecret))
		_, err := v.VerifyToken(ctx, token)
		assert.True(t, errors.Is(err, models.ErrTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signClaims(t, userClaims(userID, time.Now().Add(time.Hour)), jwt.SigningMethodHS256, []byte("other"))
		_, err := v.VerifyToken(ctx, token)
		assert.True(t, errors.Is(err, models.ErrTokenInvalid))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := v.VerifyToken(ctx, "not-a-jwt")
		assert.True(t, errors.Is(err, models.ErrTokenMalformed))
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		claims := userClaims(userID, time.Now().Add(time.Hour))
		claims.TokenType = models.TokenTypeRefresh
		token := signClaims(t, claims, jwt.SigningMethodHS256, []byte(testSecret))
		_, err := v.VerifyToken(ctx, token)
		assert.True(t, errors.Is(err, models.ErrTokenInvalid))
	})

	t.Run("missing user id", func(t *testing.T) {
		token := signClaims(t, userClaims(uuid.Nil, time.Now().Add(time.Hour)), jwt.SigningMethodHS256, []byte(testSecret))
		_, err := v.VerifyToken(ctx, token)
		assert.True(t, errors.Is(err, models.ErrTokenInvalid))
	})
}

func TestVerifyInterServiceToken(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	claims := &models.InterServiceClaims{
		ServiceName: "trainings",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token := signClaims(t, claims, jwt.SigningMethodHS256, []byte(testSecret))

	got, err := v.VerifyInterServiceToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "trainings", got.ServiceName)

	claims.ServiceName = ""
	token = signClaims(t, claims, jwt.SigningMethodHS256, []byte(testSecret))
	_, err = v.VerifyInterServiceToken(context.Background(), token)
	assert.True(t, errors.Is(err, models.ErrTokenInvalid))
}
