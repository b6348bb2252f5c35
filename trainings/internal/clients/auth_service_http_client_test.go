package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetUserInfo(t *testing.T) {
	trainerID := uuid.New()
	unknownID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(sharedMiddleware.InternalServiceTokenHeader) != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/internal/auth/users/" + trainerID.String():
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"` + trainerID.String() + `","email":"coach@gym.pl","name":"Anna","surname":"Nowak","roles":["ROLE_USER","ROLE_TRAINER"],"enabled":true,"isBanned":false}`))
		case "/internal/auth/users/" + unknownID.String():
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewHTTPAuthServiceClient(srv.URL+"/", "secret", time.Second, zap.NewNop())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		info, err := c.GetUserInfo(ctx, trainerID)
		require.NoError(t, err)
		assert.Equal(t, trainerID, info.ID)
		assert.Equal(t, "Anna", info.Name)
		assert.Contains(t, info.Roles, models.RoleTrainer)
		assert.True(t, info.Enabled)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetUserInfo(ctx, unknownID)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := c.GetUserInfo(ctx, uuid.New())
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		bad := NewHTTPAuthServiceClient(srv.URL, "nope", 0, zap.NewNop())
		_, err := bad.GetUserInfo(ctx, trainerID)
		assert.Error(t, err)
	})
}
