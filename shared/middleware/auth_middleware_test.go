package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	claims *models.Claims
	err    error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*models.Claims, error) {
	return s.claims, s.err
}

func (s *stubVerifier) VerifyInterServiceToken(ctx context.Context, token string) (*models.InterServiceClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.InterServiceClaims{ServiceName: "trainings"}, nil
}

type echoLocalizer struct{}

func (echoLocalizer) Message(locale, code string, params ...string) string {
	return locale + ":" + code
}

func newGinRouter(h ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinLocale())
	handlers := append(h, func(c *gin.Context) {
		id, _ := GinUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "roles": GinRoles(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGinAuth(t *testing.T) {
	userID := uuid.New()
	verifier := &stubVerifier{claims: &models.Claims{UserID: userID, Roles: []string{models.RoleUser}}}
	loc := echoLocalizer{}

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop())), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("localized message", func(t *testing.T) {
		w := doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop())), map[string]string{"Accept-Language": "ru"})
		assert.Equal(t, "ru:"+models.ErrCodeUnauthorized, decodeError(t, w).Message)
	})

	t.Run("expired token", func(t *testing.T) {
		v := &stubVerifier{err: models.ErrTokenExpired}
		w := doRequest(newGinRouter(GinAuth(v, loc, zap.NewNop())), map[string]string{"Authorization": "Bearer x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeTokenExpired, decodeError(t, w).Code)
	})

	t.Run("missing role", func(t *testing.T) {
		w := doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop(), models.RoleManager)), map[string]string{"Authorization": "Bearer x"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("authorized", func(t *testing.T) {
		w := doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop(), models.RoleUser)), map[string]string{"Authorization": "Bearer x"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}

func TestGinRequireRoles(t *testing.T) {
	verifier := &stubVerifier{claims: &models.Claims{UserID: uuid.New(), Roles: []string{models.RoleUser, models.RoleTrainer}}}
	loc := echoLocalizer{}
	header := map[string]string{"Authorization": "Bearer x"}

	w := doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop()), GinRequireRoles(loc, models.RoleTrainer)), header)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(newGinRouter(GinAuth(verifier, loc, zap.NewNop()), GinRequireRoles(loc, models.RoleAdmin)), header)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGinInternalAuth(t *testing.T) {
	loc := echoLocalizer{}

	r := newGinRouter(GinInternalAuth("static-secret", &stubVerifier{err: models.ErrTokenInvalid}, loc, zap.NewNop()))
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, map[string]string{InternalServiceTokenHeader: "static-secret"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, map[string]string{InternalServiceTokenHeader: "wrong"}).Code)

	r = newGinRouter(GinInternalAuth("", &stubVerifier{}, loc, zap.NewNop()))
	assert.Equal(t, http.StatusOK, doRequest(r, map[string]string{InternalServiceTokenHeader: "jwt"}).Code)
}

func TestEchoAuth(t *testing.T) {
	userID := uuid.New()
	verifier := &stubVerifier{claims: &models.Claims{UserID: userID, Roles: []string{models.RoleEmployee}}}
	loc := echoLocalizer{}

	e := echo.New()
	e.Use(EchoLocale())
	e.GET("/protected", func(c echo.Context) error {
		id, ok := EchoUserID(c)
		require.True(t, ok)
		return c.String(http.StatusOK, id.String())
	}, EchoAuth(verifier, loc, zap.NewNop()), EchoRequireRoles(loc, models.RoleEmployee))

	w := doRequest(e, map[string]string{"Authorization": "Bearer x"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	w = doRequest(e, map[string]string{"Authorization": "Basic x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
