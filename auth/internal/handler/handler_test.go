package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"gym-server/auth/internal/config"
	"gym-server/auth/internal/mocks"
	"gym-server/auth/internal/service"
	"gym-server/shared/authutils"
	"gym-server/shared/i18n"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testInterServiceSecret = "static-secret"

var (
	translatorOnce sync.Once
	testTranslator *i18n.Translator
)

func translator(t *testing.T) *i18n.Translator {
	t.Helper()
	translatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		require.True(t, ok)
		tr, err := i18n.NewTranslator(v)
		require.NoError(t, err)
		testTranslator = tr
	})
	return testTranslator
}

func setupRouter(t *testing.T, svc *mocks.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	internalVerifier, err := authutils.NewJWTVerifier(testInterServiceSecret, zap.NewNop())
	require.NoError(t, err)

	h := NewAuthHandler(svc, translator(t), internalVerifier, &config.Config{InterServiceSecret: testInterServiceSecret}, zap.NewNop())
	router := gin.New()
	router.Use(sharedMiddleware.GinLocale())
	h.RegisterRoutes(router, nil)
	return router
}

func doJSON(router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		userID := uuid.New()
		svc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Email == "john@example.com" && in.Locale == "ru"
		})).Return(&models.User{ID: userID, Email: "john@example.com", Name: "John", Surname: "Doe", Roles: []string{models.RoleUser}}, nil)

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email": "john@example.com", "password": "password123", "name": "John", "surname": "Doe",
		}, map[string]string{"Accept-Language": "ru-RU,ru;q=0.9"})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp userResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID.String(), resp.ID)
		svc.AssertExpectations(t)
	})

	t.Run("weak password gives localized field details", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email": "john@example.com", "password": "short", "name": "John", "surname": "Doe",
		}, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, models.ErrCodeValidation, resp.Code)
		assert.Contains(t, resp.Details, "password")
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, models.ErrEmailAlreadyExists)

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email": "john@example.com", "password": "password123", "name": "John", "surname": "Doe",
		}, nil)

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, models.ErrCodeDuplicateEmail, decodeError(t, w).Code)
	})
}

func TestLogin(t *testing.T) {
	svc := new(mocks.AuthService)
	router := setupRouter(t, svc)
	svc.On("Login", mock.Anything, "john@example.com", "password123").
		Return(&models.TokenDetails{AccessToken: "a", RefreshToken: "r"}, nil)
	svc.On("Login", mock.Anything, "john@example.com", "bad-password1").
		Return(nil, models.ErrInvalidCredentials)

	w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "john@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var td models.TokenDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &td))
	assert.Equal(t, "a", td.AccessToken)

	w = doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "john@example.com", "password": "bad-password1"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeWrongCredentials, decodeError(t, w).Code)
}

func TestConfirm(t *testing.T) {
	svc := new(mocks.AuthService)
	router := setupRouter(t, svc)
	svc.On("Confirm", mock.Anything, "good").Return(nil)
	svc.On("Confirm", mock.Anything, "old").Return(models.ErrTokenExpired)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/auth/confirm?token=good", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodGet, "/auth/confirm?token=old", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/auth/confirm", nil, nil).Code)
}

func TestProtectedRoutes(t *testing.T) {
	userID := uuid.New()
	claims := &models.Claims{UserID: userID, Roles: []string{models.RoleUser}}
	claims.ID = "access-uuid"

	t.Run("me", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "tok").Return(claims, nil)
		svc.On("GetUser", mock.Anything, userID).Return(&models.User{ID: userID, Email: "john@example.com"}, nil)

		w := doJSON(router, http.MethodGet, "/api/me", nil, map[string]string{"Authorization": "Bearer tok"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "john@example.com")
	})

	t.Run("missing token", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		w := doJSON(router, http.MethodGet, "/api/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "tok").Return(nil, models.ErrTokenInvalid)
		w := doJSON(router, http.MethodGet, "/api/me", nil, map[string]string{"Authorization": "Bearer tok"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeTokenInvalid, decodeError(t, w).Code)
	})

	t.Run("logout", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "tok").Return(claims, nil)
		svc.On("ParseRefreshUUID", "refresh").Return("refresh-uuid", nil)
		svc.On("Logout", mock.Anything, userID, "access-uuid", "refresh-uuid").Return(nil)

		w := doJSON(router, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": "refresh"}, map[string]string{"Authorization": "Bearer tok"})
		require.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("change password same as old", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "tok").Return(claims, nil)

		w := doJSON(router, http.MethodPut, "/api/me/password",
			map[string]string{"old_password": "password123", "new_password": "password123"},
			map[string]string{"Authorization": "Bearer tok"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)
	})
}

func TestAdminRoutes(t *testing.T) {
	adminID := uuid.New()
	targetID := uuid.New()
	adminClaims := &models.Claims{UserID: adminID, Roles: []string{models.RoleUser, models.RoleAdmin}}
	userClaims := &models.Claims{UserID: uuid.New(), Roles: []string{models.RoleUser}}

	t.Run("non admin forbidden", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "user").Return(userClaims, nil)

		w := doJSON(router, http.MethodGet, "/admin/users", nil, map[string]string{"Authorization": "Bearer user"})
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("update roles", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "admin").Return(adminClaims, nil)
		svc.On("UpdateRoles", mock.Anything, targetID, []string{models.RoleTrainer}).
			Return([]string{models.RoleUser, models.RoleTrainer}, nil)

		w := doJSON(router, http.MethodPut, "/admin/users/"+targetID.String()+"/roles",
			map[string][]string{"roles": {models.RoleTrainer}}, map[string]string{"Authorization": "Bearer admin"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), models.RoleTrainer)
	})

	t.Run("ban self rejected", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "admin").Return(adminClaims, nil)

		w := doJSON(router, http.MethodPost, "/admin/users/"+adminID.String()+"/ban", nil, map[string]string{"Authorization": "Bearer admin"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "BanUser", mock.Anything, mock.Anything)
	})

	t.Run("ban", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "admin").Return(adminClaims, nil)
		svc.On("BanUser", mock.Anything, targetID).Return(nil)

		w := doJSON(router, http.MethodPost, "/admin/users/"+targetID.String()+"/ban", nil, map[string]string{"Authorization": "Bearer admin"})
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("bad user id", func(t *testing.T) {
		svc := new(mocks.AuthService)
		router := setupRouter(t, svc)
		svc.On("VerifyAccessToken", mock.Anything, "admin").Return(adminClaims, nil)

		w := doJSON(router, http.MethodDelete, "/admin/users/not-a-uuid/ban", nil, map[string]string{"Authorization": "Bearer admin"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInternalRoutes(t *testing.T) {
	svc := new(mocks.AuthService)
	router := setupRouter(t, svc)
	userID := uuid.New()
	svc.On("GetUser", mock.Anything, userID).Return(&models.User{ID: userID, Roles: []string{models.RoleUser, models.RoleTrainer}}, nil)

	w := doJSON(router, http.MethodGet, "/internal/auth/users/"+userID.String(), nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/internal/auth/users/"+userID.String(), nil,
		map[string]string{sharedMiddleware.InternalServiceTokenHeader: testInterServiceSecret})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.RoleTrainer)
}
