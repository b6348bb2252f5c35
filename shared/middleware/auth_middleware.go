package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GinAuth проверяет Bearer-токен и роли. Пустой requiredRoles пускает любого аутентифицированного.
// Отзыв токена не проверяется, за это отвечает auth-сервис.
func GinAuth(verifier interfaces.TokenVerifier, loc Localizer, logger *zap.Logger, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		claims, status, code := authenticate(c.Request, verifier, log, requiredRoles)
		if claims == nil {
			AbortGin(c, loc, status, code)
			return
		}

		c.Set(models.CtxKeyUserID, claims.UserID)
		c.Set(models.CtxKeyRoles, claims.Roles)
		c.Request = c.Request.WithContext(models.WithIdentity(c.Request.Context(), claims.UserID, claims.Roles))
		c.Next()
	}
}

// EchoAuth - вариант GinAuth для echo.
func EchoAuth(verifier interfaces.TokenVerifier, loc Localizer, logger *zap.Logger, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.With(zap.String("path", c.Request().URL.Path))

			claims, status, code := authenticate(c.Request(), verifier, log, requiredRoles)
			if claims == nil {
				return EchoError(c, loc, status, code)
			}

			c.Set(models.CtxKeyUserID, claims.UserID)
			c.Set(models.CtxKeyRoles, claims.Roles)
			c.SetRequest(c.Request().WithContext(models.WithIdentity(c.Request().Context(), claims.UserID, claims.Roles)))
			return next(c)
		}
	}
}

// GinRequireRoles проверяет роли после GinAuth.
func GinRequireRoles(loc Localizer, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.HasAnyRole(GinRoles(c), roles...) {
			AbortGin(c, loc, http.StatusForbidden, models.ErrCodeForbidden)
			return
		}
		c.Next()
	}
}

// EchoRequireRoles проверяет роли после EchoAuth.
func EchoRequireRoles(loc Localizer, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !models.HasAnyRole(EchoRoles(c), roles...) {
				return EchoError(c, loc, http.StatusForbidden, models.ErrCodeForbidden)
			}
			return next(c)
		}
	}
}

// GinUserID возвращает ID пользователя, выставленный GinAuth.
func GinUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(models.CtxKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GinRoles(c *gin.Context) []string {
	return c.GetStringSlice(models.CtxKeyRoles)
}

func EchoUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(models.CtxKeyUserID).(uuid.UUID)
	return id, ok
}

func EchoRoles(c echo.Context) []string {
	roles, _ := c.Get(models.CtxKeyRoles).([]string)
	return roles
}

// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func authenticate(r *http.Request, verifier interfaces.TokenVerifier, log *zap.Logger, requiredRoles []string) (*models.Claims, int, string) {
	tokenString, ok := BearerToken(r)
	if !ok {
		log.Debug("Authorization header missing or malformed")
		return nil, http.StatusUnauthorized, models.ErrCodeUnauthorized
	}

	claims, err := verifier.VerifyToken(r.Context(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTokenExpired):
			return nil, http.StatusUnauthorized, models.ErrCodeTokenExpired
		case errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenInvalid):
			log.Warn("Token verification failed", zap.Error(err))
			return nil, http.StatusUnauthorized, models.ErrCodeTokenInvalid
		default:
			log.Error("Unexpected token verification error", zap.Error(err))
			return nil, http.StatusInternalServerError, models.ErrCodeInternal
		}
	}

	if !models.HasAnyRole(claims.Roles, requiredRoles...) {
		log.Warn("User does not have required role",
			zap.Stringer("userID", claims.UserID),
			zap.Strings("userRoles", claims.Roles),
			zap.Strings("requiredRoles", requiredRoles),
		)
		return nil, http.StatusForbidden, models.ErrCodeForbidden
	}

	log.Debug("User authorized", zap.Stringer("userID", claims.UserID), zap.Strings("roles", claims.Roles))
	return claims, 0, ""
}
