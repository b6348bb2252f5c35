package handler

import (
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ctxKeyAccessUUID = "access_uuid"

// AuthMiddleware проверяет access-токен вместе с его наличием в Redis,
// поэтому отозванные токены отклоняются сразу.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := sharedMiddleware.BearerToken(c.Request)
		if !ok {
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			sharedMiddleware.AbortGin(c, h.translator, http.StatusUnauthorized, models.ErrCodeUnauthorized)
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			h.logger.Debug("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			h.handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("access", "success").Inc()
		c.Set(models.CtxKeyUserID, claims.UserID)
		c.Set(models.CtxKeyRoles, claims.Roles)
		c.Set(ctxKeyAccessUUID, claims.ID)
		c.Request = c.Request.WithContext(models.WithIdentity(c.Request.Context(), claims.UserID, claims.Roles))
		c.Next()
	}
}
