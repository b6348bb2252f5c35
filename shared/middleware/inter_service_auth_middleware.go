package middleware

import (
	"crypto/subtle"
	"net/http"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InternalServiceTokenHeader - заголовок с межсервисным секретом или JWT.
const InternalServiceTokenHeader = "X-Internal-Service-Token"

// GinInternalAuth пропускает запрос, если заголовок совпадает со статическим секретом
// или содержит валидный межсервисный JWT.
func GinInternalAuth(staticSecret string, verifier interfaces.TokenVerifier, loc Localizer, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("InternalAuth")
	return func(c *gin.Context) {
		token := c.GetHeader(InternalServiceTokenHeader)
		if token == "" {
			log.Warn("Internal service token header missing", zap.String("path", c.Request.URL.Path))
			AbortGin(c, loc, http.StatusUnauthorized, models.ErrCodeUnauthorized)
			return
		}

		if staticSecret != "" && subtle.ConstantTimeCompare([]byte(token), []byte(staticSecret)) == 1 {
			c.Next()
			return
		}

		claims, err := verifier.VerifyInterServiceToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("Inter-service token verification failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			AbortGin(c, loc, http.StatusUnauthorized, models.ErrCodeTokenInvalid)
			return
		}

		log.Debug("Inter-service request authorized", zap.String("sourceService", claims.ServiceName))
		c.Next()
	}
}
