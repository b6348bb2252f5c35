package authutils

import (
	"context"
	"errors"
	"fmt"

	"gym-server/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWTVerifier проверяет токены, выпущенные auth-сервисом.
type JWTVerifier struct {
	jwtSecret []byte
	logger    *zap.Logger
}

// NewJWTVerifier создает верификатор. Если логгер nil, используется Noop.
func NewJWTVerifier(jwtSecret string, logger *zap.Logger) (*JWTVerifier, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JWTVerifier{
		jwtSecret: []byte(jwtSecret),
		logger:    logger.Named("JWTVerifier"),
	}, nil
}

// VerifyToken проверяет подпись и срок действия пользовательского токена и возвращает claims.
func (v *JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	log := v.logger.With(zap.String("tokenSnippet", tokenSnippet(tokenString)))
	claims := &models.Claims{}

	if err := v.parse(tokenString, claims); err != nil {
		log.Warn("Failed to parse or verify token", zap.Error(err))
		return nil, err
	}
	if claims.UserID == uuid.Nil {
		log.Warn("Token missing UserID")
		return nil, fmt.Errorf("%w: UserID missing", models.ErrTokenInvalid)
	}
	if claims.TokenType == models.TokenTypeRefresh {
		log.Warn("Refresh token used as access token", zap.Stringer("userID", claims.UserID))
		return nil, fmt.Errorf("%w: refresh token", models.ErrTokenInvalid)
	}

	log.Debug("Token verified", zap.Stringer("userID", claims.UserID), zap.Strings("roles", claims.Roles))
	return claims, nil
}

// VerifyInterServiceToken проверяет токен, которым сервисы подписывают внутренние вызовы.
func (v *JWTVerifier) VerifyInterServiceToken(ctx context.Context, tokenString string) (*models.InterServiceClaims, error) {
	claims := &models.InterServiceClaims{}
	if err := v.parse(tokenString, claims); err != nil {
		v.logger.Warn("Failed to verify inter-service token", zap.Error(err))
		return nil, err
	}
	if claims.ServiceName == "" {
		return nil, fmt.Errorf("%w: service name missing", models.ErrTokenInvalid)
	}
	return claims, nil
}

func (v *JWTVerifier) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return models.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.ErrTokenInvalid
		}
		return fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return models.ErrTokenInvalid
	}
	return nil
}

// tokenSnippet возвращает безопасную для логов часть токена.
func tokenSnippet(tokenString string) string {
	const limit = 15
	if len(tokenString) > limit {
		return tokenString[:limit] + "..."
	}
	return tokenString
}
