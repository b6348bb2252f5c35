package interfaces

import (
	"context"

	"gym-server/shared/models"
)

// TokenVerifier проверяет JWT, выпущенные auth-сервисом.
type TokenVerifier interface {
	// VerifyToken проверяет пользовательский access-токен и возвращает его claims.
	VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error)
	// VerifyInterServiceToken проверяет межсервисный токен (подпись, срок, имя сервиса).
	VerifyInterServiceToken(ctx context.Context, tokenString string) (*models.InterServiceClaims, error)
}
