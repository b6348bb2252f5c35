package interfaces

import (
	"context"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// TokenRepository хранит выданные токены (Redis), чтобы их можно было отозвать.
type TokenRepository interface {
	// SetToken сохраняет access/refresh UUID с TTL, равным сроку жизни токенов.
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error

	// DeleteTokens удаляет указанные UUID. Возвращает число удаленных ключей.
	DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error)

	// GetUserIDByAccessUUID возвращает models.ErrTokenNotFound, если токен отозван или истек.
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)

	// GetUserIDByRefreshUUID возвращает models.ErrTokenNotFound, если токен отозван или истек.
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)

	// ConsumeRefreshUUID атомарно забирает refresh UUID: из двух параллельных вызовов
	// успешен только один, второй получает models.ErrTokenNotFound.
	ConsumeRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)

	// DeleteTokensByUserID удаляет все токены пользователя.
	DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
