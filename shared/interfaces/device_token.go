package interfaces

import (
	"context"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// DeviceTokenRepository хранит токены устройств для push-уведомлений.
type DeviceTokenRepository interface {
	// Save сохраняет токен или переназначает его пользователю (токен уникален).
	Save(ctx context.Context, token *models.DeviceToken) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error)
	// Delete удаляет токен пользователя. Нет такого токена - ErrDeviceTokenNotFound.
	Delete(ctx context.Context, userID uuid.UUID, token string) error
	// DeleteTokens удаляет токены, отвергнутые FCM/APNS, возвращает число удаленных.
	DeleteTokens(ctx context.Context, tokens []string) (int64, error)
}
