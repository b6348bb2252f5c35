package interfaces

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// UserRepository - учетные записи пользователей (PostgreSQL).
type UserRepository interface {
	// CreateUser вставляет пользователя. Дубликат email -> models.ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID возвращает models.ErrUserNotFound, если пользователя нет.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUserByEmail возвращает models.ErrUserNotFound, если пользователя нет.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers возвращает страницу пользователей и курсор следующей страницы.
	ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error)

	SetUserBanStatus(ctx context.Context, userID uuid.UUID, isBanned bool) error
	SetEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error
	UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) error
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newPasswordHash string) error
}

// ConfirmationTokenRepository - токены подтверждения email.
type ConfirmationTokenRepository interface {
	Create(ctx context.Context, token *models.ConfirmationToken) error
	// Get возвращает models.ErrTokenNotFound, если токена нет.
	Get(ctx context.Context, token string) (*models.ConfirmationToken, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired удаляет токены, истекшие до now. Возвращает число удаленных.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
