package service

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// RegisterInput - данные регистрации.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Phone    *string
	Locale   string
}

// AuthService defines the interface for authentication and authorization logic.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Confirm(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*models.TokenDetails, error)
	Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error)
	VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error)
	// ParseRefreshUUID достает jti из refresh-токена (подпись проверяется, срок - нет).
	ParseRefreshUUID(refreshToken string) (string, error)

	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// Администрирование
	ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error)
	UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) ([]string, error)
	BanUser(ctx context.Context, userID uuid.UUID) error
	UnbanUser(ctx context.Context, userID uuid.UUID) error

	// Межсервисная авторизация
	GenerateInterServiceToken(ctx context.Context, serviceName string) (string, error)
	VerifyInterServiceToken(ctx context.Context, tokenString string) (string, error)

	// CleanupExpiredConfirmations удаляет просроченные токены подтверждения.
	CleanupExpiredConfirmations(ctx context.Context, now time.Time) (int64, error)
}
