package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// UserInfo - данные пользователя, которые auth отдает другим сервисам.
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Roles    []string  `json:"roles"`
	Enabled  bool      `json:"enabled"`
	IsBanned bool      `json:"isBanned"`
}

// AuthServiceClient - внутренний API auth-сервиса.
type AuthServiceClient interface {
	// GetUserInfo возвращает models.ErrUserNotFound для неизвестного пользователя.
	GetUserInfo(ctx context.Context, userID uuid.UUID) (*UserInfo, error)
}
