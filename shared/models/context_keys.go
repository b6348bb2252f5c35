package models

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// UserContextKey хранит uuid.UUID пользователя в context.Context запроса.
	UserContextKey contextKey = "userID"
	// RolesContextKey хранит []string ролей.
	RolesContextKey contextKey = "userRoles"
	// LocaleContextKey хранит выбранную локаль ответа.
	LocaleContextKey contextKey = "locale"
)

// Ключи для gin.Context / echo.Context.
const (
	CtxKeyUserID = "user_id"
	CtxKeyRoles  = "user_roles"
	CtxKeyLocale = "locale"
)

// GetUserIDFromContext извлекает UserID из контекста.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserContextKey).(uuid.UUID)
	return userID, ok
}

// GetRolesFromContext извлекает роли из контекста.
func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesContextKey).([]string)
	return roles, ok
}

// WithIdentity кладет пользователя и его роли в контекст.
func WithIdentity(ctx context.Context, userID uuid.UUID, roles []string) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, userID)
	return context.WithValue(ctx, RolesContextKey, roles)
}
