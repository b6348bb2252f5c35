package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Типы пользовательских токенов.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims - полезная нагрузка access/refresh токена пользователя.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Roles     []string  `json:"roles"`
	TokenType string    `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// InterServiceClaims - полезная нагрузка токена для вызовов между сервисами.
type InterServiceClaims struct {
	ServiceName string `json:"service_name"`
	jwt.RegisteredClaims
}
