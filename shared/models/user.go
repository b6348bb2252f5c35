package models

import (
	"time"

	"github.com/google/uuid"
)

// User - учетная запись в auth-сервисе.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Surname      string    `db:"surname" json:"surname"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Roles        []string  `db:"roles" json:"roles"`
	Enabled      bool      `db:"enabled" json:"enabled"`
	IsBanned     bool      `db:"is_banned" json:"isBanned"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ConfirmationToken подтверждает email после регистрации.
type ConfirmationToken struct {
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
