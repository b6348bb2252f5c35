package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile - публичные данные пользователя в account-сервисе.
type Profile struct {
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TrainerProfile - описание тренера. Name и Surname подтягиваются из профиля.
type TrainerProfile struct {
	UserID          uuid.UUID `db:"user_id" json:"userId"`
	Name            string    `db:"name" json:"name"`
	Surname         string    `db:"surname" json:"surname"`
	Synopsis        string    `db:"synopsis" json:"synopsis"`
	Description     string    `db:"description" json:"description"`
	Specializations []string  `db:"specializations" json:"specializations"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
