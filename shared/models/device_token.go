package models

import (
	"time"

	"github.com/google/uuid"
)

// Платформы устройств.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// DeviceToken - токен push-уведомлений (FCM или APNS), привязанный к пользователю.
type DeviceToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Platform  string    `json:"platform" db:"platform"`
	Locale    string    `json:"locale" db:"locale"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
