package messaging

import (
	"time"

	"github.com/google/uuid"
)

// UserRegisteredPayload публикует auth после регистрации. Account создает по нему профиль,
// почтовый сервис отправляет письмо с ConfirmationToken.
type UserRegisteredPayload struct {
	UserID            uuid.UUID `json:"user_id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	Phone             *string   `json:"phone,omitempty"`
	ConfirmationToken string    `json:"confirmation_token,omitempty"`
	Locale            string    `json:"locale"`
}

// UserRolesChangedPayload публикует auth, когда администратор меняет роли.
type UserRolesChangedPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
}

// NotificationKind - тип уведомления о тренировке.
type NotificationKind string

const (
	NotificationGroupTrainingCancelled NotificationKind = "GROUP_TRAINING_CANCELLED"
	NotificationPromotedFromReserve    NotificationKind = "PROMOTED_FROM_RESERVE"
	NotificationIndividualRequested    NotificationKind = "INDIVIDUAL_TRAINING_REQUESTED"
	NotificationIndividualAccepted     NotificationKind = "INDIVIDUAL_TRAINING_ACCEPTED"
	NotificationIndividualRejected     NotificationKind = "INDIVIDUAL_TRAINING_REJECTED"
	NotificationIndividualCancelled    NotificationKind = "INDIVIDUAL_TRAINING_CANCELLED"
)

// TrainingType различает групповые и персональные тренировки в уведомлениях.
type TrainingType string

const (
	TrainingTypeGroup      TrainingType = "GROUP"
	TrainingTypeIndividual TrainingType = "INDIVIDUAL"
)

// TrainingNotificationPayload - уведомление пользователю о тренировке.
type TrainingNotificationPayload struct {
	UserID       uuid.UUID        `json:"user_id"`
	Kind         NotificationKind `json:"kind"`
	TrainingID   uuid.UUID        `json:"training_id"`
	TrainingType TrainingType     `json:"training_type"`
	Title        string           `json:"title,omitempty"`
	StartsAt     time.Time        `json:"starts_at"`
}

// RoutingKey возвращает ключ маршрутизации для уведомления.
func (p TrainingNotificationPayload) RoutingKey() string {
	return RoutingKeyTrainingPrefix + string(p.Kind)
}
