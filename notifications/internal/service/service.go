// Package service доставляет уведомления о тренировках на устройства пользователей.
package service

import (
	"context"
	"strings"

	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PushNotification содержит видимые части push-сообщения.
type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PlatformSender отправляет уведомление на одну платформу (FCM/APNS).
// Возвращает токены, которые провайдер признал недействительными.
type PlatformSender interface {
	Send(ctx context.Context, tokens []string, notification PushNotification, data map[string]string) (invalid []string, err error)
	Platform() string // "android" или "ios"
}

// NotificationService доставляет уведомление о тренировке.
type NotificationService interface {
	Deliver(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload) error
}

// DeviceService управляет токенами устройств пользователя.
type DeviceService interface {
	Register(ctx context.Context, userID uuid.UUID, token, platform, locale string) (*models.DeviceToken, error)
	Unregister(ctx context.Context, userID uuid.UUID, token string) error
	List(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error)
}

type deviceService struct {
	tokens interfaces.DeviceTokenRepository
	logger *zap.Logger
}

func NewDeviceService(tokens interfaces.DeviceTokenRepository, logger *zap.Logger) DeviceService {
	return &deviceService{tokens: tokens, logger: logger.Named("DeviceService")}
}

func (s *deviceService) Register(ctx context.Context, userID uuid.UUID, token, platform, locale string) (*models.DeviceToken, error) {
	token = strings.TrimSpace(token)
	if token == "" || (platform != models.PlatformAndroid && platform != models.PlatformIOS) {
		return nil, models.ErrInvalidInput
	}
	if locale != i18n.LocaleRU {
		locale = i18n.DefaultLocale
	}
	device := &models.DeviceToken{Token: token, UserID: userID, Platform: platform, Locale: locale}
	if err := s.tokens.Save(ctx, device); err != nil {
		return nil, err
	}
	s.logger.Info("Device token registered", zap.Stringer("userID", userID), zap.String("platform", platform))
	return device, nil
}

func (s *deviceService) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.ErrInvalidInput
	}
	return s.tokens.Delete(ctx, userID, token)
}

func (s *deviceService) List(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error) {
	return s.tokens.ListByUser(ctx, userID)
}
