package mocks

import (
	"context"

	"gym-server/notifications/internal/service"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.NotificationService = (*NotificationService)(nil)
	_ service.DeviceService       = (*DeviceService)(nil)
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Deliver(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type DeviceService struct {
	mock.Mock
}

func (m *DeviceService) Register(ctx context.Context, userID uuid.UUID, token, platform, locale string) (*models.DeviceToken, error) {
	args := m.Called(ctx, userID, token, platform, locale)
	device, _ := args.Get(0).(*models.DeviceToken)
	return device, args.Error(1)
}

func (m *DeviceService) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *DeviceService) List(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error) {
	args := m.Called(ctx, userID)
	devices, _ := args.Get(0).([]models.DeviceToken)
	return devices, args.Error(1)
}
