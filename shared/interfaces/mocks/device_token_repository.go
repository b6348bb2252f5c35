package mocks

import (
	"context"

	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// DeviceTokenRepository - мок interfaces.DeviceTokenRepository.
type DeviceTokenRepository struct {
	mock.Mock
}

func (m *DeviceTokenRepository) Save(ctx context.Context, token *models.DeviceToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *DeviceTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]models.DeviceToken)
	return tokens, args.Error(1)
}

func (m *DeviceTokenRepository) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *DeviceTokenRepository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	args := m.Called(ctx, tokens)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
