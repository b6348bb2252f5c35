package mocks

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository - мок interfaces.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *UserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	users, _ := args.Get(0).([]models.User)
	return users, args.String(1), args.Error(2)
}
func (m *UserRepository) SetUserBanStatus(ctx context.Context, userID uuid.UUID, isBanned bool) error {
	args := m.Called(ctx, userID, isBanned)
	return args.Error(0)
}
func (m *UserRepository) SetEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}
func (m *UserRepository) UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	args := m.Called(ctx, userID, roles)
	return args.Error(0)
}
func (m *UserRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	args := m.Called(ctx, userID, newPasswordHash)
	return args.Error(0)
}

// ConfirmationTokenRepository - мок interfaces.ConfirmationTokenRepository.
type ConfirmationTokenRepository struct {
	mock.Mock
}

func (m *ConfirmationTokenRepository) Create(ctx context.Context, token *models.ConfirmationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *ConfirmationTokenRepository) Get(ctx context.Context, token string) (*models.ConfirmationToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*models.ConfirmationToken)
	return t, args.Error(1)
}
func (m *ConfirmationTokenRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *ConfirmationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
