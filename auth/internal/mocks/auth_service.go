package mocks

import (
	"context"
	"time"

	"gym-server/auth/internal/service"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AuthService - мок service.AuthService.
type AuthService struct {
	mock.Mock
}

var _ service.AuthService = (*AuthService)(nil)

func (m *AuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *AuthService) Confirm(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *AuthService) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	args := m.Called(ctx, email, password)
	td, _ := args.Get(0).(*models.TokenDetails)
	return td, args.Error(1)
}
func (m *AuthService) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error {
	args := m.Called(ctx, userID, accessUUID, refreshUUID)
	return args.Error(0)
}
func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	args := m.Called(ctx, refreshToken)
	td, _ := args.Get(0).(*models.TokenDetails)
	return td, args.Error(1)
}
func (m *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	args := m.Called(ctx, tokenString)
	c, _ := args.Get(0).(*models.Claims)
	return c, args.Error(1)
}
func (m *AuthService) ParseRefreshUUID(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}
func (m *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
func (m *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}
func (m *AuthService) ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	users, _ := args.Get(0).([]models.User)
	return users, args.String(1), args.Error(2)
}
func (m *AuthService) UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) ([]string, error) {
	args := m.Called(ctx, userID, roles)
	r, _ := args.Get(0).([]string)
	return r, args.Error(1)
}
func (m *AuthService) BanUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *AuthService) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *AuthService) GenerateInterServiceToken(ctx context.Context, serviceName string) (string, error) {
	args := m.Called(ctx, serviceName)
	return args.String(0), args.Error(1)
}
func (m *AuthService) VerifyInterServiceToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}
func (m *AuthService) CleanupExpiredConfirmations(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
