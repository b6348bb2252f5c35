package mocks

import (
	"context"

	"gym-server/account/internal/service"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AccountService - мок service.AccountService.
type AccountService struct {
	mock.Mock
}

var _ service.AccountService = (*AccountService)(nil)

func (m *AccountService) CreateProfile(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *AccountService) SyncTrainerRole(ctx context.Context, userID uuid.UUID, roles []string) error {
	args := m.Called(ctx, userID, roles)
	return args.Error(0)
}

func (m *AccountService) GetMyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *AccountService) UpdateMyProfile(ctx context.Context, userID uuid.UUID, in service.UpdateProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *AccountService) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]models.TrainerProfile)
	return t, args.Error(1)
}

func (m *AccountService) GetTrainer(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*models.TrainerProfile)
	return t, args.Error(1)
}

func (m *AccountService) UpdateMyTrainerProfile(ctx context.Context, userID uuid.UUID, in service.TrainerProfileInput) (*models.TrainerProfile, error) {
	args := m.Called(ctx, userID, in)
	t, _ := args.Get(0).(*models.TrainerProfile)
	return t, args.Error(1)
}
