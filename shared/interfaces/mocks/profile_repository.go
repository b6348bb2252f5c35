package mocks

import (
	"context"

	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProfileRepository - мок interfaces.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}
func (m *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, name, surname string, phone *string) (*models.Profile, error) {
	args := m.Called(ctx, userID, name, surname, phone)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

// TrainerProfileRepository - мок interfaces.TrainerProfileRepository.
type TrainerProfileRepository struct {
	mock.Mock
}

func (m *TrainerProfileRepository) Ensure(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *TrainerProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *TrainerProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*models.TrainerProfile)
	return t, args.Error(1)
}
func (m *TrainerProfileRepository) List(ctx context.Context) ([]models.TrainerProfile, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]models.TrainerProfile)
	return t, args.Error(1)
}
func (m *TrainerProfileRepository) Update(ctx context.Context, profile *models.TrainerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
