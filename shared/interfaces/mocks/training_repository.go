package mocks

import (
	"context"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// LocationRepository - мок interfaces.LocationRepository.
type LocationRepository struct {
	mock.Mock
}

func (m *LocationRepository) List(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]models.Location)
	return l, args.Error(1)
}
func (m *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*models.Location)
	return l, args.Error(1)
}
func (m *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}
func (m *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *LocationRepository) HasUpcomingTrainings(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

// GroupTrainingRepository - мок interfaces.GroupTrainingRepository.
type GroupTrainingRepository struct {
	mock.Mock
}

func (m *GroupTrainingRepository) Create(ctx context.Context, training *models.GroupTraining) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}
func (m *GroupTrainingRepository) Update(ctx context.Context, training *models.GroupTraining) ([]uuid.UUID, error) {
	args := m.Called(ctx, training)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}
func (m *GroupTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *GroupTrainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingRepository) List(ctx context.Context, from, to time.Time) ([]models.GroupTraining, error) {
	args := m.Called(ctx, from, to)
	t, _ := args.Get(0).([]models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, from time.Time) ([]models.GroupTraining, error) {
	args := m.Called(ctx, userID, from)
	t, _ := args.Get(0).([]models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingRepository) Participants(ctx context.Context, trainingID uuid.UUID) ([]models.GroupParticipant, error) {
	args := m.Called(ctx, trainingID)
	p, _ := args.Get(0).([]models.GroupParticipant)
	return p, args.Error(1)
}
func (m *GroupTrainingRepository) FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.GroupTraining, error) {
	args := m.Called(ctx, trainerIDs, locationID, start, end)
	t, _ := args.Get(0).([]models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingRepository) Enroll(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (models.ParticipantList, error) {
	args := m.Called(ctx, trainingID, userID, now)
	l, _ := args.Get(0).(models.ParticipantList)
	return l, args.Error(1)
}
func (m *GroupTrainingRepository) Leave(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (*uuid.UUID, error) {
	args := m.Called(ctx, trainingID, userID, now)
	id, _ := args.Get(0).(*uuid.UUID)
	return id, args.Error(1)
}

// IndividualTrainingRepository - мок interfaces.IndividualTrainingRepository.
type IndividualTrainingRepository struct {
	mock.Mock
}

func (m *IndividualTrainingRepository) Create(ctx context.Context, training *models.IndividualTraining) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}
func (m *IndividualTrainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.IndividualTraining, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.IndividualTrainingStatus, locationID *uuid.UUID) (*models.IndividualTraining, error) {
	args := m.Called(ctx, id, from, to, locationID)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingRepository) ListByClient(ctx context.Context, clientID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	args := m.Called(ctx, clientID, status)
	t, _ := args.Get(0).([]models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	args := m.Called(ctx, trainerID, status)
	t, _ := args.Get(0).([]models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingRepository) FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.IndividualTraining, error) {
	args := m.Called(ctx, trainerIDs, locationID, start, end)
	t, _ := args.Get(0).([]models.IndividualTraining)
	return t, args.Error(1)
}

// AuthServiceClient - мок interfaces.AuthServiceClient.
type AuthServiceClient struct {
	mock.Mock
}

func (m *AuthServiceClient) GetUserInfo(ctx context.Context, userID uuid.UUID) (*interfaces.UserInfo, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*interfaces.UserInfo)
	return u, args.Error(1)
}
