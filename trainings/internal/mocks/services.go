package mocks

import (
	"context"
	"time"

	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"
	"gym-server/trainings/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.Notifier                  = (*Notifier)(nil)
	_ service.LocationService           = (*LocationService)(nil)
	_ service.GroupTrainingService      = (*GroupTrainingService)(nil)
	_ service.IndividualTrainingService = (*IndividualTrainingService)(nil)
)

// Notifier - мок service.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload) {
	m.Called(ctx, payload)
}

// LocationService - мок service.LocationService.
type LocationService struct {
	mock.Mock
}

func (m *LocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]models.Location)
	return l, args.Error(1)
}
func (m *LocationService) CreateLocation(ctx context.Context, name string) (*models.Location, error) {
	args := m.Called(ctx, name)
	l, _ := args.Get(0).(*models.Location)
	return l, args.Error(1)
}
func (m *LocationService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GroupTrainingService - мок service.GroupTrainingService.
type GroupTrainingService struct {
	mock.Mock
}

func (m *GroupTrainingService) Create(ctx context.Context, in service.GroupTrainingInput) (*models.GroupTraining, error) {
	args := m.Called(ctx, in)
	t, _ := args.Get(0).(*models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingService) Update(ctx context.Context, id uuid.UUID, in service.GroupTrainingInput) (*models.GroupTraining, error) {
	args := m.Called(ctx, id, in)
	t, _ := args.Get(0).(*models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *GroupTrainingService) List(ctx context.Context, from, to *time.Time) ([]models.GroupTraining, error) {
	args := m.Called(ctx, from, to)
	t, _ := args.Get(0).([]models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingService) Get(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.GroupTraining)
	return t, args.Error(1)
}
func (m *GroupTrainingService) Enroll(ctx context.Context, actor models.Actor, id uuid.UUID) (models.ParticipantList, error) {
	args := m.Called(ctx, actor, id)
	l, _ := args.Get(0).(models.ParticipantList)
	return l, args.Error(1)
}
func (m *GroupTrainingService) Leave(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
func (m *GroupTrainingService) Participants(ctx context.Context, actor models.Actor, id uuid.UUID) ([]models.GroupParticipant, error) {
	args := m.Called(ctx, actor, id)
	p, _ := args.Get(0).([]models.GroupParticipant)
	return p, args.Error(1)
}
func (m *GroupTrainingService) MyTrainings(ctx context.Context, actor models.Actor) ([]models.GroupTraining, error) {
	args := m.Called(ctx, actor)
	t, _ := args.Get(0).([]models.GroupTraining)
	return t, args.Error(1)
}

// IndividualTrainingService - мок service.IndividualTrainingService.
type IndividualTrainingService struct {
	mock.Mock
}

func (m *IndividualTrainingService) Request(ctx context.Context, actor models.Actor, in service.IndividualRequestInput) (*models.IndividualTraining, error) {
	args := m.Called(ctx, actor, in)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingService) Accept(ctx context.Context, actor models.Actor, id, locationID uuid.UUID) (*models.IndividualTraining, error) {
	args := m.Called(ctx, actor, id, locationID)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingService) Reject(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error) {
	args := m.Called(ctx, actor, id)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingService) Cancel(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error) {
	args := m.Called(ctx, actor, id)
	t, _ := args.Get(0).(*models.IndividualTraining)
	return t, args.Error(1)
}
func (m *IndividualTrainingService) ListMine(ctx context.Context, actor models.Actor, asTrainer bool, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	args := m.Called(ctx, actor, asTrainer, status)
	t, _ := args.Get(0).([]models.IndividualTraining)
	return t, args.Error(1)
}
