package service

import (
	"context"
	"strings"
	"time"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"
	"gym-server/shared/utils"
	"gym-server/trainings/internal/collision"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GroupTrainingInput - поля групповой тренировки при создании и изменении.
type GroupTrainingInput struct {
	Title            string
	TrainerIDs       []uuid.UUID
	LocationID       uuid.UUID
	StartsAt         time.Time
	EndsAt           time.Time
	ParticipantLimit int
}

type GroupTrainingService interface {
	Create(ctx context.Context, in GroupTrainingInput) (*models.GroupTraining, error)
	Update(ctx context.Context, id uuid.UUID, in GroupTrainingInput) (*models.GroupTraining, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List без границ возвращает окно от начала текущего дня.
	List(ctx context.Context, from, to *time.Time) ([]models.GroupTraining, error)
	Get(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error)
	Enroll(ctx context.Context, actor models.Actor, id uuid.UUID) (models.ParticipantList, error)
	Leave(ctx context.Context, actor models.Actor, id uuid.UUID) error
	Participants(ctx context.Context, actor models.Actor, id uuid.UUID) ([]models.GroupParticipant, error)
	MyTrainings(ctx context.Context, actor models.Actor) ([]models.GroupTraining, error)
}

type groupTrainingServiceImpl struct {
	groups        interfaces.GroupTrainingRepository
	locations     interfaces.LocationRepository
	collisions    *collision.Validator
	auth          interfaces.AuthServiceClient
	notifier      Notifier
	locker        interfaces.ScheduleLocker
	maxLimit      int
	defaultWindow time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

func NewGroupTrainingService(
	groups interfaces.GroupTrainingRepository,
	locations interfaces.LocationRepository,
	collisions *collision.Validator,
	auth interfaces.AuthServiceClient,
	notifier Notifier,
	maxLimit int,
	defaultWindow time.Duration,
	logger *zap.Logger,
	opts ...Option,
) GroupTrainingService {
	cfg := applyOptions(opts)
	return &groupTrainingServiceImpl{
		groups:        groups,
		locations:     locations,
		collisions:    collisions,
		auth:          auth,
		notifier:      notifier,
		locker:        cfg.locker,
		maxLimit:      maxLimit,
		defaultWindow: defaultWindow,
		now:           cfg.now,
		logger:        logger.Named("GroupTrainingService"),
	}
}

func (s *groupTrainingServiceImpl) Create(ctx context.Context, in GroupTrainingInput) (*models.GroupTraining, error) {
	training, err := s.buildTraining(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, training); err != nil {
		return nil, err
	}
	err = s.locker.WithScheduleLock(ctx, scheduleKeys(training.TrainerIDs, &training.LocationID), func(ctx context.Context) error {
		if err := s.checkCollisions(ctx, training, nil); err != nil {
			return err
		}
		return s.groups.Create(ctx, training)
	})
	if err != nil {
		return nil, err
	}
	return training, nil
}

func (s *groupTrainingServiceImpl) Update(ctx context.Context, id uuid.UUID, in GroupTrainingInput) (*models.GroupTraining, error) {
	existing, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.StartsAt.After(s.now()) {
		return nil, models.ErrTrainingInPast
	}

	training, err := s.buildTraining(in)
	if err != nil {
		return nil, err
	}
	training.ID = id
	if training.ParticipantLimit < existing.BasicCount {
		return nil, models.ErrLimitBelowParticipants
	}
	if err := s.checkParticipants(ctx, training); err != nil {
		return nil, err
	}

	var promoted []uuid.UUID
	err = s.locker.WithScheduleLock(ctx, scheduleKeys(training.TrainerIDs, &training.LocationID), func(ctx context.Context) error {
		if err := s.checkCollisions(ctx, training, &id); err != nil {
			return err
		}
		ids, err := s.groups.Update(ctx, training)
		promoted = ids
		return err
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, userID := range promoted {
		s.notify(ctx, userID, sharedMessaging.NotificationPromotedFromReserve, updated)
	}
	return updated, nil
}

func (s *groupTrainingServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	training, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	participants, err := s.groups.Participants(ctx, id)
	if err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	for _, p := range participants {
		s.notify(ctx, p.UserID, sharedMessaging.NotificationGroupTrainingCancelled, training)
	}
	s.logger.Info("Group training cancelled", zap.Stringer("trainingID", id), zap.Int("notified", len(participants)))
	return nil
}

func (s *groupTrainingServiceImpl) List(ctx context.Context, from, to *time.Time) ([]models.GroupTraining, error) {
	start := utils.TruncateToDate(s.now())
	if from != nil {
		start = *from
	}
	end := start.Add(s.defaultWindow)
	if to != nil {
		end = *to
	}
	if !start.Before(end) {
		return nil, models.ErrInvalidTimeRange
	}
	return s.groups.List(ctx, start, end)
}

func (s *groupTrainingServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *groupTrainingServiceImpl) Enroll(ctx context.Context, actor models.Actor, id uuid.UUID) (models.ParticipantList, error) {
	return s.groups.Enroll(ctx, id, actor.UserID, s.now())
}

func (s *groupTrainingServiceImpl) Leave(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	training, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	promoted, err := s.groups.Leave(ctx, id, actor.UserID, s.now())
	if err != nil {
		return err
	}
	if promoted != nil {
		s.notify(ctx, *promoted, sharedMessaging.NotificationPromotedFromReserve, training)
	}
	return nil
}

func (s *groupTrainingServiceImpl) Participants(ctx context.Context, actor models.Actor, id uuid.UUID) ([]models.GroupParticipant, error) {
	training, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.HasAnyRole(actor.Roles, models.RoleManager, models.RoleAdmin) && !training.HasTrainer(actor.UserID) {
		return nil, models.ErrForbidden
	}
	return s.groups.Participants(ctx, id)
}

func (s *groupTrainingServiceImpl) MyTrainings(ctx context.Context, actor models.Actor) ([]models.GroupTraining, error) {
	return s.groups.ListByParticipant(ctx, actor.UserID, s.now())
}

func (s *groupTrainingServiceImpl) buildTraining(in GroupTrainingInput) (*models.GroupTraining, error) {
	title := strings.TrimSpace(in.Title)
	trainers := uniqueIDs(in.TrainerIDs)
	if title == "" || len(trainers) == 0 || in.LocationID == uuid.Nil {
		return nil, models.ErrInvalidInput
	}
	if in.ParticipantLimit < 1 || (s.maxLimit > 0 && in.ParticipantLimit > s.maxLimit) {
		return nil, models.ErrInvalidInput
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, models.ErrInvalidTimeRange
	}
	if !in.StartsAt.After(s.now()) {
		return nil, models.ErrTrainingInPast
	}
	return &models.GroupTraining{
		Title:            title,
		TrainerIDs:       trainers,
		LocationID:       in.LocationID,
		StartsAt:         in.StartsAt.UTC(),
		EndsAt:           in.EndsAt.UTC(),
		ParticipantLimit: in.ParticipantLimit,
	}, nil
}

// checkParticipants: зал существует, все ведущие - тренеры.
func (s *groupTrainingServiceImpl) checkParticipants(ctx context.Context, t *models.GroupTraining) error {
	if _, err := s.locations.GetByID(ctx, t.LocationID); err != nil {
		return err
	}
	return ensureTrainers(ctx, s.auth, t.TrainerIDs)
}

// checkCollisions вызывается под блокировкой расписания.
func (s *groupTrainingServiceImpl) checkCollisions(ctx context.Context, t *models.GroupTraining, exclude *uuid.UUID) error {
	location := t.LocationID
	return s.collisions.Check(ctx, collision.Request{
		TrainerIDs: t.TrainerIDs,
		LocationID: &location,
		Start:      t.StartsAt,
		End:        t.EndsAt,
		ExcludeID:  exclude,
	})
}

func (s *groupTrainingServiceImpl) notify(ctx context.Context, userID uuid.UUID, kind sharedMessaging.NotificationKind, t *models.GroupTraining) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, sharedMessaging.TrainingNotificationPayload{
		UserID:       userID,
		Kind:         kind,
		TrainingID:   t.ID,
		TrainingType: sharedMessaging.TrainingTypeGroup,
		Title:        t.Title,
		StartsAt:     t.StartsAt,
	})
}
