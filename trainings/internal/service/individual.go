package service

import (
	"context"
	"strings"
	"time"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"
	"gym-server/trainings/internal/collision"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IndividualRequestInput - заявка клиента на персональную тренировку.
type IndividualRequestInput struct {
	TrainerID uuid.UUID
	StartsAt  time.Time
	EndsAt    time.Time
	Remarks   *string
}

// IndividualTrainingService ведет заявку по цепочке
// PENDING -> ACCEPTED|REJECTED, PENDING|ACCEPTED -> CANCELLED.
type IndividualTrainingService interface {
	Request(ctx context.Context, actor models.Actor, in IndividualRequestInput) (*models.IndividualTraining, error)
	Accept(ctx context.Context, actor models.Actor, id, locationID uuid.UUID) (*models.IndividualTraining, error)
	Reject(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error)
	Cancel(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error)
	ListMine(ctx context.Context, actor models.Actor, asTrainer bool, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error)
}

type individualTrainingServiceImpl struct {
	trainings  interfaces.IndividualTrainingRepository
	locations  interfaces.LocationRepository
	collisions *collision.Validator
	auth       interfaces.AuthServiceClient
	notifier   Notifier
	locker     interfaces.ScheduleLocker
	now        func() time.Time
	logger     *zap.Logger
}

func NewIndividualTrainingService(
	trainings interfaces.IndividualTrainingRepository,
	locations interfaces.LocationRepository,
	collisions *collision.Validator,
	auth interfaces.AuthServiceClient,
	notifier Notifier,
	logger *zap.Logger,
	opts ...Option,
) IndividualTrainingService {
	cfg := applyOptions(opts)
	return &individualTrainingServiceImpl{
		trainings:  trainings,
		locations:  locations,
		collisions: collisions,
		auth:       auth,
		notifier:   notifier,
		locker:     cfg.locker,
		now:        cfg.now,
		logger:     logger.Named("IndividualTrainingService"),
	}
}

func (s *individualTrainingServiceImpl) Request(ctx context.Context, actor models.Actor, in IndividualRequestInput) (*models.IndividualTraining, error) {
	if in.TrainerID == uuid.Nil {
		return nil, models.ErrInvalidInput
	}
	if in.TrainerID == actor.UserID {
		return nil, models.ErrSelfTraining
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, models.ErrInvalidTimeRange
	}
	if !in.StartsAt.After(s.now()) {
		return nil, models.ErrTrainingInPast
	}
	if err := ensureTrainers(ctx, s.auth, []uuid.UUID{in.TrainerID}); err != nil {
		return nil, err
	}

	training := &models.IndividualTraining{
		ClientID:  actor.UserID,
		TrainerID: in.TrainerID,
		StartsAt:  in.StartsAt.UTC(),
		EndsAt:    in.EndsAt.UTC(),
		Status:    models.IndividualPending,
		Remarks:   trimRemarks(in.Remarks),
	}
	err := s.locker.WithScheduleLock(ctx, scheduleKeys([]uuid.UUID{in.TrainerID}, nil), func(ctx context.Context) error {
		if err := s.collisions.Check(ctx, collision.Request{
			TrainerIDs: []uuid.UUID{in.TrainerID},
			Start:      in.StartsAt,
			End:        in.EndsAt,
		}); err != nil {
			return err
		}
		return s.trainings.Create(ctx, training)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, training.TrainerID, sharedMessaging.NotificationIndividualRequested, training)
	return training, nil
}

func (s *individualTrainingServiceImpl) Accept(ctx context.Context, actor models.Actor, id, locationID uuid.UUID) (*models.IndividualTraining, error) {
	training, err := s.loadForChange(ctx, id)
	if err != nil {
		return nil, err
	}
	if training.TrainerID != actor.UserID {
		return nil, models.ErrForbidden
	}
	if training.Status != models.IndividualPending {
		return nil, models.ErrInvalidTransition
	}
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		return nil, err
	}

	var updated *models.IndividualTraining
	err = s.locker.WithScheduleLock(ctx, scheduleKeys([]uuid.UUID{training.TrainerID}, &locationID), func(ctx context.Context) error {
		if err := s.collisions.Check(ctx, collision.Request{
			TrainerIDs: []uuid.UUID{training.TrainerID},
			LocationID: &locationID,
			Start:      training.StartsAt,
			End:        training.EndsAt,
			ExcludeID:  &training.ID,
		}); err != nil {
			return err
		}
		accepted, err := s.trainings.UpdateStatus(ctx, id, models.IndividualPending, models.IndividualAccepted, &locationID)
		updated = accepted
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.ClientID, sharedMessaging.NotificationIndividualAccepted, updated)
	return updated, nil
}

func (s *individualTrainingServiceImpl) Reject(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error) {
	training, err := s.loadForChange(ctx, id)
	if err != nil {
		return nil, err
	}
	if training.TrainerID != actor.UserID {
		return nil, models.ErrForbidden
	}
	if training.Status != models.IndividualPending {
		return nil, models.ErrInvalidTransition
	}

	updated, err := s.trainings.UpdateStatus(ctx, id, models.IndividualPending, models.IndividualRejected, nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.ClientID, sharedMessaging.NotificationIndividualRejected, updated)
	return updated, nil
}

func (s *individualTrainingServiceImpl) Cancel(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error) {
	training, err := s.loadForChange(ctx, id)
	if err != nil {
		return nil, err
	}

	var counterpart uuid.UUID
	switch actor.UserID {
	case training.ClientID:
		counterpart = training.TrainerID
	case training.TrainerID:
		counterpart = training.ClientID
	default:
		return nil, models.ErrForbidden
	}
	if training.Status != models.IndividualPending && training.Status != models.IndividualAccepted {
		return nil, models.ErrInvalidTransition
	}

	updated, err := s.trainings.UpdateStatus(ctx, id, training.Status, models.IndividualCancelled, nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, counterpart, sharedMessaging.NotificationIndividualCancelled, updated)
	return updated, nil
}

func (s *individualTrainingServiceImpl) ListMine(ctx context.Context, actor models.Actor, asTrainer bool, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	if asTrainer {
		if !actor.HasRole(models.RoleTrainer) {
			return nil, models.ErrForbidden
		}
		return s.trainings.ListByTrainer(ctx, actor.UserID, status)
	}
	return s.trainings.ListByClient(ctx, actor.UserID, status)
}

// loadForChange возвращает тренировку, которая еще не началась.
func (s *individualTrainingServiceImpl) loadForChange(ctx context.Context, id uuid.UUID) (*models.IndividualTraining, error) {
	training, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !training.StartsAt.After(s.now()) {
		return nil, models.ErrTrainingInPast
	}
	return training, nil
}

func (s *individualTrainingServiceImpl) notify(ctx context.Context, userID uuid.UUID, kind sharedMessaging.NotificationKind, t *models.IndividualTraining) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, sharedMessaging.TrainingNotificationPayload{
		UserID:       userID,
		Kind:         kind,
		TrainingID:   t.ID,
		TrainingType: sharedMessaging.TrainingTypeIndividual,
		StartsAt:     t.StartsAt,
	})
}

func trimRemarks(remarks *string) *string {
	if remarks == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*remarks)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
