package interfaces

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// LocationRepository - залы.
type LocationRepository interface {
	List(ctx context.Context) ([]models.Location, error)
	// GetByID возвращает models.ErrLocationNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	// Create: дубликат названия -> models.ErrLocationNameTaken.
	Create(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasUpcomingTrainings проверяет, есть ли в зале тренировки, которые закончатся после now.
	HasUpcomingTrainings(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

// GroupTrainingRepository - групповые тренировки и списки участников.
type GroupTrainingRepository interface {
	Create(ctx context.Context, training *models.GroupTraining) error
	// Update при увеличении лимита переводит первых из резерва в основной список
	// и возвращает их ID.
	Update(ctx context.Context, training *models.GroupTraining) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// GetByID возвращает тренировку со счетчиками участников или models.ErrTrainingNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error)
	List(ctx context.Context, from, to time.Time) ([]models.GroupTraining, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID, from time.Time) ([]models.GroupTraining, error)
	Participants(ctx context.Context, trainingID uuid.UUID) ([]models.GroupParticipant, error)
	// FindOverlapping ищет тренировки, пересекающиеся с [start, end) по любому тренеру или залу.
	FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.GroupTraining, error)
	// Enroll записывает пользователя в основной список или резерв в одной транзакции.
	Enroll(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (models.ParticipantList, error)
	// Leave удаляет запись и переводит первого из резерва в основной список.
	// Возвращает ID переведенного пользователя, если такой был.
	Leave(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (*uuid.UUID, error)
}

// ScheduleLocker сериализует проверку пересечений и запись в расписание по тренерам и залам.
// fn выполняется, пока удерживаются блокировки всех keys.
type ScheduleLocker interface {
	WithScheduleLock(ctx context.Context, keys []uuid.UUID, fn func(ctx context.Context) error) error
}

// IndividualTrainingRepository - персональные тренировки.
type IndividualTrainingRepository interface {
	Create(ctx context.Context, training *models.IndividualTraining) error
	// GetByID возвращает models.ErrTrainingNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.IndividualTraining, error)
	// UpdateStatus меняет статус, только если текущий статус равен from (оптимистичная проверка).
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.IndividualTrainingStatus, locationID *uuid.UUID) (*models.IndividualTraining, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error)
	// FindOverlapping ищет активные (PENDING, ACCEPTED) тренировки, пересекающиеся с [start, end).
	FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.IndividualTraining, error)
}
