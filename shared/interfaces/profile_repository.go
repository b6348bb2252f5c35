package interfaces

import (
	"context"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// ProfileRepository - профили пользователей account-сервиса.
type ProfileRepository interface {
	// Create вставляет профиль. Повторная вставка того же пользователя ничего не меняет.
	Create(ctx context.Context, profile *models.Profile) error
	// GetByUserID возвращает models.ErrProfileNotFound, если профиля нет.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	// Update меняет имя, фамилию и телефон и возвращает обновленный профиль.
	Update(ctx context.Context, userID uuid.UUID, name, surname string, phone *string) (*models.Profile, error)
}

// TrainerProfileRepository - профили тренеров.
type TrainerProfileRepository interface {
	// Ensure создает пустой профиль тренера, если его нет. Нет профиля пользователя -> models.ErrProfileNotFound.
	Ensure(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
	// Get возвращает models.ErrTrainerNotFound, если пользователь не тренер.
	Get(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error)
	List(ctx context.Context) ([]models.TrainerProfile, error)
	// Update возвращает models.ErrTrainerNotFound, если профиля тренера нет.
	Update(ctx context.Context, profile *models.TrainerProfile) error
}
