package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateProfileInput - изменяемые пользователем поля профиля.
type UpdateProfileInput struct {
	Name    string
	Surname string
	Phone   *string
}

// TrainerProfileInput - описание тренера, которое он редактирует сам.
type TrainerProfileInput struct {
	Synopsis        string
	Description     string
	Specializations []string
}

// AccountService - профили пользователей и тренеров.
type AccountService interface {
	// CreateProfile вызывается по событию user.registered. Повтор события безопасен.
	CreateProfile(ctx context.Context, profile *models.Profile) error
	// SyncTrainerRole создает или удаляет профиль тренера по текущему набору ролей.
	SyncTrainerRole(ctx context.Context, userID uuid.UUID, roles []string) error

	GetMyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	ListTrainers(ctx context.Context) ([]models.TrainerProfile, error)
	GetTrainer(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error)
	UpdateMyTrainerProfile(ctx context.Context, userID uuid.UUID, in TrainerProfileInput) (*models.TrainerProfile, error)
}

type accountServiceImpl struct {
	profiles interfaces.ProfileRepository
	trainers interfaces.TrainerProfileRepository
	logger   *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(profiles interfaces.ProfileRepository, trainers interfaces.TrainerProfileRepository, logger *zap.Logger) AccountService {
	return &accountServiceImpl{
		profiles: profiles,
		trainers: trainers,
		logger:   logger.Named("AccountService"),
	}
}

func (s *accountServiceImpl) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.UserID == uuid.Nil || profile.Email == "" {
		return fmt.Errorf("profile without user id or email: %w", models.ErrInvalidInput)
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create profile", zap.Stringer("userID", profile.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *accountServiceImpl) SyncTrainerRole(ctx context.Context, userID uuid.UUID, roles []string) error {
	log := s.logger.With(zap.Stringer("userID", userID), zap.Strings("roles", roles))
	if models.HasRole(roles, models.RoleTrainer) {
		if err := s.trainers.Ensure(ctx, userID); err != nil {
			log.Error("Failed to ensure trainer profile", zap.Error(err))
			return err
		}
		log.Info("Trainer profile ensured")
		return nil
	}
	if err := s.trainers.Delete(ctx, userID); err != nil {
		log.Error("Failed to delete trainer profile", zap.Error(err))
		return err
	}
	return nil
}

func (s *accountServiceImpl) GetMyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *accountServiceImpl) UpdateMyProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Profile, error) {
	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)
	if name == "" || surname == "" {
		return nil, fmt.Errorf("name and surname are required: %w", models.ErrInvalidInput)
	}
	phone := in.Phone
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}

	profile, err := s.profiles.Update(ctx, userID, name, surname, phone)
	if err != nil {
		if !errors.Is(err, models.ErrProfileNotFound) {
			s.logger.Error("Failed to update profile", zap.Stringer("userID", userID), zap.Error(err))
		}
		return nil, err
	}
	return profile, nil
}

func (s *accountServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *accountServiceImpl) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	return s.trainers.List(ctx)
}

func (s *accountServiceImpl) GetTrainer(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error) {
	return s.trainers.Get(ctx, userID)
}

func (s *accountServiceImpl) UpdateMyTrainerProfile(ctx context.Context, userID uuid.UUID, in TrainerProfileInput) (*models.TrainerProfile, error) {
	profile := &models.TrainerProfile{
		UserID:          userID,
		Synopsis:        strings.TrimSpace(in.Synopsis),
		Description:     strings.TrimSpace(in.Description),
		Specializations: normalizeSpecializations(in.Specializations),
	}
	if err := s.trainers.Update(ctx, profile); err != nil {
		if !errors.Is(err, models.ErrTrainerNotFound) {
			s.logger.Error("Failed to update trainer profile", zap.Stringer("userID", userID), zap.Error(err))
		}
		return nil, err
	}
	// имя и фамилия живут в профиле пользователя
	return s.trainers.Get(ctx, userID)
}

// normalizeSpecializations убирает пустые строки и дубликаты, сохраняя порядок.
func normalizeSpecializations(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
