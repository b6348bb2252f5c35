package service

import (
	"context"
	"strings"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LocationService interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateLocation(ctx context.Context, name string) (*models.Location, error)
	// DeleteLocation отказывает с ErrLocationInUse, пока в зале есть предстоящие тренировки.
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

type locationServiceImpl struct {
	locations interfaces.LocationRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewLocationService(locations interfaces.LocationRepository, logger *zap.Logger, opts ...Option) LocationService {
	cfg := applyOptions(opts)
	return &locationServiceImpl{
		locations: locations,
		now:       cfg.now,
		logger:    logger.Named("LocationService"),
	}
}

func (s *locationServiceImpl) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.locations.List(ctx)
}

func (s *locationServiceImpl) CreateLocation(ctx context.Context, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidInput
	}
	location := &models.Location{Name: name}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationServiceImpl) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locations.GetByID(ctx, id); err != nil {
		return err
	}
	busy, err := s.locations.HasUpcomingTrainings(ctx, id, s.now())
	if err != nil {
		return err
	}
	if busy {
		s.logger.Info("Refusing to delete location with upcoming trainings", zap.Stringer("locationID", id))
		return models.ErrLocationInUse
	}
	return s.locations.Delete(ctx, id)
}
