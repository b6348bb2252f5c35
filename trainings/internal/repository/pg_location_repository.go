package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-server/shared/database"
	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.LocationRepository = (*pgLocationRepository)(nil)

type pgLocationRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgLocationRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.LocationRepository {
	return &pgLocationRepository{db: db, logger: logger.Named("PgLocationRepo")}
}

func (r *pgLocationRepository) List(ctx context.Context) ([]models.Location, error) {
	query := `SELECT id, name, created_at FROM locations ORDER BY name`
	r.logger.Debug("Executing query", zap.String("query", query))

	locations := make([]models.Location, 0)
	if err := pgxscan.Select(ctx, r.db, &locations, query); err != nil {
		r.logger.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (r *pgLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	query := `SELECT id, name, created_at FROM locations WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("locationID", id))

	location := &models.Location{}
	if err := pgxscan.Get(ctx, r.db, location, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLocationNotFound
		}
		r.logger.Error("Failed to get location", zap.Stringer("locationID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return location, nil
}

func (r *pgLocationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `INSERT INTO locations (name) VALUES ($1) RETURNING id, created_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("name", location.Name))

	if err := r.db.QueryRow(ctx, query, location.Name).Scan(&location.ID, &location.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrLocationNameTaken
		}
		r.logger.Error("Failed to create location", zap.String("name", location.Name), zap.Error(err))
		return fmt.Errorf("failed to create location: %w", err)
	}
	r.logger.Info("Location created", zap.Stringer("locationID", location.ID), zap.String("name", location.Name))
	return nil
}

// Delete: зал, на который ссылаются тренировки (в том числе прошедшие), удалить нельзя.
func (r *pgLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("locationID", id))

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return models.ErrLocationInUse
		}
		r.logger.Error("Failed to delete location", zap.Stringer("locationID", id), zap.Error(err))
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrLocationNotFound
	}
	r.logger.Info("Location deleted", zap.Stringer("locationID", id))
	return nil
}

func (r *pgLocationRepository) HasUpcomingTrainings(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `SELECT EXISTS (
			SELECT 1 FROM group_trainings WHERE location_id = $1 AND ends_at > $2
		) OR EXISTS (
			SELECT 1 FROM individual_trainings
			WHERE location_id = $1 AND ends_at > $2 AND status IN ('PENDING', 'ACCEPTED')
		)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("locationID", id))

	var exists bool
	if err := r.db.QueryRow(ctx, query, id, now).Scan(&exists); err != nil {
		r.logger.Error("Failed to check location usage", zap.Stringer("locationID", id), zap.Error(err))
		return false, fmt.Errorf("failed to check location usage: %w", err)
	}
	return exists, nil
}
