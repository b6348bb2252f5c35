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

var _ interfaces.IndividualTrainingRepository = (*pgIndividualTrainingRepository)(nil)

const individualColumns = `id, client_id, trainer_id, location_id, starts_at, ends_at, status, remarks, created_at, updated_at`

type pgIndividualTrainingRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgIndividualTrainingRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.IndividualTrainingRepository {
	return &pgIndividualTrainingRepository{db: db, logger: logger.Named("PgIndividualTrainingRepo")}
}

func (r *pgIndividualTrainingRepository) Create(ctx context.Context, t *models.IndividualTraining) error {
	query := `INSERT INTO individual_trainings (client_id, trainer_id, location_id, starts_at, ends_at, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("clientID", t.ClientID), zap.Stringer("trainerID", t.TrainerID))

	err := r.db.QueryRow(ctx, query, t.ClientID, t.TrainerID, t.LocationID, t.StartsAt, t.EndsAt, string(t.Status), t.Remarks).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return models.ErrLocationNotFound
		}
		r.logger.Error("Failed to create individual training", zap.Error(err))
		return fmt.Errorf("failed to create individual training: %w", err)
	}
	r.logger.Info("Individual training requested", zap.Stringer("trainingID", t.ID))
	return nil
}

func (r *pgIndividualTrainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.IndividualTraining, error) {
	query := `SELECT ` + individualColumns + ` FROM individual_trainings WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", id))

	t := &models.IndividualTraining{}
	if err := pgxscan.Get(ctx, r.db, t, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTrainingNotFound
		}
		r.logger.Error("Failed to get individual training", zap.Stringer("trainingID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get individual training: %w", err)
	}
	return t, nil
}

// UpdateStatus меняет статус только из from: параллельный переход получит ErrInvalidTransition.
func (r *pgIndividualTrainingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.IndividualTrainingStatus, locationID *uuid.UUID) (*models.IndividualTraining, error) {
	query := `UPDATE individual_trainings
		SET status = $3, location_id = COALESCE($4, location_id), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + individualColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", id),
		zap.String("from", string(from)), zap.String("to", string(to)))

	t := &models.IndividualTraining{}
	err := pgxscan.Get(ctx, r.db, t, query, id, string(from), string(to), locationID)
	if err == nil {
		r.logger.Info("Individual training status changed", zap.Stringer("trainingID", id), zap.String("status", string(to)))
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if database.IsForeignKeyViolation(err) {
			return nil, models.ErrLocationNotFound
		}
		r.logger.Error("Failed to update individual training status", zap.Stringer("trainingID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update individual training status: %w", err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, models.ErrInvalidTransition
}

func (r *pgIndividualTrainingRepository) ListByClient(ctx context.Context, clientID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	query := `SELECT ` + individualColumns + ` FROM individual_trainings
		WHERE client_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY starts_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("clientID", clientID))
	return r.selectMany(ctx, query, clientID, statusArg(status))
}

func (r *pgIndividualTrainingRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID, status *models.IndividualTrainingStatus) ([]models.IndividualTraining, error) {
	query := `SELECT ` + individualColumns + ` FROM individual_trainings
		WHERE trainer_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY starts_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainerID", trainerID))
	return r.selectMany(ctx, query, trainerID, statusArg(status))
}

func (r *pgIndividualTrainingRepository) FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.IndividualTraining, error) {
	query := `SELECT ` + individualColumns + ` FROM individual_trainings
		WHERE status IN ('PENDING', 'ACCEPTED')
			AND starts_at < $4 AND ends_at > $3
			AND (trainer_id = ANY($1::uuid[]) OR location_id = $2)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Time("start", start), zap.Time("end", end))

	if trainerIDs == nil {
		trainerIDs = []uuid.UUID{}
	}
	return r.selectMany(ctx, query, trainerIDs, locationID, start, end)
}

func (r *pgIndividualTrainingRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]models.IndividualTraining, error) {
	trainings := make([]models.IndividualTraining, 0)
	if err := pgxscan.Select(ctx, r.db, &trainings, query, args...); err != nil {
		r.logger.Error("Failed to query individual trainings", zap.Error(err))
		return nil, fmt.Errorf("failed to query individual trainings: %w", err)
	}
	return trainings, nil
}

func statusArg(status *models.IndividualTrainingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}
