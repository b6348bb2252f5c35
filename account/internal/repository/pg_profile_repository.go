package repository

import (
	"context"
	"errors"
	"fmt"

	"gym-server/shared/database"
	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var _ interfaces.ProfileRepository = (*pgProfileRepository)(nil)

const profileColumns = `user_id, email, name, surname, phone, created_at, updated_at`

type pgProfileRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgProfileRepository создает репозиторий профилей поверх PostgreSQL.
func NewPgProfileRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ProfileRepository {
	return &pgProfileRepository{
		db:     db,
		logger: logger.Named("PgProfileRepo"),
	}
}

func (r *pgProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `INSERT INTO profiles (user_id, email, name, surname, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", profile.UserID))

	tag, err := r.db.Exec(ctx, query, profile.UserID, profile.Email, profile.Name, profile.Surname, profile.Phone)
	if err != nil {
		r.logger.Error("Failed to create profile", zap.Stringer("userID", profile.UserID), zap.Error(err))
		return fmt.Errorf("failed to create profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Info("Profile already exists, skipping", zap.Stringer("userID", profile.UserID))
		return nil
	}
	r.logger.Info("Profile created", zap.Stringer("userID", profile.UserID))
	return nil
}

func (r *pgProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	profile := &models.Profile{}
	if err := pgxscan.Get(ctx, r.db, profile, query, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to get profile", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (r *pgProfileRepository) Update(ctx context.Context, userID uuid.UUID, name, surname string, phone *string) (*models.Profile, error) {
	query := `UPDATE profiles SET name = $2, surname = $3, phone = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	profile := &models.Profile{}
	if err := pgxscan.Get(ctx, r.db, profile, query, userID, name, surname, phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to update profile", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	r.logger.Info("Profile updated", zap.Stringer("userID", userID))
	return profile, nil
}

var _ interfaces.TrainerProfileRepository = (*pgTrainerProfileRepository)(nil)

// имя и фамилия берутся из профиля пользователя
const trainerSelect = `SELECT t.user_id, p.name, p.surname, t.synopsis, t.description, t.specializations, t.updated_at
	FROM trainer_profiles t
	JOIN profiles p ON p.user_id = t.user_id`

type pgTrainerProfileRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgTrainerProfileRepository создает репозиторий профилей тренеров.
func NewPgTrainerProfileRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.TrainerProfileRepository {
	return &pgTrainerProfileRepository{
		db:     db,
		logger: logger.Named("PgTrainerProfileRepo"),
	}
}

func (r *pgTrainerProfileRepository) Ensure(ctx context.Context, userID uuid.UUID) error {
	query := `INSERT INTO trainer_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		if database.IsForeignKeyViolation(err) {
			r.logger.Warn("Cannot create trainer profile without user profile", zap.Stringer("userID", userID))
			return models.ErrProfileNotFound
		}
		r.logger.Error("Failed to ensure trainer profile", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to ensure trainer profile: %w", err)
	}
	return nil
}

func (r *pgTrainerProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM trainer_profiles WHERE user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to delete trainer profile", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete trainer profile: %w", err)
	}
	if tag.RowsAffected() > 0 {
		r.logger.Info("Trainer profile deleted", zap.Stringer("userID", userID))
	}
	return nil
}

func (r *pgTrainerProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.TrainerProfile, error) {
	query := trainerSelect + ` WHERE t.user_id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	trainer := &models.TrainerProfile{}
	if err := pgxscan.Get(ctx, r.db, trainer, query, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTrainerNotFound
		}
		r.logger.Error("Failed to get trainer profile", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get trainer profile: %w", err)
	}
	return trainer, nil
}

func (r *pgTrainerProfileRepository) List(ctx context.Context) ([]models.TrainerProfile, error) {
	query := trainerSelect + ` ORDER BY p.surname, p.name, t.user_id`
	r.logger.Debug("Executing query", zap.String("query", query))

	trainers := make([]models.TrainerProfile, 0)
	if err := pgxscan.Select(ctx, r.db, &trainers, query); err != nil {
		r.logger.Error("Failed to list trainers", zap.Error(err))
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}

func (r *pgTrainerProfileRepository) Update(ctx context.Context, profile *models.TrainerProfile) error {
	query := `UPDATE trainer_profiles
		SET synopsis = $2, description = $3, specializations = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", profile.UserID))

	specializations := profile.Specializations
	if specializations == nil {
		specializations = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.Synopsis, profile.Description, pq.Array(specializations),
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrTrainerNotFound
		}
		r.logger.Error("Failed to update trainer profile", zap.Stringer("userID", profile.UserID), zap.Error(err))
		return fmt.Errorf("failed to update trainer profile: %w", err)
	}
	r.logger.Info("Trainer profile updated", zap.Stringer("userID", profile.UserID))
	return nil
}
