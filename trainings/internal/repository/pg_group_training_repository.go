package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgDatabase "gym-server/pkg/database"
	"gym-server/shared/database"
	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.GroupTrainingRepository = (*pgGroupTrainingRepository)(nil)

// Тренировка вместе со счетчиками основного списка и резерва.
const groupSelect = `SELECT g.id, g.title, g.trainer_ids, g.location_id, g.starts_at, g.ends_at,
		g.participant_limit, g.created_at, g.updated_at,
		COUNT(p.user_id) FILTER (WHERE p.list = 'BASIC') AS basic_count,
		COUNT(p.user_id) FILTER (WHERE p.list = 'RESERVE') AS reserve_count
	FROM group_trainings g
	LEFT JOIN group_training_participants p ON p.training_id = g.id`

type pgGroupTrainingRepository struct {
	db     interfaces.Transactor
	logger *zap.Logger
}

func NewPgGroupTrainingRepository(db interfaces.Transactor, logger *zap.Logger) interfaces.GroupTrainingRepository {
	return &pgGroupTrainingRepository{db: db, logger: logger.Named("PgGroupTrainingRepo")}
}

func (r *pgGroupTrainingRepository) Create(ctx context.Context, t *models.GroupTraining) error {
	query := `INSERT INTO group_trainings (title, trainer_ids, location_id, starts_at, ends_at, participant_limit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("title", t.Title))

	err := r.db.QueryRow(ctx, query, t.Title, t.TrainerIDs, t.LocationID, t.StartsAt, t.EndsAt, t.ParticipantLimit).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return models.ErrLocationNotFound
		}
		r.logger.Error("Failed to create group training", zap.String("title", t.Title), zap.Error(err))
		return fmt.Errorf("failed to create group training: %w", err)
	}
	r.logger.Info("Group training created", zap.Stringer("trainingID", t.ID), zap.Time("startsAt", t.StartsAt))
	return nil
}

// Update блокирует тренировку и не дает опустить лимит ниже числа участников основного списка.
// Освободившиеся места занимают первые из резерва в порядке записи.
func (r *pgGroupTrainingRepository) Update(ctx context.Context, t *models.GroupTraining) ([]uuid.UUID, error) {
	promoted := make([]uuid.UUID, 0)
	err := pkgDatabase.ExecuteInTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.lockTraining(ctx, tx, t.ID); err != nil {
			return err
		}

		var basic int
		countQuery := `SELECT COUNT(*) FROM group_training_participants WHERE training_id = $1 AND list = 'BASIC'`
		if err := tx.QueryRow(ctx, countQuery, t.ID).Scan(&basic); err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if t.ParticipantLimit < basic {
			return models.ErrLimitBelowParticipants
		}

		query := `UPDATE group_trainings SET title = $2, trainer_ids = $3, location_id = $4,
				starts_at = $5, ends_at = $6, participant_limit = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at`
		r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", t.ID))

		err := tx.QueryRow(ctx, query, t.ID, t.Title, t.TrainerIDs, t.LocationID, t.StartsAt, t.EndsAt, t.ParticipantLimit).
			Scan(&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return models.ErrLocationNotFound
			}
			r.logger.Error("Failed to update group training", zap.Stringer("trainingID", t.ID), zap.Error(err))
			return fmt.Errorf("failed to update group training: %w", err)
		}

		if free := t.ParticipantLimit - basic; free > 0 {
			promoteQuery := `UPDATE group_training_participants SET list = 'BASIC'
				WHERE training_id = $1 AND user_id IN (
					SELECT user_id FROM group_training_participants
					WHERE training_id = $1 AND list = 'RESERVE'
					ORDER BY enrolled_at, user_id
					LIMIT $2
				)
				RETURNING user_id`
			r.logger.Debug("Executing query", zap.String("query", promoteQuery), zap.Stringer("trainingID", t.ID), zap.Int("free", free))
			if err := pgxscan.Select(ctx, tx, &promoted, promoteQuery, t.ID, free); err != nil {
				return fmt.Errorf("failed to promote from reserve: %w", err)
			}
		}
		t.BasicCount = basic + len(promoted)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(promoted) > 0 {
		r.logger.Info("Limit raised, reserve promoted", zap.Stringer("trainingID", t.ID), zap.Int("promoted", len(promoted)))
	}
	return promoted, nil
}

func (r *pgGroupTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM group_trainings WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", id))

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete group training", zap.Stringer("trainingID", id), zap.Error(err))
		return fmt.Errorf("failed to delete group training: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrTrainingNotFound
	}
	r.logger.Info("Group training deleted", zap.Stringer("trainingID", id))
	return nil
}

func (r *pgGroupTrainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GroupTraining, error) {
	query := groupSelect + ` WHERE g.id = $1 GROUP BY g.id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", id))

	t := &models.GroupTraining{}
	if err := pgxscan.Get(ctx, r.db, t, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTrainingNotFound
		}
		r.logger.Error("Failed to get group training", zap.Stringer("trainingID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get group training: %w", err)
	}
	return t, nil
}

func (r *pgGroupTrainingRepository) List(ctx context.Context, from, to time.Time) ([]models.GroupTraining, error) {
	query := groupSelect + ` WHERE g.starts_at >= $1 AND g.starts_at < $2 GROUP BY g.id ORDER BY g.starts_at, g.title`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Time("from", from), zap.Time("to", to))
	return r.selectMany(ctx, query, from, to)
}

func (r *pgGroupTrainingRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, from time.Time) ([]models.GroupTraining, error) {
	query := groupSelect + ` WHERE g.starts_at >= $2
			AND g.id IN (SELECT training_id FROM group_training_participants WHERE user_id = $1)
		GROUP BY g.id ORDER BY g.starts_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))
	return r.selectMany(ctx, query, userID, from)
}

func (r *pgGroupTrainingRepository) Participants(ctx context.Context, trainingID uuid.UUID) ([]models.GroupParticipant, error) {
	query := `SELECT training_id, user_id, list, enrolled_at FROM group_training_participants
		WHERE training_id = $1
		ORDER BY list, enrolled_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("trainingID", trainingID))

	participants := make([]models.GroupParticipant, 0)
	if err := pgxscan.Select(ctx, r.db, &participants, query, trainingID); err != nil {
		r.logger.Error("Failed to list participants", zap.Stringer("trainingID", trainingID), zap.Error(err))
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (r *pgGroupTrainingRepository) FindOverlapping(ctx context.Context, trainerIDs []uuid.UUID, locationID *uuid.UUID, start, end time.Time) ([]models.GroupTraining, error) {
	query := groupSelect + ` WHERE g.starts_at < $4 AND g.ends_at > $3
			AND (g.trainer_ids && $1::uuid[] OR g.location_id = $2)
		GROUP BY g.id`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Time("start", start), zap.Time("end", end))

	if trainerIDs == nil {
		trainerIDs = []uuid.UUID{}
	}
	return r.selectMany(ctx, query, trainerIDs, locationID, start, end)
}

// Enroll записывает пользователя под блокировкой строки тренировки: параллельные записи
// не превысят лимит основного списка.
func (r *pgGroupTrainingRepository) Enroll(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (models.ParticipantList, error) {
	var list models.ParticipantList
	err := pkgDatabase.ExecuteInTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var limit int
		var startsAt time.Time
		lockQuery := `SELECT participant_limit, starts_at FROM group_trainings WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, trainingID).Scan(&limit, &startsAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrTrainingNotFound
			}
			return fmt.Errorf("failed to lock group training: %w", err)
		}
		if !startsAt.After(now) {
			return models.ErrTrainingInPast
		}

		var basic int
		countQuery := `SELECT COUNT(*) FROM group_training_participants WHERE training_id = $1 AND list = 'BASIC'`
		if err := tx.QueryRow(ctx, countQuery, trainingID).Scan(&basic); err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}

		list = models.ListReserve
		if basic < limit {
			list = models.ListBasic
		}

		insertQuery := `INSERT INTO group_training_participants (training_id, user_id, list, enrolled_at) VALUES ($1, $2, $3, $4)`
		r.logger.Debug("Executing query", zap.String("query", insertQuery), zap.Stringer("trainingID", trainingID), zap.Stringer("userID", userID))
		if _, err := tx.Exec(ctx, insertQuery, trainingID, userID, string(list), now); err != nil {
			if database.IsUniqueViolation(err) {
				return models.ErrAlreadyEnrolled
			}
			return fmt.Errorf("failed to enroll: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	r.logger.Info("User enrolled", zap.Stringer("trainingID", trainingID), zap.Stringer("userID", userID), zap.String("list", string(list)))
	return list, nil
}

// Leave удаляет запись; освободившееся место в основном списке получает первый из резерва.
func (r *pgGroupTrainingRepository) Leave(ctx context.Context, trainingID, userID uuid.UUID, now time.Time) (*uuid.UUID, error) {
	var promoted *uuid.UUID
	err := pkgDatabase.ExecuteInTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var limit int
		var startsAt time.Time
		lockQuery := `SELECT participant_limit, starts_at FROM group_trainings WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, trainingID).Scan(&limit, &startsAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrTrainingNotFound
			}
			return fmt.Errorf("failed to lock group training: %w", err)
		}
		if !startsAt.After(now) {
			return models.ErrTrainingInPast
		}

		var removed string
		deleteQuery := `DELETE FROM group_training_participants WHERE training_id = $1 AND user_id = $2 RETURNING list`
		if err := tx.QueryRow(ctx, deleteQuery, trainingID, userID).Scan(&removed); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotEnrolled
			}
			return fmt.Errorf("failed to leave training: %w", err)
		}
		if models.ParticipantList(removed) != models.ListBasic {
			return nil
		}

		var basic int
		countQuery := `SELECT COUNT(*) FROM group_training_participants WHERE training_id = $1 AND list = 'BASIC'`
		if err := tx.QueryRow(ctx, countQuery, trainingID).Scan(&basic); err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if basic >= limit {
			return nil
		}

		var next uuid.UUID
		promoteQuery := `UPDATE group_training_participants SET list = 'BASIC'
			WHERE training_id = $1 AND user_id = (
				SELECT user_id FROM group_training_participants
				WHERE training_id = $1 AND list = 'RESERVE'
				ORDER BY enrolled_at, user_id
				LIMIT 1
			)
			RETURNING user_id`
		r.logger.Debug("Executing query", zap.String("query", promoteQuery), zap.Stringer("trainingID", trainingID))
		if err := tx.QueryRow(ctx, promoteQuery, trainingID).Scan(&next); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to promote from reserve: %w", err)
		}
		promoted = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	log := r.logger.With(zap.Stringer("trainingID", trainingID), zap.Stringer("userID", userID))
	if promoted != nil {
		log.Info("User left, reserve promoted", zap.Stringer("promotedUserID", *promoted))
	} else {
		log.Info("User left training")
	}
	return promoted, nil
}

func (r *pgGroupTrainingRepository) lockTraining(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var locked uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM group_trainings WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrTrainingNotFound
		}
		return fmt.Errorf("failed to lock group training: %w", err)
	}
	return nil
}

func (r *pgGroupTrainingRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]models.GroupTraining, error) {
	trainings := make([]models.GroupTraining, 0)
	if err := pgxscan.Select(ctx, r.db, &trainings, query, args...); err != nil {
		r.logger.Error("Failed to query group trainings", zap.Error(err))
		return nil, fmt.Errorf("failed to query group trainings: %w", err)
	}
	return trainings, nil
}
