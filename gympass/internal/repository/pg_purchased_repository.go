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

var _ interfaces.PurchasedGymPassRepository = (*pgPurchasedRepository)(nil)

const purchasedColumns = `id, offer_id, offer_title, user_id, purchased_at, start_date, end_date,
	entries_left, suspension_date, last_entry_at`

type pgPurchasedRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgPurchasedRepository создает репозиторий купленных абонементов.
func NewPgPurchasedRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.PurchasedGymPassRepository {
	return &pgPurchasedRepository{db: db, logger: logger.Named("PgPurchasedGymPassRepo")}
}

func (r *pgPurchasedRepository) Create(ctx context.Context, pass *models.PurchasedGymPass) error {
	query := `INSERT INTO purchased_gympasses (offer_id, offer_title, user_id, start_date, end_date, entries_left)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, purchased_at`
	log := r.logger.With(zap.Stringer("userID", pass.UserID), zap.Stringer("offerID", pass.OfferID))
	log.Debug("Executing query", zap.String("query", query))

	err := r.db.QueryRow(ctx, query,
		pass.OfferID, pass.OfferTitle, pass.UserID, pass.StartDate, pass.EndDate, pass.EntriesLeft,
	).Scan(&pass.ID, &pass.PurchasedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return models.ErrOfferNotFound
		}
		log.Error("Failed to create purchased gym pass", zap.Error(err))
		return fmt.Errorf("failed to create purchased gym pass: %w", err)
	}
	log.Info("Gym pass purchased", zap.Stringer("passID", pass.ID))
	return nil
}

func (r *pgPurchasedRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchasedGymPass, error) {
	query := `SELECT ` + purchasedColumns + ` FROM purchased_gympasses WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("passID", id))
	return r.getOne(ctx, query, id)
}

func (r *pgPurchasedRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchasedGymPass, error) {
	query := `SELECT ` + purchasedColumns + ` FROM purchased_gympasses WHERE user_id = $1 ORDER BY start_date DESC, purchased_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	passes := make([]models.PurchasedGymPass, 0)
	if err := pgxscan.Select(ctx, r.db, &passes, query, userID); err != nil {
		r.logger.Error("Failed to list gym passes", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list gym passes: %w", err)
	}
	return passes, nil
}

// RegisterEntry списывает посещение одним UPDATE: для абонемента по посещениям условие entries_left > 0
// не дает уйти в минус при одновременных входах.
func (r *pgPurchasedRepository) RegisterEntry(ctx context.Context, id uuid.UUID, at time.Time) (*models.PurchasedGymPass, error) {
	query := `UPDATE purchased_gympasses
		SET entries_left = CASE WHEN entries_left IS NULL THEN NULL ELSE entries_left - 1 END,
			last_entry_at = $2
		WHERE id = $1 AND (entries_left IS NULL OR entries_left > 0)
		RETURNING ` + purchasedColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("passID", id))

	pass, err := r.getOne(ctx, query, id, at.UTC())
	if errors.Is(err, models.ErrGymPassNotFound) {
		// либо абонемента нет, либо закончились посещения
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, models.ErrGymPassNoEntries
	}
	return pass, err
}

func (r *pgPurchasedRepository) Suspend(ctx context.Context, id uuid.UUID, suspensionDate, endDate time.Time) (*models.PurchasedGymPass, error) {
	query := `UPDATE purchased_gympasses SET suspension_date = $2, end_date = $3
		WHERE id = $1
		RETURNING ` + purchasedColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("passID", id))

	pass, err := r.getOne(ctx, query, id, suspensionDate, endDate)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Gym pass suspended", zap.Stringer("passID", id), zap.Time("until", suspensionDate), zap.Time("endDate", endDate))
	return pass, nil
}

func (r *pgPurchasedRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.PurchasedGymPass, error) {
	pass := &models.PurchasedGymPass{}
	if err := pgxscan.Get(ctx, r.db, pass, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrGymPassNotFound
		}
		r.logger.Error("Failed to query gym pass", zap.Error(err))
		return nil, fmt.Errorf("failed to query gym pass: %w", err)
	}
	return pass, nil
}
