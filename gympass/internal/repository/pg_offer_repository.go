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

var _ interfaces.GymPassOfferRepository = (*pgOfferRepository)(nil)

const offerColumns = `id, title, subheader, amount::float8 AS amount, currency, period, is_premium, synopsis,
	features, time_unit, duration, entries, created_at, updated_at, deleted_at`

type pgOfferRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgOfferRepository создает репозиторий предложений абонементов.
func NewPgOfferRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.GymPassOfferRepository {
	return &pgOfferRepository{db: db, logger: logger.Named("PgOfferRepo")}
}

func (r *pgOfferRepository) List(ctx context.Context) ([]models.GymPassOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM gympass_offers WHERE deleted_at IS NULL ORDER BY is_premium, amount, title`
	r.logger.Debug("Executing query", zap.String("query", query))

	offers := make([]models.GymPassOffer, 0)
	if err := pgxscan.Select(ctx, r.db, &offers, query); err != nil {
		r.logger.Error("Failed to list offers", zap.Error(err))
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// GetByID возвращает и снятые с продажи предложения: на них ссылаются купленные абонементы.
func (r *pgOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM gympass_offers WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("offerID", id))

	offer := &models.GymPassOffer{}
	if err := pgxscan.Get(ctx, r.db, offer, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOfferNotFound
		}
		r.logger.Error("Failed to get offer", zap.Stringer("offerID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

func (r *pgOfferRepository) Create(ctx context.Context, offer *models.GymPassOffer) error {
	query := `INSERT INTO gympass_offers
		(title, subheader, amount, currency, period, is_premium, synopsis, features, time_unit, duration, entries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("title", offer.Title))

	err := r.db.QueryRow(ctx, query,
		offer.Title, offer.Subheader, offer.Amount, offer.Currency, offer.Period, offer.IsPremium,
		offer.Synopsis, pq.Array(nonNil(offer.Features)), string(offer.TimeUnit), offer.Duration, offer.Entries,
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrOfferTitleTaken
		}
		r.logger.Error("Failed to create offer", zap.String("title", offer.Title), zap.Error(err))
		return fmt.Errorf("failed to create offer: %w", err)
	}
	r.logger.Info("Offer created", zap.Stringer("offerID", offer.ID), zap.String("title", offer.Title))
	return nil
}

func (r *pgOfferRepository) Update(ctx context.Context, offer *models.GymPassOffer) error {
	query := `UPDATE gympass_offers SET
		title = $2, subheader = $3, amount = $4, currency = $5, period = $6, is_premium = $7,
		synopsis = $8, features = $9, time_unit = $10, duration = $11, entries = $12, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("offerID", offer.ID))

	err := r.db.QueryRow(ctx, query,
		offer.ID, offer.Title, offer.Subheader, offer.Amount, offer.Currency, offer.Period, offer.IsPremium,
		offer.Synopsis, pq.Array(nonNil(offer.Features)), string(offer.TimeUnit), offer.Duration, offer.Entries,
	).Scan(&offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return models.ErrOfferNotFound
		case database.IsUniqueViolation(err):
			return models.ErrOfferTitleTaken
		}
		r.logger.Error("Failed to update offer", zap.Stringer("offerID", offer.ID), zap.Error(err))
		return fmt.Errorf("failed to update offer: %w", err)
	}
	r.logger.Info("Offer updated", zap.Stringer("offerID", offer.ID))
	return nil
}

// Delete снимает предложение с продажи.
func (r *pgOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE gympass_offers SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("offerID", id))

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete offer", zap.Stringer("offerID", id), zap.Error(err))
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOfferNotFound
	}
	r.logger.Info("Offer deleted", zap.Stringer("offerID", id))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
