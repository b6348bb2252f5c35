package repository

import (
	"context"
	"fmt"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var _ interfaces.DeviceTokenRepository = (*pgDeviceTokenRepository)(nil)

type pgDeviceTokenRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgDeviceTokenRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.DeviceTokenRepository {
	return &pgDeviceTokenRepository{db: db, logger: logger.Named("PgDeviceTokenRepo")}
}

// Save - upsert по токену: устройство могло перейти к другому пользователю.
func (r *pgDeviceTokenRepository) Save(ctx context.Context, token *models.DeviceToken) error {
	query := `INSERT INTO device_tokens (token, user_id, platform, locale, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, locale = EXCLUDED.locale, updated_at = NOW()
		RETURNING updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", token.UserID), zap.String("platform", token.Platform))

	if err := r.db.QueryRow(ctx, query, token.Token, token.UserID, token.Platform, token.Locale).Scan(&token.UpdatedAt); err != nil {
		r.logger.Error("Failed to save device token", zap.Stringer("userID", token.UserID), zap.Error(err))
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (r *pgDeviceTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DeviceToken, error) {
	query := `SELECT token, user_id, platform, locale, updated_at FROM device_tokens
		WHERE user_id = $1 ORDER BY updated_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	tokens := make([]models.DeviceToken, 0)
	if err := pgxscan.Select(ctx, r.db, &tokens, query, userID); err != nil {
		r.logger.Error("Failed to list device tokens", zap.Stringer("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	return tokens, nil
}

func (r *pgDeviceTokenRepository) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	query := `DELETE FROM device_tokens WHERE token = $1 AND user_id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	tag, err := r.db.Exec(ctx, query, token, userID)
	if err != nil {
		r.logger.Error("Failed to delete device token", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDeviceTokenNotFound
	}
	return nil
}

func (r *pgDeviceTokenRepository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	query := `DELETE FROM device_tokens WHERE token = ANY($1)`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Int("count", len(tokens)))

	tag, err := r.db.Exec(ctx, query, pq.Array(tokens))
	if err != nil {
		r.logger.Error("Failed to delete invalid device tokens", zap.Int("count", len(tokens)), zap.Error(err))
		return 0, fmt.Errorf("failed to delete device tokens: %w", err)
	}
	r.logger.Info("Invalid device tokens deleted", zap.Int64("deleted", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
