package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ConfirmationCleaner удаляет просроченные токены подтверждения.
type ConfirmationCleaner interface {
	CleanupExpiredConfirmations(ctx context.Context, now time.Time) (int64, error)
}

// RunConfirmationCleanup запускает очистку раз в interval, пока не отменен ctx.
func RunConfirmationCleanup(ctx context.Context, cleaner ConfirmationCleaner, interval time.Duration, logger *zap.Logger) {
	log := logger.Named("ConfirmationCleanup")
	if interval <= 0 {
		log.Warn("Cleanup interval is not positive, worker disabled", zap.Duration("interval", interval))
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info("Confirmation token cleanup started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("Confirmation token cleanup stopped")
			return
		case now := <-ticker.C:
			if _, err := cleaner.CleanupExpiredConfirmations(ctx, now); err != nil {
				log.Warn("Cleanup run failed", zap.Error(err))
			}
		}
	}
}
