package repository

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	pkgDatabase "gym-server/pkg/database"
	"gym-server/shared/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.ScheduleLocker = (*pgScheduleLocker)(nil)

type pgScheduleLocker struct {
	db     interfaces.Transactor
	logger *zap.Logger
}

// NewPgScheduleLocker блокирует расписание транзакционными advisory-локами Postgres.
// Локи общие для всех экземпляров сервиса. fn работает через пул, поэтому пулу нужно
// минимум два соединения.
func NewPgScheduleLocker(db interfaces.Transactor, logger *zap.Logger) interfaces.ScheduleLocker {
	return &pgScheduleLocker{db: db, logger: logger.Named("PgScheduleLocker")}
}

// WithScheduleLock берет локи в порядке возрастания ключей и держит их до конца fn.
func (l *pgScheduleLocker) WithScheduleLock(ctx context.Context, keys []uuid.UUID, fn func(ctx context.Context) error) error {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	return pkgDatabase.ExecuteInTransaction(ctx, l.db, func(tx pgx.Tx) error {
		for _, key := range sorted {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.String()); err != nil {
				l.logger.Error("Failed to acquire schedule lock", zap.Stringer("key", key), zap.Error(err))
				return fmt.Errorf("failed to lock schedule %s: %w", key, err)
			}
		}
		return fn(ctx)
	})
}
