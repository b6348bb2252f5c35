package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/google/uuid"
)

// Notifier отправляет пользователю уведомление о тренировке. Ошибки доставки не возвращаются.
type Notifier interface {
	Notify(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload)
}

type settings struct {
	now    func() time.Time
	locker interfaces.ScheduleLocker
}

// Option настраивает сервисы тренировок.
type Option func(*settings)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithScheduleLocker задает блокировку расписания на время проверки пересечений и записи.
func WithScheduleLocker(locker interfaces.ScheduleLocker) Option {
	return func(s *settings) { s.locker = locker }
}

// noScheduleLock выполняет fn без блокировки (один экземпляр, тесты).
type noScheduleLock struct{}

func (noScheduleLock) WithScheduleLock(ctx context.Context, _ []uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func applyOptions(opts []Option) settings {
	s := settings{now: time.Now, locker: noScheduleLock{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ensureTrainers проверяет через auth, что каждый пользователь активен и имеет ROLE_TRAINER.
func ensureTrainers(ctx context.Context, auth interfaces.AuthServiceClient, ids []uuid.UUID) error {
	for _, id := range ids {
		info, err := auth.GetUserInfo(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				return fmt.Errorf("%w: %s", models.ErrNotATrainer, id)
			}
			return fmt.Errorf("failed to verify trainer %s: %w", id, err)
		}
		if !models.HasRole(info.Roles, models.RoleTrainer) || !info.Enabled || info.IsBanned {
			return fmt.Errorf("%w: %s", models.ErrNotATrainer, id)
		}
	}
	return nil
}

// scheduleKeys - ключи блокировки расписания: тренеры и зал.
func scheduleKeys(trainerIDs []uuid.UUID, locationID *uuid.UUID) []uuid.UUID {
	keys := append([]uuid.UUID{}, trainerIDs...)
	if locationID != nil {
		keys = append(keys, *locationID)
	}
	return uniqueIDs(keys)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
