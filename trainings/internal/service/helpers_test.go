package service

import (
	"context"
	"sync"
	"time"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// recordingNotifier запоминает отправленные уведомления.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sharedMessaging.TrainingNotificationPayload
}

func (n *recordingNotifier) Notify(_ context.Context, payload sharedMessaging.TrainingNotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, payload)
}

func (n *recordingNotifier) kinds() []sharedMessaging.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]sharedMessaging.NotificationKind, 0, len(n.sent))
	for _, p := range n.sent {
		kinds = append(kinds, p.Kind)
	}
	return kinds
}

// recordingLocker запоминает ключи блокировок и отмечает, что fn выполняется под локом.
type recordingLocker struct {
	mu   sync.Mutex
	keys [][]uuid.UUID
	held bool
}

func (l *recordingLocker) WithScheduleLock(ctx context.Context, keys []uuid.UUID, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.keys = append(l.keys, keys)
	l.held = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.held = false
		l.mu.Unlock()
	}()
	return fn(ctx)
}

func (l *recordingLocker) isHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

func trainerInfo(id uuid.UUID) *interfaces.UserInfo {
	return &interfaces.UserInfo{ID: id, Roles: []string{models.RoleUser, models.RoleTrainer}, Enabled: true}
}

func plainUserInfo(id uuid.UUID) *interfaces.UserInfo {
	return &interfaces.UserInfo{ID: id, Roles: []string{models.RoleUser}, Enabled: true}
}

func userActor(id uuid.UUID, roles ...string) models.Actor {
	return models.Actor{UserID: id, Roles: append([]string{models.RoleUser}, roles...)}
}
