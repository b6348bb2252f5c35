package messaging

import (
	"context"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var notificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trainings_notifications_published_total",
	Help: "Training notifications sent to the broker, by kind and result.",
}, []string{"kind", "result"})

// TrainingNotifier публикует уведомления о тренировках в training_notifications.
// Ошибки брокера только логируются: изменение уже сохранено в БД.
type TrainingNotifier struct {
	publisher interfaces.EventPublisher
	logger    *zap.Logger
}

func NewTrainingNotifier(publisher interfaces.EventPublisher, logger *zap.Logger) *TrainingNotifier {
	return &TrainingNotifier{publisher: publisher, logger: logger.Named("TrainingNotifier")}
}

func (n *TrainingNotifier) Notify(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload) {
	if n == nil || n.publisher == nil {
		return
	}
	kind := string(payload.Kind)
	if err := n.publisher.Publish(ctx, payload.RoutingKey(), payload); err != nil {
		notificationsPublished.WithLabelValues(kind, "error").Inc()
		n.logger.Error("Failed to publish training notification",
			zap.String("kind", kind),
			zap.Stringer("userID", payload.UserID),
			zap.Stringer("trainingID", payload.TrainingID),
			zap.Error(err))
		return
	}
	notificationsPublished.WithLabelValues(kind, "ok").Inc()
	n.logger.Debug("Training notification published", zap.String("kind", kind), zap.Stringer("userID", payload.UserID))
}
