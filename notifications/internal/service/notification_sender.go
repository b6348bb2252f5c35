package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gym-server/shared/interfaces"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var pushSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_push_sent_total",
		Help: "Total number of push deliveries by platform and result.",
	},
	[]string{"platform", "result"},
)

const startsAtLayout = "02.01.2006 15:04"

// Localizer - каталог текстов уведомлений (i18n.Translator).
type Localizer interface {
	Message(locale, code string, params ...string) string
}

type notificationService struct {
	tokens     interfaces.DeviceTokenRepository
	texts      Localizer
	timezone   *time.Location
	fcmSender  PlatformSender
	apnsSender PlatformSender
	logger     *zap.Logger
}

var _ NotificationService = (*notificationService)(nil)

// NewNotificationService создает сервис доставки. Отправитель может быть nil, если платформа не настроена.
func NewNotificationService(
	tokens interfaces.DeviceTokenRepository,
	texts Localizer,
	timezone *time.Location,
	fcmSender, apnsSender PlatformSender,
	logger *zap.Logger,
) NotificationService {
	if fcmSender == nil {
		logger.Warn("FCM sender is not configured")
	}
	if apnsSender == nil {
		logger.Warn("APNS sender is not configured")
	}
	if timezone == nil {
		timezone = time.UTC
	}
	return &notificationService{
		tokens:     tokens,
		texts:      texts,
		timezone:   timezone,
		fcmSender:  fcmSender,
		apnsSender: apnsSender,
		logger:     logger.Named("NotificationService"),
	}
}

// batch - токены одной платформы и одной локали.
type batch struct {
	sender PlatformSender
	locale string
	tokens []string
}

// Deliver отправляет уведомление на все устройства пользователя.
// Ошибка возвращается, только если не удалось доставить ни на одно устройство.
func (s *notificationService) Deliver(ctx context.Context, payload sharedMessaging.TrainingNotificationPayload) error {
	log := s.logger.With(zap.Stringer("userID", payload.UserID), zap.String("kind", string(payload.Kind)))

	devices, err := s.tokens.ListByUser(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(devices) == 0 {
		log.Debug("User has no registered devices")
		return nil
	}

	batches := s.group(devices, log)
	data := map[string]string{
		"kind":         string(payload.Kind),
		"trainingId":   payload.TrainingID.String(),
		"trainingType": string(payload.TrainingType),
		"startsAt":     payload.StartsAt.UTC().Format(time.RFC3339),
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		sendErrs  []error
		invalid   []string
		delivered int
	)
	for _, b := range batches {
		wg.Add(1)
		go func(b batch) {
			defer wg.Done()
			bad, err := b.sender.Send(ctx, b.tokens, s.render(payload, b.locale), data)

			mu.Lock()
			defer mu.Unlock()
			invalid = append(invalid, bad...)
			if err != nil {
				pushSentTotal.WithLabelValues(b.sender.Platform(), "error").Inc()
				sendErrs = append(sendErrs, fmt.Errorf("%s: %w", b.sender.Platform(), err))
				return
			}
			pushSentTotal.WithLabelValues(b.sender.Platform(), "success").Inc()
			delivered += len(b.tokens) - len(bad)
		}(b)
	}
	wg.Wait()

	if len(invalid) > 0 {
		if _, err := s.tokens.DeleteTokens(ctx, invalid); err != nil {
			log.Warn("Failed to delete invalid device tokens", zap.Int("count", len(invalid)), zap.Error(err))
		}
	}

	if len(sendErrs) > 0 {
		log.Error("Push delivery errors", zap.Errors("errors", sendErrs), zap.Int("delivered", delivered))
		if delivered == 0 {
			return errors.Join(sendErrs...)
		}
	}
	log.Info("Notification delivered", zap.Int("devices", delivered))
	return nil
}

func (s *notificationService) group(devices []models.DeviceToken, log *zap.Logger) []batch {
	index := make(map[string]int)
	var batches []batch
	for _, d := range devices {
		var sender PlatformSender
		switch d.Platform {
		case models.PlatformAndroid:
			sender = s.fcmSender
		case models.PlatformIOS:
			sender = s.apnsSender
		default:
			log.Warn("Unknown device platform", zap.String("platform", d.Platform))
			continue
		}
		if sender == nil {
			continue
		}
		key := d.Platform + "/" + d.Locale
		i, ok := index[key]
		if !ok {
			i = len(batches)
			index[key] = i
			batches = append(batches, batch{sender: sender, locale: d.Locale})
		}
		batches[i].tokens = append(batches[i].tokens, d.Token)
	}
	return batches
}

func (s *notificationService) render(payload sharedMessaging.TrainingNotificationPayload, locale string) PushNotification {
	startsAt := payload.StartsAt.In(s.timezone).Format(startsAtLayout)
	params := []string{startsAt}
	if payload.TrainingType == sharedMessaging.TrainingTypeGroup {
		params = []string{payload.Title, startsAt}
	}
	prefix := "push." + string(payload.Kind)
	return PushNotification{
		Title: s.texts.Message(locale, prefix+".title"),
		Body:  s.texts.Message(locale, prefix+".body", params...),
	}
}
