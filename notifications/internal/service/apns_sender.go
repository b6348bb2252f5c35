package service

import (
	"context"
	"fmt"
	"sync"

	"gym-server/notifications/internal/config"
	"gym-server/shared/models"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
	"go.uber.org/zap"
)

// apnsMaxInFlight ограничивает число одновременных запросов к APNS.
const apnsMaxInFlight = 16

// apnsClient - часть *apns2.Client, которая нужна отправителю.
type apnsClient interface {
	PushWithContext(ctx apns2.Context, n *apns2.Notification) (*apns2.Response, error)
}

type apnsSender struct {
	client apnsClient
	topic  string
	logger *zap.Logger
}

// NewApnsSender создает отправитель APNS по .p8 ключу.
// Если конфигурация неполная, возвращает nil, nil.
func NewApnsSender(cfg config.APNSConfig, logger *zap.Logger) (PlatformSender, error) {
	if cfg.KeyPath == "" || cfg.KeyID == "" || cfg.TeamID == "" || cfg.Topic == "" {
		logger.Warn("APNS config is incomplete (key_path, key_id, team_id, topic), APNS sender disabled")
		return nil, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read APNS key from %s: %w", cfg.KeyPath, err)
	}
	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	logger.Info("APNS sender initialized",
		zap.String("key_id", cfg.KeyID),
		zap.String("team_id", cfg.TeamID),
		zap.String("topic", cfg.Topic),
		zap.Bool("production", cfg.Production),
	)
	return newApnsSender(client, cfg.Topic, logger), nil
}

func newApnsSender(client apnsClient, topic string, logger *zap.Logger) *apnsSender {
	return &apnsSender{client: client, topic: topic, logger: logger.Named("APNSSender")}
}

func (s *apnsSender) Send(ctx context.Context, tokens []string, notification PushNotification, data map[string]string) ([]string, error) {
	body := payload.NewPayload().
		AlertTitle(notification.Title).
		AlertBody(notification.Body).
		Sound("default")
	// кастомные данные на верхнем уровне payload, не в aps
	for k, v := range data {
		body.Custom(k, v)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		invalid  []string
		failed   int
		firstErr error
	)
	sem := make(chan struct{}, apnsMaxInFlight)
	for _, deviceToken := range tokens {
		wg.Add(1)
		sem <- struct{}{}
		go func(deviceToken string) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.client.PushWithContext(ctx, &apns2.Notification{
				DeviceToken: deviceToken,
				Topic:       s.topic,
				Payload:     body,
				Priority:    apns2.PriorityHigh,
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				s.logger.Error("APNS push failed", zap.String("token", tokenPrefix(deviceToken)), zap.Error(err))
				failed++
				if firstErr == nil {
					firstErr = fmt.Errorf("apns send error: %w", err)
				}
			case !res.Sent():
				failed++
				if res.Reason == apns2.ReasonUnregistered || res.Reason == apns2.ReasonBadDeviceToken {
					invalid = append(invalid, deviceToken)
					s.logger.Warn("APNS token is invalid", zap.String("token", tokenPrefix(deviceToken)), zap.String("reason", res.Reason))
					return
				}
				s.logger.Warn("APNS notification rejected",
					zap.String("token", tokenPrefix(deviceToken)),
					zap.Int("status_code", res.StatusCode),
					zap.String("reason", res.Reason),
				)
				if firstErr == nil {
					firstErr = fmt.Errorf("apns delivery failed: %s", res.Reason)
				}
			}
		}(deviceToken)
	}
	wg.Wait()

	if failed == len(tokens) && firstErr != nil {
		return invalid, firstErr
	}
	return invalid, nil
}

func (s *apnsSender) Platform() string {
	return models.PlatformIOS
}
