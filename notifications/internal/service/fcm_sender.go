package service

import (
	"context"
	"fmt"

	"gym-server/notifications/internal/config"
	"gym-server/shared/models"

	firebase "firebase.google.com/go/v4"
	fcm "firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// fcmMaxBatch - лимит токенов в одном multicast-запросе FCM.
const fcmMaxBatch = 500

// fcmClient - часть *messaging.Client, которая нужна отправителю.
type fcmClient interface {
	SendEachForMulticast(ctx context.Context, message *fcm.MulticastMessage) (*fcm.BatchResponse, error)
}

type fcmSender struct {
	client fcmClient
	logger *zap.Logger
}

// NewFCMSender создает отправитель FCM по файлу ключа сервис-аккаунта.
// Если путь не задан, возвращает nil, nil.
func NewFCMSender(ctx context.Context, cfg config.FCMConfig, logger *zap.Logger) (PlatformSender, error) {
	if cfg.CredentialsPath == "" {
		logger.Warn("FCM credentials path is empty, FCM sender disabled")
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app from '%s': %w", cfg.CredentialsPath, err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get FCM messaging client: %w", err)
	}

	logger.Info("FCM sender initialized", zap.String("credentials_path", cfg.CredentialsPath))
	return newFCMSender(client, logger), nil
}

func newFCMSender(client fcmClient, logger *zap.Logger) *fcmSender {
	return &fcmSender{client: client, logger: logger.Named("FCMSender")}
}

func (s *fcmSender) Send(ctx context.Context, tokens []string, notification PushNotification, data map[string]string) ([]string, error) {
	var invalid []string
	failed := 0
	for start := 0; start < len(tokens); start += fcmMaxBatch {
		end := start + fcmMaxBatch
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]

		br, err := s.client.SendEachForMulticast(ctx, &fcm.MulticastMessage{
			Tokens: chunk,
			Notification: &fcm.Notification{
				Title: notification.Title,
				Body:  notification.Body,
			},
			Data:    data,
			Android: &fcm.AndroidConfig{Priority: "high"},
		})
		if err != nil {
			// проблема с запросом или соединением, а не с токенами
			return invalid, fmt.Errorf("fcm send failed: %w", err)
		}

		s.logger.Debug("FCM batch result", zap.Int("success_count", br.SuccessCount), zap.Int("failure_count", br.FailureCount))
		for idx, resp := range br.Responses {
			if resp.Success || idx >= len(chunk) {
				continue
			}
			failed++
			if fcm.IsUnregistered(resp.Error) || fcm.IsSenderIDMismatch(resp.Error) || fcm.IsInvalidArgument(resp.Error) {
				invalid = append(invalid, chunk[idx])
				s.logger.Warn("FCM token is invalid", zap.String("token", tokenPrefix(chunk[idx])), zap.Error(resp.Error))
				continue
			}
			s.logger.Error("FCM delivery failed", zap.String("token", tokenPrefix(chunk[idx])), zap.Error(resp.Error))
		}
	}

	if delivered := len(tokens) - failed; delivered == 0 && failed > len(invalid) {
		return invalid, fmt.Errorf("fcm delivery failed for all %d tokens", len(tokens))
	}
	return invalid, nil
}

func (s *fcmSender) Platform() string {
	return models.PlatformAndroid
}

// tokenPrefix возвращает начало токена для логирования.
func tokenPrefix(token string) string {
	const prefixLen = 10
	if len(token) < prefixLen {
		return token
	}
	return token[:prefixLen] + "..."
}
