package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ interfaces.AuthServiceClient = (*HTTPAuthServiceClient)(nil)

// HTTPAuthServiceClient ходит во внутренний API auth-сервиса.
type HTTPAuthServiceClient struct {
	baseURL           string
	httpClient        *http.Client
	interServiceToken string
	logger            *zap.Logger
}

func NewHTTPAuthServiceClient(baseURL, interServiceToken string, timeout time.Duration, logger *zap.Logger) *HTTPAuthServiceClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPAuthServiceClient{
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		httpClient:        &http.Client{Timeout: timeout},
		interServiceToken: interServiceToken,
		logger:            logger.Named("HTTPAuthServiceClient"),
	}
}

func (c *HTTPAuthServiceClient) GetUserInfo(ctx context.Context, userID uuid.UUID) (*interfaces.UserInfo, error) {
	log := c.logger.With(zap.Stringer("userID", userID))
	log.Debug("Requesting user info from auth service")

	endpointURL := c.baseURL + "/internal/auth/users/" + userID.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for auth service: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.interServiceToken != "" {
		req.Header.Set(sharedMiddleware.InternalServiceTokenHeader, c.interServiceToken)
	} else {
		log.Warn("Inter-service token is not set for auth service client, API call might fail")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Failed to execute request to auth service", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to auth service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, models.ErrUserNotFound
	default:
		log.Error("Auth service returned non-OK status", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var info interfaces.UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		log.Error("Failed to decode auth service response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode auth service response: %w", err)
	}
	return &info, nil
}
