package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const offersCacheKey = "gympass:offers"

var _ interfaces.GymPassOfferCache = (*redisOfferCache)(nil)

type redisOfferCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisOfferCache кеширует список предложений под одним ключом на ttl.
func NewRedisOfferCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.GymPassOfferCache {
	return &redisOfferCache{client: client, ttl: ttl, logger: logger.Named("RedisOfferCache")}
}

func (c *redisOfferCache) GetOffers(ctx context.Context) ([]models.GymPassOffer, bool, error) {
	data, err := c.client.Get(ctx, offersCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read offers cache: %w", err)
	}

	var offers []models.GymPassOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		// битый кеш считаем промахом
		c.logger.Warn("Corrupted offers cache entry, ignoring", zap.Error(err))
		return nil, false, nil
	}
	return offers, true, nil
}

func (c *redisOfferCache) SetOffers(ctx context.Context, offers []models.GymPassOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}
	if err := c.client.Set(ctx, offersCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write offers cache: %w", err)
	}
	return nil
}

func (c *redisOfferCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, offersCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate offers cache: %w", err)
	}
	c.logger.Debug("Offers cache invalidated")
	return nil
}
