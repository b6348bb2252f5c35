package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ interfaces.TokenRepository = (*redisTokenRepository)(nil)

// Ключи:
//
//	access_uuid:{uuid}  -> user id (TTL access-токена)
//	refresh_uuid:{uuid} -> user id (TTL refresh-токена)
//	user_tokens:{user}  -> set {"access:{uuid}", "refresh:{uuid}"} для массового отзыва
const (
	accessKeyPrefix  = "access_uuid:"
	refreshKeyPrefix = "refresh_uuid:"
	userSetPrefix    = "user_tokens:"
	accessMember     = "access"
	refreshMember    = "refresh"
)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository создает TokenRepository поверх Redis.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func userSetKey(userID uuid.UUID) string { return userSetPrefix + userID.String() }

func member(kind, tokenUUID string) string { return kind + ":" + tokenUUID }

func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	setKey := userSetKey(userID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accessKeyPrefix+td.AccessUUID, userID.String(), accessTTL)
		pipe.Set(ctx, refreshKeyPrefix+td.RefreshUUID, userID.String(), refreshTTL)
		pipe.SAdd(ctx, setKey, member(accessMember, td.AccessUUID), member(refreshMember, td.RefreshUUID))
		// set живет не дольше самого долгого refresh-токена
		pipe.ExpireGT(ctx, setKey, refreshTTL)
		pipe.ExpireNX(ctx, setKey, refreshTTL)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to store tokens", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to set token details in redis: %w", err)
	}

	r.logger.Debug("Tokens stored",
		zap.Stringer("userID", userID),
		zap.String("accessUUID", td.AccessUUID),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)
	return nil
}

func (r *redisTokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	var keys []string
	var members []interface{}
	if accessUUID != "" {
		keys = append(keys, accessKeyPrefix+accessUUID)
		members = append(members, member(accessMember, accessUUID))
	}
	if refreshUUID != "" {
		keys = append(keys, refreshKeyPrefix+refreshUUID)
		members = append(members, member(refreshMember, refreshUUID))
	}
	if len(keys) == 0 {
		return 0, nil
	}

	var delCmd *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.Del(ctx, keys...)
		pipe.SRem(ctx, userSetKey(userID), members...)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete tokens", zap.Stringer("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}

	deleted := delCmd.Val()
	r.logger.Debug("Tokens deleted", zap.Stringer("userID", userID), zap.Int64("deleted", deleted))
	return deleted, nil
}

func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.lookup(ctx, accessKeyPrefix+accessUUID)
}

func (r *redisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.lookup(ctx, refreshKeyPrefix+refreshUUID)
}

func (r *redisTokenRepository) lookup(ctx context.Context, key string) (uuid.UUID, error) {
	return r.userIDFrom(r.client.Get(ctx, key), key)
}

func (r *redisTokenRepository) userIDFrom(cmd *redis.StringCmd, key string) (uuid.UUID, error) {
	val, err := cmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to read token from redis", zap.String("key", key), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to read token from redis: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Corrupted user id in token storage", zap.String("key", key), zap.String("value", val))
		return uuid.Nil, fmt.Errorf("corrupted user id for %s: %w", key, err)
	}
	return userID, nil
}

// ConsumeRefreshUUID читает и удаляет refresh UUID одной командой GETDEL.
func (r *redisTokenRepository) ConsumeRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	key := refreshKeyPrefix + refreshUUID
	userID, err := r.userIDFrom(r.client.GetDel(ctx, key), key)
	if err != nil {
		return uuid.Nil, err
	}

	// ключ уже удален, запись в set только мешает массовому отзыву
	if err := r.client.SRem(ctx, userSetKey(userID), member(refreshMember, refreshUUID)).Err(); err != nil {
		r.logger.Warn("Failed to drop consumed refresh token from user set", zap.Stringer("userID", userID), zap.Error(err))
	}
	return userID, nil
}

func (r *redisTokenRepository) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	setKey := userSetKey(userID)
	log := r.logger.With(zap.Stringer("userID", userID))

	members, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error("Failed to read user token set", zap.Error(err))
		return 0, fmt.Errorf("failed to retrieve token identifiers for user %s: %w", userID, err)
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		kind, tokenUUID, ok := strings.Cut(m, ":")
		if !ok {
			log.Warn("Malformed token identifier in user set", zap.String("identifier", m))
			continue
		}
		switch kind {
		case accessMember:
			keys = append(keys, accessKeyPrefix+tokenUUID)
		case refreshMember:
			keys = append(keys, refreshKeyPrefix+tokenUUID)
		default:
			log.Warn("Unknown token type in user set", zap.String("identifier", m))
		}
	}

	var delCmd *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			delCmd = pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, setKey)
		return nil
	})
	if err != nil {
		log.Error("Failed to delete user tokens", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens for user %s: %w", userID, err)
	}

	var deleted int64
	if delCmd != nil {
		deleted = delCmd.Val()
	}
	log.Info("Revoked all user tokens", zap.Int64("deleted", deleted))
	return deleted, nil
}
