package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PostgresConfig - параметры подключения к PostgreSQL.
type PostgresConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	IdleTimeout time.Duration
}

// DSN собирает строку подключения в URL-формате.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, sslMode)
}

// RetryPolicy задает число попыток подключения и паузу между ними.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy - 50 попыток раз в 3 секунды, пока поднимаются зависимости в docker compose.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 50, Delay: 3 * time.Second}

// ConnectPostgres создает пул и ждет, пока база ответит на ping.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig, retry RetryPolicy, logger *zap.Logger) (*pgxpool.Pool, error) {
	log := logger.Named("Postgres")
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	log.Info("Attempting to connect to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("db", cfg.Name),
		zap.Int("max_retries", retry.MaxRetries),
	)

	var lastErr error
	for attempt := 1; attempt <= retry.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err == nil {
			err = pool.Ping(connectCtx)
			if err != nil {
				pool.Close()
			}
		}
		cancel()

		if err == nil {
			log.Info("Connected to PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		lastErr = err
		log.Warn("PostgreSQL is not ready, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if err := sleepCtx(ctx, retry.Delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", retry.MaxRetries, lastErr)
}

// ConnectRedis создает клиента и ждет ответа на PING.
func ConnectRedis(ctx context.Context, opts *redis.Options, retry RetryPolicy, logger *zap.Logger) (*redis.Client, error) {
	log := logger.Named("Redis")
	log.Info("Attempting to connect to Redis", zap.String("address", opts.Addr), zap.Int("db", opts.DB))

	var lastErr error
	for attempt := 1; attempt <= retry.MaxRetries; attempt++ {
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			log.Info("Connected to Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		_ = client.Close()
		lastErr = err
		log.Warn("Redis is not ready, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if err := sleepCtx(ctx, retry.Delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", retry.MaxRetries, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
