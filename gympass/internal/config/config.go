package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gym-server/shared/database"
	"gym-server/shared/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config - настройки gympass-сервиса.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8083"`
	ServiceID  string `envconfig:"SERVICE_ID" default:"gympass-service"`

	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" required:"true"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	DBPassword    string

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"1"`
	RedisPassword string

	OfferCacheTTL     time.Duration `envconfig:"OFFER_CACHE_TTL" default:"10m"`
	MaxSuspensionDays int           `envconfig:"MAX_SUSPENSION_DAYS" default:"30"`

	// Timezone - часовой пояс клуба, по нему считается текущий день абонемента.
	Timezone string `envconfig:"TIMEZONE" default:"Europe/Warsaw"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	JWTSecret string
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// Location возвращает часовой пояс клуба.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Postgres возвращает параметры подключения к БД.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:        c.DBHost,
		Port:        c.DBPort,
		User:        c.DBUser,
		Password:    c.DBPassword,
		Name:        c.DBName,
		SSLMode:     c.DBSSLMode,
		MaxConns:    c.DBMaxConns,
		IdleTimeout: c.DBIdleTimeout,
	}
}

func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}
	if cfg.MaxSuspensionDays <= 0 {
		return nil, fmt.Errorf("MAX_SUSPENSION_DAYS must be positive, got %d", cfg.MaxSuspensionDays)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	var err error
	if cfg.DBPassword, err = utils.ReadSecret("db_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = utils.ReadSecret("jwt_secret"); err != nil {
		return nil, err
	}
	if cfg.RedisPassword, err = utils.ReadOptionalSecret("redis_password"); err != nil {
		return nil, err
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}
