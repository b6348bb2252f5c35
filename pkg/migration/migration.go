package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

const defaultLockTimeout = 30 * time.Second

// Config содержит источник миграций.
type Config struct {
	MigrationsFS   fs.FS
	MigrationsPath string
	// MigrationsTable по умолчанию schema_migrations.
	MigrationsTable string
	LockTimeout     time.Duration
}

// Migrator применяет SQL-миграции через golang-migrate.
type Migrator struct {
	config Config
	pool   *pgxpool.Pool
	log    zerolog.Logger
}

// NewMigrator создает Migrator поверх пула pgx.
func NewMigrator(config Config, pool *pgxpool.Pool, log zerolog.Logger) *Migrator {
	if config.MigrationsTable == "" {
		config.MigrationsTable = "schema_migrations"
	}
	if config.LockTimeout == 0 {
		config.LockTimeout = defaultLockTimeout
	}
	return &Migrator{
		config: config,
		pool:   pool,
		log:    log.With().Str("component", "migrator").Logger(),
	}
}

// Up применяет все новые миграции. Отсутствие изменений ошибкой не считается.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "up", func(mg *migrate.Migrate) error { return mg.Up() })
}

// Down откатывает все миграции.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "down", func(mg *migrate.Migrate) error { return mg.Down() })
}

// Steps применяет (n > 0) или откатывает (n < 0) n миграций.
func (m *Migrator) Steps(ctx context.Context, n int) error {
	return m.run(ctx, "steps", func(mg *migrate.Migrate) error { return mg.Steps(n) })
}

// ForceVersion выставляет версию без выполнения миграций (снятие dirty-флага).
func (m *Migrator) ForceVersion(ctx context.Context, version uint) error {
	return m.run(ctx, "force", func(mg *migrate.Migrate) error { return mg.Force(int(version)) })
}

// Version возвращает текущую версию схемы и dirty-флаг.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	mg, err := m.newMigrate(ctx)
	if err != nil {
		return 0, false, err
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) run(ctx context.Context, op string, fn func(*migrate.Migrate) error) error {
	mg, err := m.newMigrate(ctx)
	if err != nil {
		return err
	}
	defer mg.Close()

	start := time.Now()
	if err := fn(mg); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Str("op", op).Msg("database schema is up to date")
			return nil
		}
		return fmt.Errorf("migration %s failed: %w", op, err)
	}

	version, dirty, _ := mg.Version()
	m.log.Info().
		Str("op", op).
		Uint("version", version).
		Bool("dirty", dirty).
		Dur("took", time.Since(start)).
		Msg("database migrations applied")
	return nil
}

func (m *Migrator) newMigrate(ctx context.Context) (*migrate.Migrate, error) {
	if err := m.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database is not reachable: %w", err)
	}

	driver, err := postgres.WithInstance(stdlib.OpenDBFromPool(m.pool), &postgres.Config{
		MigrationsTable: m.config.MigrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(m.config.MigrationsFS, m.config.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	mg.LockTimeout = m.config.LockTimeout
	return mg, nil
}

// NewLogger создает zerolog-логгер мигратора с уровнем из конфигурации сервиса.
func NewLogger(level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", service).Logger()
}
