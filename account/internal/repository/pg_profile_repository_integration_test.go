package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-server/pkg/migration"
	"gym-server/shared/database"
	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type ProfileRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	profiles    interfaces.ProfileRepository
	trainers    interfaces.TrainerProfileRepository
}

func (s *ProfileRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)
	s.pgPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err)

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsDir,
	}, s.pgPool, zerolog.Nop())
	require.NoError(s.T(), migrator.Up(s.ctx))

	logger := zap.NewNop()
	s.profiles = NewPgProfileRepository(s.pgPool, logger)
	s.trainers = NewPgTrainerProfileRepository(s.pgPool, logger)
}

func (s *ProfileRepositorySuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *ProfileRepositorySuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE profiles CASCADE")
	require.NoError(s.T(), err)
}

func TestProfileRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(ProfileRepositorySuite))
}

func (s *ProfileRepositorySuite) createProfile(name string) uuid.UUID {
	id := uuid.New()
	require.NoError(s.T(), s.profiles.Create(s.ctx, &models.Profile{
		UserID: id, Email: name + "@example.com", Name: name, Surname: "Test",
	}))
	return id
}

func (s *ProfileRepositorySuite) TestCreateIsIdempotent() {
	t := s.T()
	id := s.createProfile("jan")

	// повторное событие с другими данными не перезаписывает профиль
	require.NoError(t, s.profiles.Create(s.ctx, &models.Profile{UserID: id, Email: "other@example.com", Name: "Other", Surname: "Name"}))

	p, err := s.profiles.GetByUserID(s.ctx, id)
	require.NoError(t, err)
	require.Equal(t, "jan@example.com", p.Email)
	require.Nil(t, p.Phone)
}

func (s *ProfileRepositorySuite) TestUpdateProfile() {
	t := s.T()
	id := s.createProfile("anna")
	phone := "+48500100200"

	p, err := s.profiles.Update(s.ctx, id, "Anna", "Nowak", &phone)
	require.NoError(t, err)
	require.Equal(t, "Nowak", p.Surname)
	require.NotNil(t, p.Phone)
	require.Equal(t, phone, *p.Phone)

	_, err = s.profiles.Update(s.ctx, uuid.New(), "X", "Y", nil)
	require.True(t, errors.Is(err, models.ErrProfileNotFound))
}

func (s *ProfileRepositorySuite) TestTrainerLifecycle() {
	t := s.T()
	id := s.createProfile("coach")

	_, err := s.trainers.Get(s.ctx, id)
	require.True(t, errors.Is(err, models.ErrTrainerNotFound))

	require.NoError(t, s.trainers.Ensure(s.ctx, id))
	require.NoError(t, s.trainers.Ensure(s.ctx, id))

	require.NoError(t, s.trainers.Update(s.ctx, &models.TrainerProfile{
		UserID: id, Synopsis: "Strength coach", Specializations: []string{"Powerlifting", "Mobility"},
	}))

	trainer, err := s.trainers.Get(s.ctx, id)
	require.NoError(t, err)
	require.Equal(t, "coach", trainer.Name)
	require.Equal(t, []string{"Powerlifting", "Mobility"}, trainer.Specializations)

	list, err := s.trainers.List(s.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.trainers.Delete(s.ctx, id))
	err = s.trainers.Update(s.ctx, &models.TrainerProfile{UserID: id})
	require.True(t, errors.Is(err, models.ErrTrainerNotFound))

	err = s.trainers.Ensure(s.ctx, uuid.New())
	require.True(t, errors.Is(err, models.ErrProfileNotFound))
}
