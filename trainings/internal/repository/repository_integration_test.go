package repository

import (
	"context"
	"sync"
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

type TrainingsRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	locations   interfaces.LocationRepository
	groups      interfaces.GroupTrainingRepository
	individuals interfaces.IndividualTrainingRepository
	locker      interfaces.ScheduleLocker
	now         time.Time
}

func (s *TrainingsRepositorySuite) SetupSuite() {
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
	s.locations = NewPgLocationRepository(s.pgPool, logger)
	s.groups = NewPgGroupTrainingRepository(s.pgPool, logger)
	s.individuals = NewPgIndividualTrainingRepository(s.pgPool, logger)
	s.locker = NewPgScheduleLocker(s.pgPool, logger)
	s.now = time.Now().UTC().Truncate(time.Second)
}

func (s *TrainingsRepositorySuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *TrainingsRepositorySuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE group_training_participants, group_trainings, individual_trainings, locations CASCADE")
	require.NoError(s.T(), err)
}

func TestTrainingsRepositorySuite(t *testing.T) {
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

	suite.Run(t, new(TrainingsRepositorySuite))
}

func (s *TrainingsRepositorySuite) createLocation(name string) *models.Location {
	location := &models.Location{Name: name}
	require.NoError(s.T(), s.locations.Create(s.ctx, location))
	return location
}

func (s *TrainingsRepositorySuite) createGroup(locationID uuid.UUID, limit int, start time.Time, trainers ...uuid.UUID) *models.GroupTraining {
	training := &models.GroupTraining{
		Title:            "Crossfit",
		TrainerIDs:       trainers,
		LocationID:       locationID,
		StartsAt:         start,
		EndsAt:           start.Add(time.Hour),
		ParticipantLimit: limit,
	}
	require.NoError(s.T(), s.groups.Create(s.ctx, training))
	return training
}

func (s *TrainingsRepositorySuite) TestLocationLifecycle() {
	hall := s.createLocation("Hall A")

	dup := &models.Location{Name: "Hall A"}
	s.ErrorIs(s.locations.Create(s.ctx, dup), models.ErrLocationNameTaken)

	busy, err := s.locations.HasUpcomingTrainings(s.ctx, hall.ID, s.now)
	s.Require().NoError(err)
	s.False(busy)

	s.createGroup(hall.ID, 10, s.now.Add(24*time.Hour), uuid.New())
	busy, err = s.locations.HasUpcomingTrainings(s.ctx, hall.ID, s.now)
	s.Require().NoError(err)
	s.True(busy)

	s.ErrorIs(s.locations.Delete(s.ctx, hall.ID), models.ErrLocationInUse)
	s.ErrorIs(s.locations.Delete(s.ctx, uuid.New()), models.ErrLocationNotFound)

	all, err := s.locations.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *TrainingsRepositorySuite) TestEnrollRespectsLimitUnderConcurrency() {
	hall := s.createLocation("Hall B")
	training := s.createGroup(hall.ID, 3, s.now.Add(48*time.Hour), uuid.New())

	const users = 7
	results := make(chan models.ParticipantList, users)
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := s.groups.Enroll(s.ctx, training.ID, uuid.New(), s.now)
			s.NoError(err)
			results <- list
		}()
	}
	wg.Wait()
	close(results)

	counts := map[models.ParticipantList]int{}
	for list := range results {
		counts[list]++
	}
	s.Equal(3, counts[models.ListBasic])
	s.Equal(4, counts[models.ListReserve])

	loaded, err := s.groups.GetByID(s.ctx, training.ID)
	s.Require().NoError(err)
	s.Equal(3, loaded.BasicCount)
	s.Equal(4, loaded.ReserveCount)
}

func (s *TrainingsRepositorySuite) TestLeavePromotesEarliestReserve() {
	hall := s.createLocation("Hall C")
	training := s.createGroup(hall.ID, 1, s.now.Add(48*time.Hour), uuid.New())

	first, second, third := uuid.New(), uuid.New(), uuid.New()
	list, err := s.groups.Enroll(s.ctx, training.ID, first, s.now)
	s.Require().NoError(err)
	s.Equal(models.ListBasic, list)
	list, err = s.groups.Enroll(s.ctx, training.ID, second, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.Equal(models.ListReserve, list)
	_, err = s.groups.Enroll(s.ctx, training.ID, third, s.now.Add(2*time.Minute))
	s.Require().NoError(err)

	_, err = s.groups.Enroll(s.ctx, training.ID, first, s.now)
	s.ErrorIs(err, models.ErrAlreadyEnrolled)

	promoted, err := s.groups.Leave(s.ctx, training.ID, first, s.now)
	s.Require().NoError(err)
	s.Require().NotNil(promoted)
	s.Equal(second, *promoted)

	// уход из резерва никого не продвигает
	promoted, err = s.groups.Leave(s.ctx, training.ID, third, s.now)
	s.Require().NoError(err)
	s.Nil(promoted)

	_, err = s.groups.Leave(s.ctx, training.ID, third, s.now)
	s.ErrorIs(err, models.ErrNotEnrolled)

	participants, err := s.groups.Participants(s.ctx, training.ID)
	s.Require().NoError(err)
	s.Require().Len(participants, 1)
	s.Equal(second, participants[0].UserID)
	s.Equal(models.ListBasic, participants[0].List)

	mine, err := s.groups.ListByParticipant(s.ctx, second, s.now)
	s.Require().NoError(err)
	s.Len(mine, 1)
}

func (s *TrainingsRepositorySuite) TestRaisedLimitPromotesReserveInOrder() {
	hall := s.createLocation("Hall H")
	training := s.createGroup(hall.ID, 2, s.now.Add(48*time.Hour), uuid.New())

	enrolled := make([]uuid.UUID, 5)
	for i := range enrolled {
		enrolled[i] = uuid.New()
		_, err := s.groups.Enroll(s.ctx, training.ID, enrolled[i], s.now.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)
	}

	// два места из трех резервных: переходят записавшиеся раньше
	training.ParticipantLimit = 4
	promoted, err := s.groups.Update(s.ctx, training)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{enrolled[2], enrolled[3]}, promoted)
	s.Equal(4, training.BasicCount)

	// новый участник встает в резерв за оставшимся
	late := uuid.New()
	list, err := s.groups.Enroll(s.ctx, training.ID, late, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal(models.ListReserve, list)

	training.ParticipantLimit = 10
	promoted, err = s.groups.Update(s.ctx, training)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{enrolled[4], late}, promoted)

	loaded, err := s.groups.GetByID(s.ctx, training.ID)
	s.Require().NoError(err)
	s.Equal(6, loaded.BasicCount)
	s.Equal(0, loaded.ReserveCount)
}

func (s *TrainingsRepositorySuite) TestScheduleLockSerializesSameKey() {
	trainer, hall, other := uuid.New(), uuid.New(), uuid.New()
	entered := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- s.locker.WithScheduleLock(s.ctx, []uuid.UUID{trainer, hall}, func(context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	// другой ключ не ждет
	s.Require().NoError(s.locker.WithScheduleLock(s.ctx, []uuid.UUID{other}, func(context.Context) error { return nil }))

	secondEntered := make(chan struct{})
	secondDone := make(chan error, 1)
	go func() {
		secondDone <- s.locker.WithScheduleLock(s.ctx, []uuid.UUID{hall}, func(context.Context) error {
			close(secondEntered)
			return nil
		})
	}()

	select {
	case <-secondEntered:
		s.Fail("second caller entered while the hall was locked")
	case <-time.After(300 * time.Millisecond):
	}

	close(release)
	s.Require().NoError(<-firstDone)
	s.Require().NoError(<-secondDone)
	<-secondEntered

	errBusy := models.ErrTrainerOccupied
	s.ErrorIs(s.locker.WithScheduleLock(s.ctx, []uuid.UUID{trainer}, func(context.Context) error { return errBusy }), errBusy)
}

func (s *TrainingsRepositorySuite) TestEnrollRejectsStartedTraining() {
	hall := s.createLocation("Hall D")
	training := s.createGroup(hall.ID, 5, s.now.Add(time.Hour), uuid.New())

	_, err := s.groups.Enroll(s.ctx, training.ID, uuid.New(), s.now.Add(2*time.Hour))
	s.ErrorIs(err, models.ErrTrainingInPast)
	_, err = s.groups.Enroll(s.ctx, uuid.New(), uuid.New(), s.now)
	s.ErrorIs(err, models.ErrTrainingNotFound)
}

func (s *TrainingsRepositorySuite) TestUpdateLimitBelowParticipants() {
	hall := s.createLocation("Hall E")
	training := s.createGroup(hall.ID, 3, s.now.Add(24*time.Hour), uuid.New())
	for i := 0; i < 2; i++ {
		_, err := s.groups.Enroll(s.ctx, training.ID, uuid.New(), s.now)
		s.Require().NoError(err)
	}

	training.ParticipantLimit = 1
	_, err := s.groups.Update(s.ctx, training)
	s.ErrorIs(err, models.ErrLimitBelowParticipants)

	training.ParticipantLimit = 2
	training.Title = "Crossfit advanced"
	promoted, err := s.groups.Update(s.ctx, training)
	s.Require().NoError(err)
	s.Empty(promoted)

	loaded, err := s.groups.GetByID(s.ctx, training.ID)
	s.Require().NoError(err)
	s.Equal("Crossfit advanced", loaded.Title)
	s.Equal(2, loaded.ParticipantLimit)
}

func (s *TrainingsRepositorySuite) TestFindOverlapping() {
	hall := s.createLocation("Hall F")
	otherHall := s.createLocation("Hall G")
	trainer, otherTrainer := uuid.New(), uuid.New()
	start := s.now.Add(72 * time.Hour)
	busy := s.createGroup(hall.ID, 5, start, trainer)

	found, err := s.groups.FindOverlapping(s.ctx, []uuid.UUID{trainer}, &otherHall.ID, start.Add(30*time.Minute), start.Add(90*time.Minute))
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(busy.ID, found[0].ID)

	found, err = s.groups.FindOverlapping(s.ctx, []uuid.UUID{otherTrainer}, &hall.ID, start.Add(time.Hour), start.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Empty(found, "back to back bookings do not overlap")

	found, err = s.groups.FindOverlapping(s.ctx, []uuid.UUID{otherTrainer}, nil, start, start.Add(time.Hour))
	s.Require().NoError(err)
	s.Empty(found)

	pending := &models.IndividualTraining{
		ClientID: uuid.New(), TrainerID: trainer,
		StartsAt: start.Add(3 * time.Hour), EndsAt: start.Add(4 * time.Hour),
		Status: models.IndividualPending,
	}
	s.Require().NoError(s.individuals.Create(s.ctx, pending))

	ind, err := s.individuals.FindOverlapping(s.ctx, []uuid.UUID{trainer}, &hall.ID, start.Add(3*time.Hour), start.Add(5*time.Hour))
	s.Require().NoError(err)
	s.Len(ind, 1)

	_, err = s.individuals.UpdateStatus(s.ctx, pending.ID, models.IndividualPending, models.IndividualRejected, nil)
	s.Require().NoError(err)
	ind, err = s.individuals.FindOverlapping(s.ctx, []uuid.UUID{trainer}, &hall.ID, start.Add(3*time.Hour), start.Add(5*time.Hour))
	s.Require().NoError(err)
	s.Empty(ind, "rejected trainings do not block the slot")
}

func (s *TrainingsRepositorySuite) TestIndividualStatusTransitions() {
	hall := s.createLocation("Hall H")
	client, trainer := uuid.New(), uuid.New()
	remarks := "knee injury"
	training := &models.IndividualTraining{
		ClientID: client, TrainerID: trainer,
		StartsAt: s.now.Add(24 * time.Hour), EndsAt: s.now.Add(25 * time.Hour),
		Status: models.IndividualPending, Remarks: &remarks,
	}
	s.Require().NoError(s.individuals.Create(s.ctx, training))

	accepted, err := s.individuals.UpdateStatus(s.ctx, training.ID, models.IndividualPending, models.IndividualAccepted, &hall.ID)
	s.Require().NoError(err)
	s.Equal(models.IndividualAccepted, accepted.Status)
	s.Require().NotNil(accepted.LocationID)
	s.Equal(hall.ID, *accepted.LocationID)

	_, err = s.individuals.UpdateStatus(s.ctx, training.ID, models.IndividualPending, models.IndividualRejected, nil)
	s.ErrorIs(err, models.ErrInvalidTransition)
	_, err = s.individuals.UpdateStatus(s.ctx, uuid.New(), models.IndividualPending, models.IndividualRejected, nil)
	s.ErrorIs(err, models.ErrTrainingNotFound)

	accStatus := models.IndividualAccepted
	byClient, err := s.individuals.ListByClient(s.ctx, client, &accStatus)
	s.Require().NoError(err)
	s.Len(byClient, 1)

	pendStatus := models.IndividualPending
	byTrainer, err := s.individuals.ListByTrainer(s.ctx, trainer, &pendStatus)
	s.Require().NoError(err)
	s.Empty(byTrainer)

	all, err := s.individuals.ListByTrainer(s.ctx, trainer, nil)
	s.Require().NoError(err)
	s.Len(all, 1)
}
