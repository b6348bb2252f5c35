package service

import (
	"context"
	"fmt"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"
	"gym-server/shared/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseInput - параметры покупки. UserID == nil означает покупку для себя,
// StartDate == nil - начало сегодня.
type PurchaseInput struct {
	OfferID   uuid.UUID
	UserID    *uuid.UUID
	StartDate *time.Time
}

// PassStatus - абонемент вместе с его состоянием на сегодня.
type PassStatus struct {
	Pass   *models.PurchasedGymPass
	Status models.GymPassStatus
}

// GymPassService - покупка и проверка абонементов.
type GymPassService interface {
	Purchase(ctx context.Context, actor models.Actor, in PurchaseInput) (*models.PurchasedGymPass, error)
	Status(ctx context.Context, actor models.Actor, passID uuid.UUID) (*PassStatus, error)
	RegisterEntry(ctx context.Context, actor models.Actor, passID uuid.UUID) (*models.PurchasedGymPass, error)
	Suspend(ctx context.Context, actor models.Actor, passID uuid.UUID, until time.Time) (*models.PurchasedGymPass, error)
	ListForUser(ctx context.Context, actor models.Actor, userID uuid.UUID) ([]PassStatus, error)
}

type gymPassServiceImpl struct {
	offers            interfaces.GymPassOfferRepository
	passes            interfaces.PurchasedGymPassRepository
	maxSuspensionDays int
	location          *time.Location
	now               func() time.Time
	logger            *zap.Logger
}

// Option настраивает GymPassService.
type Option func(*gymPassServiceImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *gymPassServiceImpl) { s.now = now }
}

// WithLocation задает часовой пояс клуба: в нем определяется "сегодня".
func WithLocation(loc *time.Location) Option {
	return func(s *gymPassServiceImpl) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewGymPassService(
	offers interfaces.GymPassOfferRepository,
	passes interfaces.PurchasedGymPassRepository,
	maxSuspensionDays int,
	logger *zap.Logger,
	opts ...Option,
) GymPassService {
	s := &gymPassServiceImpl{
		offers:            offers,
		passes:            passes,
		maxSuspensionDays: maxSuspensionDays,
		location:          time.UTC,
		now:               time.Now,
		logger:            logger.Named("GymPassService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gymPassServiceImpl) today() time.Time {
	return utils.DateIn(s.now(), s.location)
}

func (s *gymPassServiceImpl) Purchase(ctx context.Context, actor models.Actor, in PurchaseInput) (*models.PurchasedGymPass, error) {
	owner := actor.UserID
	if in.UserID != nil && *in.UserID != actor.UserID {
		if !actor.HasRole(models.RoleEmployee) {
			return nil, models.ErrForbidden
		}
		owner = *in.UserID
	}

	today := s.today()
	start := today
	if in.StartDate != nil {
		start = utils.TruncateToDate(*in.StartDate)
		if start.Before(today) {
			return nil, models.ErrInvalidStartDate
		}
	}

	offer, err := s.offers.GetByID(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.IsDeleted() {
		return nil, models.ErrOfferNotFound
	}

	end, err := EndDate(start, offer.TimeUnit, offer.Duration)
	if err != nil {
		return nil, fmt.Errorf("offer %s has invalid duration: %w", offer.ID, err)
	}

	pass := &models.PurchasedGymPass{
		OfferID:    offer.ID,
		OfferTitle: offer.Title,
		UserID:     owner,
		StartDate:  start,
		EndDate:    end,
	}
	if offer.Entries != nil {
		pass.EntriesLeft = models.IntPtr(*offer.Entries)
	}

	if err := s.passes.Create(ctx, pass); err != nil {
		return nil, err
	}
	s.logger.Info("Gym pass purchased",
		zap.Stringer("passID", pass.ID),
		zap.Stringer("userID", owner),
		zap.Stringer("actorID", actor.UserID),
		zap.String("offer", offer.Title),
	)
	return pass, nil
}

func (s *gymPassServiceImpl) Status(ctx context.Context, actor models.Actor, passID uuid.UUID) (*PassStatus, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	if pass.UserID != actor.UserID && !actor.IsStaff() {
		return nil, models.ErrForbidden
	}
	return &PassStatus{Pass: pass, Status: EvaluateStatus(pass, s.today())}, nil
}

func (s *gymPassServiceImpl) RegisterEntry(ctx context.Context, actor models.Actor, passID uuid.UUID) (*models.PurchasedGymPass, error) {
	if !actor.HasRole(models.RoleEmployee) {
		return nil, models.ErrForbidden
	}

	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	if err := StatusError(EvaluateStatus(pass, s.today())); err != nil {
		s.logger.Info("Entry rejected", zap.Stringer("passID", passID), zap.Error(err))
		return nil, err
	}

	updated, err := s.passes.RegisterEntry(ctx, passID, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Entry registered", zap.Stringer("passID", passID), zap.Stringer("employeeID", actor.UserID))
	return updated, nil
}

func (s *gymPassServiceImpl) Suspend(ctx context.Context, actor models.Actor, passID uuid.UUID, until time.Time) (*models.PurchasedGymPass, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	if pass.UserID != actor.UserID && !actor.HasRole(models.RoleEmployee) {
		return nil, models.ErrForbidden
	}
	if pass.EntriesLeft != nil {
		return nil, models.ErrGymPassNotTimeLimited
	}

	today := s.today()
	if err := StatusError(EvaluateStatus(pass, today)); err != nil {
		return nil, err
	}

	until = utils.TruncateToDate(until)
	if !until.After(today) || utils.DaysBetween(today, until) > s.maxSuspensionDays {
		return nil, models.ErrInvalidSuspensionDate
	}

	// заморожены дни с сегодняшнего по until включительно
	frozenDays := utils.DaysBetween(today, until) + 1
	newEnd := utils.TruncateToDate(pass.EndDate).AddDate(0, 0, frozenDays)

	return s.passes.Suspend(ctx, passID, until, newEnd)
}

func (s *gymPassServiceImpl) ListForUser(ctx context.Context, actor models.Actor, userID uuid.UUID) ([]PassStatus, error) {
	if userID != actor.UserID && !actor.IsStaff() {
		return nil, models.ErrForbidden
	}

	passes, err := s.passes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	result := make([]PassStatus, 0, len(passes))
	for i := range passes {
		p := passes[i]
		result = append(result, PassStatus{Pass: &p, Status: EvaluateStatus(&p, today)})
	}
	return result, nil
}
