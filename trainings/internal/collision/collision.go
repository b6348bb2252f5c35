// Package collision проверяет, что новая или измененная тренировка не пересекается
// по времени с занятиями того же тренера или в том же зале.
package collision

import (
	"context"
	"fmt"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var collisionsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trainings_collisions_detected_total",
	Help: "Rejected bookings by collision kind.",
}, []string{"kind"})

// Request - проверяемый слот.
type Request struct {
	TrainerIDs []uuid.UUID
	LocationID *uuid.UUID
	Start      time.Time
	End        time.Time
	// ExcludeID - бронирование, которое не считается конфликтом (сама изменяемая тренировка).
	ExcludeID *uuid.UUID
}

// TrainerOccupiedError - у тренера уже есть занятие в это время.
type TrainerOccupiedError struct {
	TrainerID uuid.UUID
	BookingID uuid.UUID
}

func (e *TrainerOccupiedError) Error() string {
	return fmt.Sprintf("trainer %s is occupied by booking %s", e.TrainerID, e.BookingID)
}

func (e *TrainerOccupiedError) Unwrap() error { return models.ErrTrainerOccupied }

// LocationOccupiedError - зал уже занят в это время.
type LocationOccupiedError struct {
	LocationID uuid.UUID
	BookingID  uuid.UUID
}

func (e *LocationOccupiedError) Error() string {
	return fmt.Sprintf("location %s is occupied by booking %s", e.LocationID, e.BookingID)
}

func (e *LocationOccupiedError) Unwrap() error { return models.ErrLocationOccupied }

// Overlaps - пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd).
// Занятия встык не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// booking - общее представление групповой и персональной тренировки.
type booking struct {
	id         uuid.UUID
	trainerIDs []uuid.UUID
	locationID *uuid.UUID
	start, end time.Time
}

type Validator struct {
	group      interfaces.GroupTrainingRepository
	individual interfaces.IndividualTrainingRepository
	logger     *zap.Logger
}

func NewValidator(group interfaces.GroupTrainingRepository, individual interfaces.IndividualTrainingRepository, logger *zap.Logger) *Validator {
	return &Validator{group: group, individual: individual, logger: logger.Named("CollisionValidator")}
}

// Check возвращает nil, если слот свободен. Конфликт по тренеру важнее конфликта по залу.
func (v *Validator) Check(ctx context.Context, req Request) error {
	if !req.Start.Before(req.End) {
		return models.ErrInvalidTimeRange
	}

	groups, err := v.group.FindOverlapping(ctx, req.TrainerIDs, req.LocationID, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("failed to load overlapping group trainings: %w", err)
	}
	individuals, err := v.individual.FindOverlapping(ctx, req.TrainerIDs, req.LocationID, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("failed to load overlapping individual trainings: %w", err)
	}

	bookings := make([]booking, 0, len(groups)+len(individuals))
	for _, g := range groups {
		loc := g.LocationID
		bookings = append(bookings, booking{id: g.ID, trainerIDs: g.TrainerIDs, locationID: &loc, start: g.StartsAt, end: g.EndsAt})
	}
	for _, it := range individuals {
		bookings = append(bookings, booking{id: it.ID, trainerIDs: []uuid.UUID{it.TrainerID}, locationID: it.LocationID, start: it.StartsAt, end: it.EndsAt})
	}

	var locationConflict *LocationOccupiedError
	for _, b := range bookings {
		if req.ExcludeID != nil && b.id == *req.ExcludeID {
			continue
		}
		if !Overlaps(req.Start, req.End, b.start, b.end) {
			continue
		}
		if trainerID, ok := sharedTrainer(req.TrainerIDs, b.trainerIDs); ok {
			collisionsDetected.WithLabelValues("trainer").Inc()
			v.logger.Info("Trainer collision detected", zap.Stringer("trainerID", trainerID), zap.Stringer("bookingID", b.id))
			return &TrainerOccupiedError{TrainerID: trainerID, BookingID: b.id}
		}
		if locationConflict == nil && req.LocationID != nil && b.locationID != nil && *b.locationID == *req.LocationID {
			locationConflict = &LocationOccupiedError{LocationID: *req.LocationID, BookingID: b.id}
		}
	}

	if locationConflict != nil {
		collisionsDetected.WithLabelValues("location").Inc()
		v.logger.Info("Location collision detected", zap.Stringer("locationID", locationConflict.LocationID), zap.Stringer("bookingID", locationConflict.BookingID))
		return locationConflict
	}
	return nil
}

func sharedTrainer(requested, booked []uuid.UUID) (uuid.UUID, bool) {
	for _, r := range requested {
		for _, b := range booked {
			if r == b {
				return r, true
			}
		}
	}
	return uuid.Nil, false
}
