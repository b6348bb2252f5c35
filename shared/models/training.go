package models

import (
	"time"

	"github.com/google/uuid"
)

// Location - зал или площадка, где проходят тренировки.
type Location struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GroupTraining - групповая тренировка. Счетчики участников заполняются запросом.
type GroupTraining struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	Title            string      `db:"title" json:"title"`
	TrainerIDs       []uuid.UUID `db:"trainer_ids" json:"trainerIds"`
	LocationID       uuid.UUID   `db:"location_id" json:"locationId"`
	StartsAt         time.Time   `db:"starts_at" json:"startsAt"`
	EndsAt           time.Time   `db:"ends_at" json:"endsAt"`
	ParticipantLimit int         `db:"participant_limit" json:"participantLimit"`
	BasicCount       int         `db:"basic_count" json:"basicCount"`
	ReserveCount     int         `db:"reserve_count" json:"reserveCount"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}

// HasTrainer сообщает, ведет ли тренер эту тренировку.
func (t *GroupTraining) HasTrainer(trainerID uuid.UUID) bool {
	for _, id := range t.TrainerIDs {
		if id == trainerID {
			return true
		}
	}
	return false
}

// ParticipantList - основной список или резерв групповой тренировки.
type ParticipantList string

const (
	ListBasic   ParticipantList = "BASIC"
	ListReserve ParticipantList = "RESERVE"
)

// GroupParticipant - запись пользователя на групповую тренировку.
type GroupParticipant struct {
	TrainingID uuid.UUID       `db:"training_id" json:"trainingId"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	List       ParticipantList `db:"list" json:"list"`
	EnrolledAt time.Time       `db:"enrolled_at" json:"enrolledAt"`
}

// IndividualTrainingStatus - состояние заявки на персональную тренировку.
type IndividualTrainingStatus string

const (
	IndividualPending   IndividualTrainingStatus = "PENDING"
	IndividualAccepted  IndividualTrainingStatus = "ACCEPTED"
	IndividualRejected  IndividualTrainingStatus = "REJECTED"
	IndividualCancelled IndividualTrainingStatus = "CANCELLED"
)

// IndividualTraining - персональная тренировка клиента с тренером.
// LocationID назначается тренером при подтверждении.
type IndividualTraining struct {
	ID         uuid.UUID                `db:"id" json:"id"`
	ClientID   uuid.UUID                `db:"client_id" json:"clientId"`
	TrainerID  uuid.UUID                `db:"trainer_id" json:"trainerId"`
	LocationID *uuid.UUID               `db:"location_id" json:"locationId,omitempty"`
	StartsAt   time.Time                `db:"starts_at" json:"startsAt"`
	EndsAt     time.Time                `db:"ends_at" json:"endsAt"`
	Status     IndividualTrainingStatus `db:"status" json:"status"`
	Remarks    *string                  `db:"remarks" json:"remarks,omitempty"`
	CreatedAt  time.Time                `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time                `db:"updated_at" json:"updatedAt"`
}
