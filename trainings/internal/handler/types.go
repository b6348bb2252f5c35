package handler

import (
	"time"

	"gym-server/shared/models"
	"gym-server/trainings/internal/service"

	"github.com/google/uuid"
)

type createLocationRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type groupTrainingRequest struct {
	Title            string      `json:"title" binding:"required,max=100"`
	TrainerIDs       []uuid.UUID `json:"trainerIds" binding:"required,min=1,max=10,dive,required"`
	LocationID       uuid.UUID   `json:"locationId" binding:"required"`
	StartsAt         time.Time   `json:"startsAt" binding:"required"`
	EndsAt           time.Time   `json:"endsAt" binding:"required"`
	ParticipantLimit int         `json:"participantLimit" binding:"required,min=1,max=500"`
}

func (r groupTrainingRequest) toInput() service.GroupTrainingInput {
	return service.GroupTrainingInput{
		Title:            r.Title,
		TrainerIDs:       r.TrainerIDs,
		LocationID:       r.LocationID,
		StartsAt:         r.StartsAt,
		EndsAt:           r.EndsAt,
		ParticipantLimit: r.ParticipantLimit,
	}
}

// listGroupQuery - границы окна в RFC3339; без них берется неделя от начала дня.
type listGroupQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type individualTrainingRequest struct {
	TrainerID uuid.UUID `json:"trainerId" binding:"required"`
	StartsAt  time.Time `json:"startsAt" binding:"required"`
	EndsAt    time.Time `json:"endsAt" binding:"required"`
	Remarks   *string   `json:"remarks" binding:"omitempty,max=500"`
}

type acceptRequest struct {
	LocationID uuid.UUID `json:"locationId" binding:"required"`
}

type listIndividualQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED CANCELLED"`
	As     string `form:"as" binding:"omitempty,oneof=client trainer"`
}

func (q listIndividualQuery) status() *models.IndividualTrainingStatus {
	if q.Status == "" {
		return nil
	}
	s := models.IndividualTrainingStatus(q.Status)
	return &s
}

type groupTrainingResponse struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	TrainerIDs       []uuid.UUID `json:"trainerIds"`
	LocationID       uuid.UUID   `json:"locationId"`
	StartsAt         time.Time   `json:"startsAt"`
	EndsAt           time.Time   `json:"endsAt"`
	ParticipantLimit int         `json:"participantLimit"`
	BasicCount       int         `json:"basicCount"`
	ReserveCount     int         `json:"reserveCount"`
	FreeSlots        int         `json:"freeSlots"`
}

func toGroupTrainingResponse(t *models.GroupTraining) groupTrainingResponse {
	free := t.ParticipantLimit - t.BasicCount
	if free < 0 {
		free = 0
	}
	return groupTrainingResponse{
		ID:               t.ID,
		Title:            t.Title,
		TrainerIDs:       t.TrainerIDs,
		LocationID:       t.LocationID,
		StartsAt:         t.StartsAt,
		EndsAt:           t.EndsAt,
		ParticipantLimit: t.ParticipantLimit,
		BasicCount:       t.BasicCount,
		ReserveCount:     t.ReserveCount,
		FreeSlots:        free,
	}
}

func toGroupTrainingList(trainings []models.GroupTraining) []groupTrainingResponse {
	resp := make([]groupTrainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, toGroupTrainingResponse(&trainings[i]))
	}
	return resp
}

type enrollmentResponse struct {
	TrainingID uuid.UUID              `json:"trainingId"`
	List       models.ParticipantList `json:"list"`
}

type individualTrainingResponse struct {
	ID         uuid.UUID                       `json:"id"`
	ClientID   uuid.UUID                       `json:"clientId"`
	TrainerID  uuid.UUID                       `json:"trainerId"`
	LocationID *uuid.UUID                      `json:"locationId,omitempty"`
	StartsAt   time.Time                       `json:"startsAt"`
	EndsAt     time.Time                       `json:"endsAt"`
	Status     models.IndividualTrainingStatus `json:"status"`
	Remarks    *string                         `json:"remarks,omitempty"`
}

func toIndividualResponse(t *models.IndividualTraining) individualTrainingResponse {
	return individualTrainingResponse{
		ID:         t.ID,
		ClientID:   t.ClientID,
		TrainerID:  t.TrainerID,
		LocationID: t.LocationID,
		StartsAt:   t.StartsAt,
		EndsAt:     t.EndsAt,
		Status:     t.Status,
		Remarks:    t.Remarks,
	}
}
