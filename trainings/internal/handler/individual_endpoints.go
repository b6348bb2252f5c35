package handler

import (
	"context"
	"net/http"

	"gym-server/shared/models"
	"gym-server/trainings/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *TrainingsHandler) requestIndividual(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req individualTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	training, err := h.individuals.Request(c.Request.Context(), actor, service.IndividualRequestInput{
		TrainerID: req.TrainerID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Remarks:   req.Remarks,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	individualTransitionsTotal.WithLabelValues(string(training.Status)).Inc()
	c.JSON(http.StatusCreated, toIndividualResponse(training))
}

func (h *TrainingsHandler) myIndividualTrainings(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q listIndividualQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.handleBindError(c, err)
		return
	}
	trainings, err := h.individuals.ListMine(c.Request.Context(), actor, q.As == "trainer", q.status())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]individualTrainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, toIndividualResponse(&trainings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *TrainingsHandler) acceptIndividual(c *gin.Context) {
	var req acceptRequest
	h.transition(c, &req, func(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error) {
		return h.individuals.Accept(ctx, actor, id, req.LocationID)
	})
}

func (h *TrainingsHandler) rejectIndividual(c *gin.Context) {
	h.transition(c, nil, h.individuals.Reject)
}

func (h *TrainingsHandler) cancelIndividual(c *gin.Context) {
	h.transition(c, nil, h.individuals.Cancel)
}

// transition - общий путь для accept/reject/cancel: актор, id, опциональное тело.
func (h *TrainingsHandler) transition(
	c *gin.Context,
	body interface{},
	apply func(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IndividualTraining, error),
) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if body != nil {
		if err := c.ShouldBindJSON(body); err != nil {
			h.handleBindError(c, err)
			return
		}
	}
	training, err := apply(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	individualTransitionsTotal.WithLabelValues(string(training.Status)).Inc()
	c.JSON(http.StatusOK, toIndividualResponse(training))
}
