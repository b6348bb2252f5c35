package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *TrainingsHandler) listGroupTrainings(c *gin.Context) {
	var q listGroupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.handleBindError(c, err)
		return
	}
	trainings, err := h.groups.List(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toGroupTrainingList(trainings)})
}

func (h *TrainingsHandler) getGroupTraining(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	training, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupTrainingResponse(training))
}

func (h *TrainingsHandler) createGroupTraining(c *gin.Context) {
	var req groupTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	training, err := h.groups.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupTrainingResponse(training))
}

func (h *TrainingsHandler) updateGroupTraining(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req groupTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	training, err := h.groups.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupTrainingResponse(training))
}

func (h *TrainingsHandler) deleteGroupTraining(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrainingsHandler) enroll(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	list, err := h.groups.Enroll(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	enrollmentsTotal.WithLabelValues(string(list)).Inc()
	h.logger.Info("User enrolled", zap.Stringer("userID", actor.UserID), zap.Stringer("trainingID", id), zap.String("list", string(list)))
	c.JSON(http.StatusCreated, enrollmentResponse{TrainingID: id, List: list})
}

func (h *TrainingsHandler) leave(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.groups.Leave(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrainingsHandler) participants(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	participants, err := h.groups.Participants(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": participants})
}

func (h *TrainingsHandler) myGroupTrainings(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	trainings, err := h.groups.MyTrainings(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toGroupTrainingList(trainings)})
}
