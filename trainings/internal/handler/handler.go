package handler

import (
	"errors"
	"net/http"

	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"
	"gym-server/trainings/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrainingsHandler - HTTP API залов, групповых и персональных тренировок.
type TrainingsHandler struct {
	locations   service.LocationService
	groups      service.GroupTrainingService
	individuals service.IndividualTrainingService
	verifier    interfaces.TokenVerifier
	translator  *i18n.Translator
	logger      *zap.Logger
}

func NewTrainingsHandler(
	locations service.LocationService,
	groups service.GroupTrainingService,
	individuals service.IndividualTrainingService,
	verifier interfaces.TokenVerifier,
	translator *i18n.Translator,
	logger *zap.Logger,
) *TrainingsHandler {
	return &TrainingsHandler{
		locations:   locations,
		groups:      groups,
		individuals: individuals,
		verifier:    verifier,
		translator:  translator,
		logger:      logger.Named("TrainingsHandler"),
	}
}

func (h *TrainingsHandler) RegisterRoutes(router *gin.Engine) {
	auth := sharedMiddleware.GinAuth(h.verifier, h.translator, h.logger)
	managers := sharedMiddleware.GinRequireRoles(h.translator, models.RoleManager, models.RoleAdmin)

	t := router.Group("/trainings")

	locations := t.Group("/locations")
	{
		locations.GET("", h.listLocations)
		locations.POST("", auth, managers, h.createLocation)
		locations.DELETE("/:id", auth, managers, h.deleteLocation)
	}

	group := t.Group("/group")
	{
		group.GET("", h.listGroupTrainings)
		group.GET("/me", auth, h.myGroupTrainings)
		group.GET("/:id", h.getGroupTraining)
		group.POST("", auth, managers, h.createGroupTraining)
		group.PUT("/:id", auth, managers, h.updateGroupTraining)
		group.DELETE("/:id", auth, managers, h.deleteGroupTraining)
		group.POST("/:id/enrollment", auth, h.enroll)
		group.DELETE("/:id/enrollment", auth, h.leave)
		group.GET("/:id/participants", auth, h.participants)
	}

	individual := t.Group("/individual", auth)
	{
		individual.POST("", h.requestIndividual)
		individual.GET("/me", h.myIndividualTrainings)
		individual.POST("/:id/accept", sharedMiddleware.GinRequireRoles(h.translator, models.RoleTrainer), h.acceptIndividual)
		individual.POST("/:id/reject", sharedMiddleware.GinRequireRoles(h.translator, models.RoleTrainer), h.rejectIndividual)
		individual.POST("/:id/cancel", h.cancelIndividual)
	}
}

func (h *TrainingsHandler) actor(c *gin.Context) (models.Actor, bool) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, Roles: sharedMiddleware.GinRoles(c)}, true
}

func (h *TrainingsHandler) idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.Warn("Invalid ID (UUID) format", zap.String("id", c.Param("id")))
		sharedMiddleware.AbortGin(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
