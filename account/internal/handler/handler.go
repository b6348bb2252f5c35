package handler

import (
	"errors"
	"net/http"

	"gym-server/account/internal/service"
	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountHandler - HTTP API профилей.
type AccountHandler struct {
	accounts   service.AccountService
	verifier   interfaces.TokenVerifier
	translator *i18n.Translator
	logger     *zap.Logger
}

func NewAccountHandler(accounts service.AccountService, verifier interfaces.TokenVerifier, translator *i18n.Translator, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:   accounts,
		verifier:   verifier,
		translator: translator,
		logger:     logger.Named("AccountHandler"),
	}
}

func (h *AccountHandler) RegisterRoutes(router *gin.Engine) {
	account := router.Group("/account")

	// публичный каталог тренеров
	account.GET("/trainers", h.listTrainers)
	account.GET("/trainers/:user_id", h.getTrainer)

	authed := account.Group("")
	authed.Use(sharedMiddleware.GinAuth(h.verifier, h.translator, h.logger))
	{
		authed.GET("/me", h.getMyProfile)
		authed.PUT("/me", h.updateMyProfile)
		authed.PUT("/trainers/me", sharedMiddleware.GinRequireRoles(h.translator, models.RoleTrainer), h.updateMyTrainerProfile)
		authed.GET("/users/:user_id",
			sharedMiddleware.GinRequireRoles(h.translator, models.RoleEmployee, models.RoleManager, models.RoleAdmin),
			h.getProfile)
	}
}

func (h *AccountHandler) getMyProfile(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}
	profile, err := h.accounts.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *AccountHandler) updateMyProfile(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	profile, err := h.accounts.UpdateMyProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *AccountHandler) getProfile(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}
	profile, err := h.accounts.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *AccountHandler) listTrainers(c *gin.Context) {
	trainers, err := h.accounts.ListTrainers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]trainerResponse, 0, len(trainers))
	for i := range trainers {
		resp = append(resp, toTrainerResponse(&trainers[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *AccountHandler) getTrainer(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}
	trainer, err := h.accounts.GetTrainer(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrainerResponse(trainer))
}

func (h *AccountHandler) updateMyTrainerProfile(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}

	var req updateTrainerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	trainer, err := h.accounts.UpdateMyTrainerProfile(c.Request.Context(), userID, service.TrainerProfileInput{
		Synopsis:        req.Synopsis,
		Description:     req.Description,
		Specializations: req.Specializations,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrainerResponse(trainer))
}

func (h *AccountHandler) userIDParam(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		sharedMiddleware.AbortGin(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
		return uuid.Nil, false
	}
	return userID, true
}
