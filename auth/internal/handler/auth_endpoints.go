package handler

import (
	"errors"
	"net/http"

	"gym-server/auth/internal/service"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// register godoc
// @Summary Регистрация нового пользователя
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Locale:   sharedMiddleware.LocaleFromGin(c),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// confirm подтверждает email по токену из письма.
func (h *AuthHandler) confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		sharedMiddleware.AbortGin(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
		return
	}
	if err := h.authService.Confirm(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		h.handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) logout(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	accessUUID := c.GetString(ctxKeyAccessUUID)
	if !ok || accessUUID == "" {
		h.logger.Error("Identity missing in context during logout")
		h.handleServiceError(c, errors.New("context missing identity"))
		return
	}

	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	refreshUUID, err := h.authService.ParseRefreshUUID(req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID, accessUUID, refreshUUID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("refresh", "failure").Inc()
		h.handleServiceError(c, err)
		return
	}

	refreshesTotal.Inc()
	tokenVerificationsTotal.WithLabelValues("refresh", "success").Inc()
	c.JSON(http.StatusOK, tokens)
}

// verify проверяет access-токен, включая отзыв.
func (h *AuthHandler) verify(c *gin.Context) {
	var req tokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	claims, err := h.authService.VerifyAccessToken(c.Request.Context(), req.Token)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
		h.handleServiceError(c, err)
		return
	}
	tokenVerificationsTotal.WithLabelValues("access", "success").Inc()

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"user_id": claims.UserID.String(),
		"roles":   claims.Roles,
	})
}

func (h *AuthHandler) generateInterServiceToken(c *gin.Context) {
	var req generateInterServiceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	token, err := h.authService.GenerateInterServiceToken(c.Request.Context(), req.ServiceName)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	interServiceTokensGeneratedTotal.Inc()
	h.logger.Info("Inter-service token generated", zap.String("serviceName", req.ServiceName))
	c.JSON(http.StatusOK, gin.H{"inter_service_token": token})
}

func (h *AuthHandler) verifyInterServiceToken(c *gin.Context) {
	var req tokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	serviceName, err := h.authService.VerifyInterServiceToken(c.Request.Context(), req.Token)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("inter-service", "failure").Inc()
		h.handleServiceError(c, err)
		return
	}
	tokenVerificationsTotal.WithLabelValues("inter-service", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"service_name": serviceName, "valid": true})
}
