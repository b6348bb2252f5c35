package handler

import (
	"errors"
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *AuthHandler) getMe(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("Failed to load current user", zap.Stringer("userID", userID), zap.Error(err))
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
