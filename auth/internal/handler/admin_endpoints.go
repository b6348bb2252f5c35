package handler

import (
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"
	"gym-server/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *AuthHandler) listUsers(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"))
	users, next, err := h.authService.ListUsers(c.Request.Context(), c.Query("cursor"), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := models.PaginatedResponse[userResponse]{
		Data:       make([]userResponse, 0, len(users)),
		NextCursor: next,
	}
	for i := range users {
		resp.Data = append(resp.Data, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) updateRoles(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	var req updateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	roles, err := h.authService.UpdateRoles(c.Request.Context(), userID, req.Roles)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "roles": roles})
}

func (h *AuthHandler) banUser(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}
	if adminID, _ := sharedMiddleware.GinUserID(c); adminID == userID {
		sharedMiddleware.AbortGin(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
		return
	}
	if err := h.authService.BanUser(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) unbanUser(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}
	if err := h.authService.UnbanUser(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getUserDetails - внутренний эндпоинт для других сервисов (проверка ролей тренера и т.п.).
func (h *AuthHandler) getUserDetails(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) userIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("user_id")
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("Invalid user ID (UUID) format", zap.String("userID", raw), zap.Error(err))
		sharedMiddleware.AbortGin(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
		return uuid.Nil, false
	}
	return userID, true
}
