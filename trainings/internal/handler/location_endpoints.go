package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *TrainingsHandler) listLocations(c *gin.Context) {
	locations, err := h.locations.ListLocations(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

func (h *TrainingsHandler) createLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	location, err := h.locations.CreateLocation(c.Request.Context(), req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *TrainingsHandler) deleteLocation(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.locations.DeleteLocation(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
