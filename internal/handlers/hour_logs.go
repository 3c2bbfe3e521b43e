package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/rallypoint/rallypoint-api/internal/errors"
	"github.com/rallypoint/rallypoint-api/internal/middleware"
	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/services"
)

// HourLogHandler coordinates volunteer hour tracking handlers.
type HourLogHandler struct {
	hourLogService *services.HourLogService
}

// NewHourLogHandler creates a new HourLogHandler.
func NewHourLogHandler(hourLogService *services.HourLogService) *HourLogHandler {
	return &HourLogHandler{
		hourLogService: hourLogService,
	}
}

// LogHours records a pending hour claim for the caller.
func (h *HourLogHandler) LogHours(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type LogHoursRequest struct {
		EventID     string  `json:"event_id" binding:"required"`
		Hours       float64 `json:"hours" binding:"required"`
		Description string  `json:"description"`
	}

	var req LogHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.hourLogService.LogHours(userID, services.LogHoursInput{
		EventID:     req.EventID,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		respondHourLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// MyHours lists the caller's hour logs.
func (h *HourLogHandler) MyHours(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	logs, err := h.hourLogService.ListMine(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": logs})
}

// ListHours lists every hour log for admin review.
func (h *HourLogHandler) ListHours(c *gin.Context) {
	logs, err := h.hourLogService.ListAll()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": logs})
}

// UpdateHourStatus approves or rejects an hour log.
func (h *HourLogHandler) UpdateHourStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.HourLogStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.hourLogService.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondHourLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func respondHourLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHourLogNotFound):
		apierrors.NotFound(c, "Hour log not found")
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrInvalidHours):
		apierrors.BadRequest(c, "Hours must be greater than zero")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid status")
	default:
		apierrors.InternalError(c, "")
	}
}
