package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rallypoint/rallypoint-api/internal/dto"
	apierrors "github.com/rallypoint/rallypoint-api/internal/errors"
	"github.com/rallypoint/rallypoint-api/internal/middleware"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"github.com/rallypoint/rallypoint-api/internal/services"
	"github.com/rallypoint/rallypoint-api/internal/utils"
)

// EventHandler coordinates event catalog and registration handlers.
type EventHandler struct {
	eventService        *services.EventService
	registrationService *services.RegistrationService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService, registrationService *services.RegistrationService) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		registrationService: registrationService,
	}
}

// ListEvents returns a paginated event list with capacity figures.
func (h *EventHandler) ListEvents(c *gin.Context) {
	pagination := utils.GetPaginationParams(c)

	events, total, err := h.eventService.ListEvents(repository.EventFilter{
		Tag:    c.Query("tag"),
		Page:   pagination.Page,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.EventDTO, len(events))
	for i, event := range events {
		result[i] = dto.ToEventDTO(event)
	}

	c.JSON(http.StatusOK, dto.EventListResponse{
		Events:     result,
		Page:       pagination.Page,
		PageSize:   pagination.Limit,
		TotalCount: total,
	})
}

// GetEvent returns a single event with capacity figures.
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Param("id"))
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// CreateEvent creates a new event.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	type CreateEventRequest struct {
		Title          string           `json:"title" binding:"required"`
		Description    string           `json:"description"`
		Date           time.Time        `json:"date" binding:"required"`
		Location       string           `json:"location"`
		Tags           utils.StringList `json:"tags"`
		BannerImage    string           `json:"banner_image"`
		SlotsAvailable int              `json:"slots_available" binding:"required,min=1"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		Location:       req.Location,
		Tags:           req.Tags.Normalize(),
		BannerImage:    req.BannerImage,
		SlotsAvailable: req.SlotsAvailable,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent applies a partial update to an event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	type UpdateEventRequest struct {
		Title          *string           `json:"title"`
		Description    *string           `json:"description"`
		Date           *time.Time        `json:"date"`
		Location       *string           `json:"location"`
		Tags           *utils.StringList `json:"tags"`
		BannerImage    *string           `json:"banner_image"`
		SlotsAvailable *int              `json:"slots_available"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateEventInput{
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		Location:       req.Location,
		BannerImage:    req.BannerImage,
		SlotsAvailable: req.SlotsAvailable,
	}
	if req.Tags != nil {
		input.Tags = req.Tags.Normalize()
	}

	event, err := h.eventService.UpdateEvent(c.Param("id"), input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event and its registrations.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Param("id")); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event removed"})
}

// Join registers the caller for the event.
func (h *EventHandler) Join(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.registrationService.Join(userID, c.Param("id")); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered for event"})
}

// Unregister removes the caller's registration for the event.
func (h *EventHandler) Unregister(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.registrationService.Unregister(userID, c.Param("id")); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unregistered from event"})
}

// JoinWaitlist puts the caller on the event's waitlist.
func (h *EventHandler) JoinWaitlist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.registrationService.JoinWaitlist(userID, c.Param("id")); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to waitlist"})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrInvalidEventTitle),
		errors.Is(err, services.ErrInvalidCapacity):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEventFull):
		apierrors.EventFull(c, "Event is full")
	case errors.Is(err, services.ErrAlreadyRegistered):
		apierrors.Conflict(c, "Already registered for this event")
	case errors.Is(err, services.ErrNotRegistered):
		apierrors.NotFound(c, "Not registered for this event")
	case errors.Is(err, services.ErrAlreadyWaitlisted):
		apierrors.Conflict(c, "Already on the waitlist for this event")
	default:
		apierrors.InternalError(c, "")
	}
}
