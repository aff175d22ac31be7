package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/middleware"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
)

// EventController handles event operations and the calendar view
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateSubjectEvent creates an event under a subject
// @Summary Create a subject event
// @Description Creates an event owned by a subject and mirrors it to Google Calendar best-effort
// @Tags events
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param request body dto.CreateEventRequest true "Event to create"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Missing fields or end before start"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/events [post]
func (c *EventController) CreateSubjectEvent(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	c.createEvent(ctx, &subjectID)
}

// CreateEvent creates an event not tied to any subject
// @Summary Create a standalone event
// @Description Creates an event with no owning subject and mirrors it to Google Calendar best-effort
// @Tags events
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body dto.CreateEventRequest true "Event to create"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Missing fields or end before start"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	c.createEvent(ctx, nil)
}

func (c *EventController) createEvent(ctx *gin.Context, subjectID *int64) {
	token, ok := middleware.TokenFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")))
		return
	}

	event, synced, err := c.eventService.Create(ctx.Request.Context(), token, subjectID, req.Title, req.Description, req.Start, req.End)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !synced {
		c.logger.Warn().Int64("eventID", event.ID).Msg("Event created without calendar sync")
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// GetCalendar returns every event in calendar-view shape
// @Summary Calendar view
// @Description Lists all events ordered by start time, subject-owned ones titled "[Subject] Title"
// @Tags events
// @Produce json
// @Security SessionAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CalendarEvent}
// @Router /calendar [get]
func (c *EventController) GetCalendar(ctx *gin.Context) {
	events, err := c.eventService.ListCalendar(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      events,
		Timestamp: time.Now(),
	})
}

// DeleteEvent removes a local event
// @Summary Delete an event
// @Description Deletes the local event row. A mirrored calendar entry is not touched.
// @Tags events
// @Produce json
// @Security SessionAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Event deleted"},
		Timestamp: time.Now(),
	})
}
