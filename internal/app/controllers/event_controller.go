package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// EventController handles event and registration operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// GetAllEvents handles listing events with optional filtering
// @Summary List events
// @Tags events
// @Produce json
// @Param clubId query int false "Filter by club"
// @Param eventType query string false "Filter by event type"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by title"
// @Param upcoming query bool false "Only upcoming events"
// @Success 200 {object} dto.ListResponse{data=[]dto.EventResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	events, err := c.eventService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: events, Total: len(events)})
}

// GetEventByID handles retrieving a single event
// @Summary Get event by ID
// @Description Signed-in callers additionally get their own registration state
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventResponse "Event retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var viewerID int64
	if principal, ok := currentPrincipal(ctx); ok {
		viewerID = principal.ID
	}

	event, err := c.eventService.Get(ctx.Request.Context(), id, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// CreateEvent handles creating a new event
// @Summary Create an event
// @Description Creates an event under a club. Restricted to the club's leads and admins.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.EventResponse "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// UpdateEvent handles updating an existing event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.EventResponse "Event updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), id, &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// SetEventStatus handles moving an upcoming event to a terminal status
// @Summary Cancel or complete an event
// @Description Moves an upcoming event to cancelled or completed. Terminal states cannot be changed again.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SetEventStatusRequest true "Target status"
// @Success 200 {object} dto.SuccessResponse "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Event is not in upcoming state"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/status [post]
func (c *EventController) SetEventStatus(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetEventStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.eventService.SetStatus(ctx.Request.Context(), id, req.Status, principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Event status updated"})
}

// RemindEvent handles sending an event reminder to registrants
// @Summary Send an event reminder
// @Description Notifies everyone still registered for the event. Restricted to the club's leads and admins.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.ReminderResponse "Reminder sent"
// @Failure 400 {object} dto.ErrorResponse "Event is not in upcoming state"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/remind [post]
func (c *EventController) RemindEvent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.eventService.RemindEvent(ctx.Request.Context(), id, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// RegisterForEvent handles registering the caller for an event
// @Summary Register for an event
// @Description Registers the caller if the event is upcoming, the deadline has not passed and capacity allows
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.RegistrationResponse "Registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Event full, past deadline or not open for registration"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /events/{id}/register [post]
func (c *EventController) RegisterForEvent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	registration, err := c.eventService.Register(ctx.Request.Context(), id, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// CancelRegistration handles cancelling the caller's registration
// @Summary Cancel my registration
// @Description Cancels the caller's registration, freeing the slot. Cancelling twice is a no-op.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.SuccessResponse "Registration cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /events/{id}/register [delete]
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelRegistration(ctx.Request.Context(), id, principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Registration cancelled"})
}

// CheckIn handles marking attendance for an event
// @Summary Check in to an event
// @Description Staff pass a userId to check an attendee in; attendees pass the published code to check themselves in
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CheckInRequest true "Check-in target or code"
// @Success 200 {object} dto.SuccessResponse "Checked in"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /events/{id}/checkin [post]
func (c *EventController) CheckIn(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.eventService.CheckIn(ctx.Request.Context(), id, &req, principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Checked in"})
}

// GetCheckInStatus handles reporting the caller's check-in state
// @Summary Get my check-in status
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.CheckInStatusResponse "Status retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/checkin/status [get]
func (c *EventController) GetCheckInStatus(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.eventService.CheckInStatus(ctx.Request.Context(), id, principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// GenerateCheckInCode handles publishing a short-lived self check-in code
// @Summary Generate a check-in code
// @Description Publishes a code attendees can use to check themselves in. Generating again replaces the previous code. Restricted to the club's leads and admins.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.CheckInCodeResponse "Code generated"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/checkin/code [post]
func (c *EventController) GenerateCheckInCode(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	code, err := c.eventService.GenerateCheckInCode(ctx.Request.Context(), id, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, code)
}

// GetEventRegistrations handles listing registrations for an event
// @Summary List event registrations
// @Description Restricted to the club's leads and admins
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.ListResponse{data=[]dto.RegistrationResponse} "Registrations retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/registrations [get]
func (c *EventController) GetEventRegistrations(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	registrations, err := c.eventService.ListRegistrations(ctx.Request.Context(), id, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: registrations, Total: len(registrations)})
}

// GetMyRegistrations handles listing the caller's registrations
// @Summary List my registrations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]dto.RegistrationResponse} "Registrations retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /users/me/registrations [get]
func (c *EventController) GetMyRegistrations(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	registrations, err := c.eventService.ListMine(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: registrations, Total: len(registrations)})
}
