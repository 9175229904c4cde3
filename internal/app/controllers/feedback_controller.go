package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// FeedbackController handles event feedback operations
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// SubmitFeedback handles submitting or updating an event rating
// @Summary Submit event feedback
// @Description Submits a 1-5 rating with an optional comment. A second submission replaces the first.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SubmitFeedbackRequest true "Rating and comment"
// @Success 200 {object} dto.FeedbackResponse "Feedback recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid rating"
// @Failure 403 {object} dto.ErrorResponse "Caller never registered for the event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/feedback [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	feedback, err := c.feedbackService.Submit(ctx.Request.Context(), eventID, &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, feedback)
}

// GetEventFeedback handles listing feedback for an event
// @Summary List event feedback
// @Description Returns all feedback for the event together with the average rating
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventFeedbackResponse "Feedback retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/feedback [get]
func (c *FeedbackController) GetEventFeedback(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	feedback, err := c.feedbackService.ListForEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, feedback)
}
