package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// ChatController handles club chat operations
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// GetMyChannels handles listing the caller's chat channels
// @Summary List my chat channels
// @Description Returns a channel for each club the caller is an approved member of, with the latest message
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]dto.ChatChannelResponse} "Channels retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /chat/channels [get]
func (c *ChatController) GetMyChannels(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	channels, err := c.chatService.Channels(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: channels, Total: len(channels)})
}

// GetClubMessages handles reading a club's message history
// @Summary List club messages
// @Description Returns messages for the club channel, newest first. Use before and limit for paging. Members only.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param before query string false "Return messages sent before this RFC3339 timestamp"
// @Param limit query int false "Maximum messages to return" default(50) maximum(100)
// @Success 200 {object} dto.ListResponse{data=[]dto.ChatMessageResponse} "Messages retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an approved member"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/messages [get]
func (c *ChatController) GetClubMessages(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var before *time.Time
	if beforeStr := ctx.Query("before"); beforeStr != "" {
		parsed, err := time.Parse(time.RFC3339, beforeStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid before parameter")
			errorDetail = errorDetail.WithDetails("before must be an RFC3339 timestamp")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		before = &parsed
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	messages, err := c.chatService.ListMessages(ctx.Request.Context(), clubID, before, limit, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: messages, Total: len(messages)})
}

// SendClubMessage handles posting a message to a club channel
// @Summary Send a club message
// @Description Posts a message to the club channel. Members only.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.ChatMessageResponse "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an approved member"
// @Router /clubs/{id}/messages [post]
func (c *ChatController) SendClubMessage(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	message, err := c.chatService.SendMessage(ctx.Request.Context(), clubID, &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, message)
}
