package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// ClubController handles club related operations
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{clubService: clubService}
}

// GetAllClubs handles listing clubs with optional filtering
// @Summary List clubs
// @Description Retrieves clubs filtered by category, status or a name search
// @Tags clubs
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by name"
// @Success 200 {object} dto.ListResponse{data=[]dto.ClubResponse} "Clubs retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (c *ClubController) GetAllClubs(ctx *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	clubs, err := c.clubService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: clubs, Total: len(clubs)})
}

// GetClubByID handles retrieving a single club
// @Summary Get club by ID
// @Description Signed-in callers additionally get their own membership state
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ClubResponse "Club retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) GetClubByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var viewerID int64
	if principal, ok := currentPrincipal(ctx); ok {
		viewerID = principal.ID
	}

	club, err := c.clubService.Get(ctx.Request.Context(), id, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// CreateClub handles creating a new club
// @Summary Create a club
// @Description Creates a club with the caller as its lead. Clubs created by non-admins start pending approval.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club data"
// @Success 201 {object} dto.ClubResponse "Club created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateClubRequest
	if !bindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.Create(ctx.Request.Context(), &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, club)
}

// UpdateClub handles updating an existing club
// @Summary Update a club
// @Description Updates club fields. Restricted to the club's leads and admins.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to update"
// @Success 200 {object} dto.ClubResponse "Club updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [put]
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClubRequest
	if !bindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.Update(ctx.Request.Context(), id, &req, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// ApproveClub handles an admin decision on a pending club
// @Summary Approve or reject a pending club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.ApproveClubRequest true "Approval decision"
// @Success 200 {object} dto.ClubResponse "Decision applied"
// @Failure 400 {object} dto.ErrorResponse "Club is not pending"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/approve [post]
func (c *ClubController) ApproveClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApproveClubRequest
	if !bindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.Approve(ctx.Request.Context(), id, req.Approve, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// BroadcastToClub handles sending an announcement to every approved member
// @Summary Broadcast an announcement
// @Description Sends a notification to all approved members of the club. Restricted to the club's leads and admins.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.BroadcastRequest true "Announcement content"
// @Success 200 {object} dto.SuccessResponse "Announcement sent"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/broadcast [post]
func (c *ClubController) BroadcastToClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.BroadcastRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.clubService.Broadcast(ctx.Request.Context(), id, &req, principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Announcement sent"})
}
