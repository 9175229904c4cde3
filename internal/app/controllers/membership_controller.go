package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// MembershipController handles club membership operations
type MembershipController struct {
	membershipService services.MembershipService
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService services.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

// JoinClub handles a join request for a club
// @Summary Request to join a club
// @Description Creates a pending join request. A previously rejected user may request again.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 201 {object} dto.MembershipResponse "Join request created"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Club not found or inactive"
// @Failure 409 {object} dto.ErrorResponse "Already a member or request pending"
// @Router /clubs/{id}/join [post]
func (c *MembershipController) JoinClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	membership, err := c.membershipService.RequestJoin(ctx.Request.Context(), clubID, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, membership)
}

// GetClubMembers handles listing approved members of a club
// @Summary List club members
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ListResponse{data=[]dto.MembershipResponse} "Members retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/members [get]
func (c *MembershipController) GetClubMembers(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.membershipService.ListMembers(ctx.Request.Context(), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: members, Total: len(members)})
}

// GetPendingRequests handles listing pending join requests for a club
// @Summary List pending join requests
// @Description Restricted to the club's leads and admins
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ListResponse{data=[]dto.MembershipResponse} "Requests retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /clubs/{id}/requests [get]
func (c *MembershipController) GetPendingRequests(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.membershipService.ListPending(ctx.Request.Context(), clubID, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: requests, Total: len(requests)})
}

// DecideMembership handles approving or rejecting a join request
// @Summary Decide on a join request
// @Description Approves or rejects a pending membership. Restricted to the club's leads and admins.
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Param request body dto.DecideMembershipRequest true "Decision"
// @Success 200 {object} dto.MembershipResponse "Decision applied"
// @Failure 400 {object} dto.ErrorResponse "Request is not pending"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /memberships/{id}/decide [post]
func (c *MembershipController) DecideMembership(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	membershipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideMembershipRequest
	if !bindJSON(ctx, &req) {
		return
	}

	membership, err := c.membershipService.Decide(ctx.Request.Context(), membershipID, req.Approve, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, membership)
}

// LeaveClub handles the caller leaving a club
// @Summary Leave a club
// @Description Removes the caller's membership. Leaving a club you are not in is a no-op.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.SuccessResponse "Left the club"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /clubs/{id}/membership [delete]
func (c *MembershipController) LeaveClub(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	clubID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.membershipService.Leave(ctx.Request.Context(), clubID, principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Left the club"})
}

// GetMyMemberships handles listing the caller's memberships
// @Summary List my memberships
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]dto.MembershipResponse} "Memberships retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /users/me/memberships [get]
func (c *MembershipController) GetMyMemberships(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	memberships, err := c.membershipService.ListMine(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: memberships, Total: len(memberships)})
}
