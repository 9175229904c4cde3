package dto

import (
	"time"

	"github.com/arda/campushub/internal/app/models"
)

// CreateClubRequest represents a club creation request
type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=120"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category" binding:"required"`
	Logo        *string `json:"logo,omitempty"`
}

// UpdateClubRequest represents a club update request
type UpdateClubRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=3,max=120"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Logo        *string `json:"logo,omitempty"`
}

// ApproveClubRequest represents an admin approval decision
type ApproveClubRequest struct {
	Approve bool `json:"approve"`
}

// ClubFilterRequest represents club listing filters
type ClubFilterRequest struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// ClubResponse represents club information
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	Logo        *string   `json:"logo,omitempty"`
	Status      string    `json:"status"`
	MemberCount int       `json:"memberCount"`
	Rating      float64   `json:"rating"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	// Set only on detail views for signed-in callers
	ViewerMembership *MembershipResponse `json:"viewerMembership,omitempty"`
}

// MembershipResponse represents a club membership row
type MembershipResponse struct {
	ID       int64         `json:"id"`
	ClubID   int64         `json:"clubId"`
	UserID   int64         `json:"userId"`
	Role     string        `json:"role"`
	Status   string        `json:"status"`
	JoinedAt time.Time     `json:"joinedAt"`
	User     *UserResponse `json:"user,omitempty"`
	Club     *ClubResponse `json:"club,omitempty"`
}

// DecideMembershipRequest represents an approve/reject decision for a join request
type DecideMembershipRequest struct {
	Approve bool `json:"approve"`
}

// ToClubResponse maps a club model to its response shape
func ToClubResponse(club *models.Club) ClubResponse {
	return ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		Description: club.Description,
		Category:    club.Category,
		Logo:        club.Logo,
		Status:      string(club.Status),
		MemberCount: club.MemberCount,
		Rating:      club.Rating,
		CreatedBy:   club.CreatedBy,
		CreatedAt:   club.CreatedAt,
	}
}

// ToMembershipResponse maps a membership model to its response shape
func ToMembershipResponse(m *models.Membership) MembershipResponse {
	resp := MembershipResponse{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		Status:   string(m.Status),
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		user := ToUserResponse(m.User)
		resp.User = &user
	}
	if m.Club != nil {
		club := ToClubResponse(m.Club)
		resp.Club = &club
	}
	return resp
}
