package models

import "time"

// ClubStatus is the lifecycle status of a club
type ClubStatus string

const (
	ClubPending  ClubStatus = "pending"
	ClubActive   ClubStatus = "active"
	ClubInactive ClubStatus = "inactive"
)

// Club represents a campus club
type Club struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Objectives  *string    `json:"objectives,omitempty" db:"objectives"`
	Category    string     `json:"category" db:"category"`
	Logo        *string    `json:"logo,omitempty" db:"logo"`
	Status      ClubStatus `json:"status" db:"status"`
	MemberCount int        `json:"memberCount" db:"member_count"`
	Rating      float64    `json:"rating" db:"rating"`
	CreatedBy   int64      `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// MembershipRole is the role a user holds inside a club
type MembershipRole string

const (
	MemberRoleMember MembershipRole = "member"
	MemberRoleCoLead MembershipRole = "co_lead"
	MemberRoleLead   MembershipRole = "lead"
)

// MembershipStatus is the approval state of a club membership
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipApproved MembershipStatus = "approved"
	MembershipRejected MembershipStatus = "rejected"
)

// Membership represents a (user, club) membership row.
// At most one row exists per (user, club) pair.
type Membership struct {
	ID       int64            `json:"id" db:"id"`
	ClubID   int64            `json:"clubId" db:"club_id"`
	UserID   int64            `json:"userId" db:"user_id"`
	Role     MembershipRole   `json:"role" db:"role"`
	Status   MembershipStatus `json:"status" db:"status"`
	JoinedAt time.Time        `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
	Club *Club `json:"club,omitempty"`
}

// IsManagerRole reports whether a membership role can manage the club.
func IsManagerRole(role MembershipRole) bool {
	return role == MemberRoleLead || role == MemberRoleCoLead
}
