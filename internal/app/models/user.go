package models

import "time"

// UserRole is the platform-wide role of a user
type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleClubLead UserRole = "club_lead"
	RoleAdmin    UserRole = "admin"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Department   *string   `json:"department,omitempty" db:"department"`
	Year         *int      `json:"year,omitempty" db:"year"`
	CollegeID    *string   `json:"collegeId,omitempty" db:"college_id"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
