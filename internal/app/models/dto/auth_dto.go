package dto

import "github.com/arda/campushub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email      string          `json:"email" binding:"required,email"`
	Password   string          `json:"password" binding:"required,min=8"`
	Name       string          `json:"name" binding:"required"`
	Department *string         `json:"department,omitempty"`
	Year       *int            `json:"year,omitempty" binding:"omitempty,min=1,max=8"`
	CollegeID  *string         `json:"collegeId,omitempty"`
	Role       models.UserRole `json:"role,omitempty"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Year         *int    `json:"year,omitempty" binding:"omitempty,min=1,max=8"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Department   *string `json:"department,omitempty"`
	Year         *int    `json:"year,omitempty"`
	CollegeID    *string `json:"collegeId,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Role         string  `json:"role"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// SendOTPRequest asks for a verification code to be mailed
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTPResponse reports the outcome of an OTP send.
// FallbackCode is set only when mail delivery is known to have failed.
type SendOTPResponse struct {
	Message      string `json:"message"`
	FallbackCode string `json:"fallbackCode,omitempty"`
}

// VerifyOTPRequest submits a verification code for an email
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ToUserResponse maps a user model to its response shape
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Department:   user.Department,
		Year:         user.Year,
		CollegeID:    user.CollegeID,
		ProfileImage: user.ProfileImage,
		Role:         string(user.Role),
	}
}
