package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// AuthController handles authentication and profile operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a user account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	response, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// Login handles user authentication
// @Summary Log in
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Authenticated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	response, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SendOTP handles sending an email verification code
// @Summary Send verification code
// @Description Mails a one-time verification code to the given address. Resending inside the throttle window is rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Target email address"
// @Success 200 {object} dto.SendOTPResponse "Code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 429 {object} dto.ErrorResponse "Resend throttled"
// @Router /auth/otp/send [post]
func (c *AuthController) SendOTP(ctx *gin.Context) {
	var req dto.SendOTPRequest
	if !bindJSON(ctx, &req) {
		return
	}

	response, err := c.authService.SendOTP(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// VerifyOTP handles verifying an email verification code
// @Summary Verify a code
// @Description Checks the one-time code for the address. A correct code is consumed and cannot be reused.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.SuccessResponse "Code verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 404 {object} dto.ErrorResponse "No code found for this address"
// @Router /auth/otp/verify [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.VerifyOTP(ctx.Request.Context(), req.Email, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Email verified successfully"})
}

// GetProfile handles retrieving the caller's profile
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /users/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.Me(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile handles updating the caller's profile
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /users/me [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.authService.UpdateProfile(ctx.Request.Context(), principal.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
