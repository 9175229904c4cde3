package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Sentinel
// errors carry messages safe to show callers; anything unmapped is a
// plain internal server error.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrRateLimited):
		respond(c, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Too many requests, try again later")

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrClubNotFound),
		errors.Is(err, apperrors.ErrMembershipNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrRegistrationNotFound),
		errors.Is(err, apperrors.ErrCertificateNotFound),
		errors.Is(err, apperrors.ErrCodeNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrRequestPending),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrCertificateExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrEventFull),
		errors.Is(err, apperrors.ErrEventCancelled),
		errors.Is(err, apperrors.ErrEventCompleted),
		errors.Is(err, apperrors.ErrNotAttended),
		errors.Is(err, apperrors.ErrCodeExpired),
		errors.Is(err, apperrors.ErrCodeMismatch),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
