package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arda/campushub/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict},
		{"event full", apperrors.ErrEventFull, http.StatusBadRequest},
		{"event cancelled", apperrors.ErrEventCancelled, http.StatusBadRequest},
		{"code mismatch", apperrors.ErrCodeMismatch, http.StatusBadRequest},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests},
		{"unmapped", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
