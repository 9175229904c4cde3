package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// currentPrincipal reads the caller's identity set by the JWT middleware.
// Handlers behind JWTAuth may assume ok is true.
func currentPrincipal(ctx *gin.Context) (services.Principal, bool) {
	userID, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return services.Principal{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return services.Principal{}, false
	}

	role := models.RoleStudent
	if raw, exists := ctx.Get(middleware.ContextUserRole); exists {
		if roleStr, ok := raw.(string); ok && roleStr != "" {
			role = models.UserRole(roleStr)
		}
	}
	return services.Principal{ID: id, Role: role}, true
}

// requirePrincipal is currentPrincipal plus the 401 response when the
// identity is missing
func requirePrincipal(ctx *gin.Context) (services.Principal, bool) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return principal, ok
}

// parseIDParam parses a positive numeric path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body and writes the 400 response on failure
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
