package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/auth"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "campushub-test",
	})
	return NewAuthMiddleware(jwtService), jwtService
}

type capturedIdentity struct {
	userID int64
	role   string
	found  bool
}

func identityRoute(handler gin.HandlerFunc) (*gin.Engine, *capturedIdentity) {
	gin.SetMode(gin.TestMode)
	captured := &capturedIdentity{}
	router := gin.New()
	router.GET("/resource", handler, func(c *gin.Context) {
		if id, ok := c.Get(ContextUserID); ok {
			captured.found = true
			captured.userID = id.(int64)
			captured.role = c.GetString(ContextUserRole)
		}
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestJWTAuth_MissingHeaderRejected(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	router, captured := identityRoute(m.JWTAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.found)
}

func TestJWTAuth_ValidTokenSetsIdentity(t *testing.T) {
	m, jwtService := newTestAuthMiddleware(t)
	router, captured := identityRoute(m.JWTAuth())

	token, err := jwtService.GenerateToken(&models.User{ID: 7, Email: "a@campus.edu", Role: models.RoleStudent})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.found)
	assert.EqualValues(t, 7, captured.userID)
	assert.Equal(t, string(models.RoleStudent), captured.role)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	router, captured := identityRoute(m.OptionalAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.found)
}

func TestOptionalAuth_InvalidTokenPassesThroughAnonymously(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	router, captured := identityRoute(m.OptionalAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.found)
}

func TestOptionalAuth_ValidTokenSetsIdentity(t *testing.T) {
	m, jwtService := newTestAuthMiddleware(t)
	router, captured := identityRoute(m.OptionalAuth())

	token, err := jwtService.GenerateToken(&models.User{ID: 42, Email: "b@campus.edu", Role: models.RoleClubLead})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.found)
	assert.EqualValues(t, 42, captured.userID)
}
