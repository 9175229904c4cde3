package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "campushub.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	user := &models.User{ID: 42, Email: "a@x.com", Role: models.RoleClubLead}

	tok, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, string(models.RoleClubLead), claims.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService(-time.Minute)
	tok, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@x.com", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	tok, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@x.com", Role: models.RoleStudent})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", TokenExp: time.Hour})
	_, err = other.ValidateToken(tok)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
