package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

type fakeMembershipReader struct {
	memberships map[[2]int64]*models.Membership
}

func (f *fakeMembershipReader) GetByClubAndUser(_ context.Context, clubID, userID int64) (*models.Membership, error) {
	m, ok := f.memberships[[2]int64{clubID, userID}]
	if !ok {
		return nil, apperrors.ErrMembershipNotFound
	}
	return m, nil
}

func TestRoleAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    models.UserRole
		allowed []models.UserRole
		want    bool
	}{
		{"admin in admin set", models.RoleAdmin, []models.UserRole{models.RoleAdmin}, true},
		{"student not in admin set", models.RoleStudent, []models.UserRole{models.RoleAdmin}, false},
		{"club lead in lead set", models.RoleClubLead, []models.UserRole{models.RoleAdmin, models.RoleClubLead}, true},
		{"student in open set", models.RoleStudent, []models.UserRole{models.RoleAdmin, models.RoleClubLead, models.RoleStudent}, true},
		{"empty set denies", models.RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RoleAllowed(tt.role, tt.allowed...))
		})
	}
}

func TestAuthorizationService_IsClubManager(t *testing.T) {
	t.Parallel()

	reader := &fakeMembershipReader{memberships: map[[2]int64]*models.Membership{
		{1, 10}: {ClubID: 1, UserID: 10, Role: models.MemberRoleLead, Status: models.MembershipApproved},
		{1, 11}: {ClubID: 1, UserID: 11, Role: models.MemberRoleCoLead, Status: models.MembershipApproved},
		{1, 12}: {ClubID: 1, UserID: 12, Role: models.MemberRoleMember, Status: models.MembershipApproved},
		{1, 13}: {ClubID: 1, UserID: 13, Role: models.MemberRoleLead, Status: models.MembershipPending},
	}}
	svc := NewAuthorizationService(reader)

	tests := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"lead manages", 10, true},
		{"co_lead manages", 11, true},
		{"plain member does not", 12, false},
		{"pending lead does not", 13, false},
		{"non-member does not", 99, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.IsClubManager(context.Background(), 1, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizationService_ValidateClubManager(t *testing.T) {
	t.Parallel()

	reader := &fakeMembershipReader{memberships: map[[2]int64]*models.Membership{
		{1, 10}: {ClubID: 1, UserID: 10, Role: models.MemberRoleLead, Status: models.MembershipApproved},
	}}
	svc := NewAuthorizationService(reader)

	// Admin bypasses membership entirely
	assert.NoError(t, svc.ValidateClubManager(context.Background(), 1, 99, models.RoleAdmin))

	// Lead of the club passes
	assert.NoError(t, svc.ValidateClubManager(context.Background(), 1, 10, models.RoleStudent))

	// Outsider is denied
	err := svc.ValidateClubManager(context.Background(), 1, 50, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
