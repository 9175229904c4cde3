package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/logger"
)

// RoleAllowed reports whether a platform role is in the allowed set.
// All per-handler role checks go through here.
func RoleAllowed(role models.UserRole, allowed ...models.UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// MembershipReader is the slice of the membership repository the
// authorization service needs.
type MembershipReader interface {
	GetByClubAndUser(ctx context.Context, clubID, userID int64) (*models.Membership, error)
}

// AuthorizationService answers club-scoped permission questions
type AuthorizationService struct {
	memberships MembershipReader
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(memberships MembershipReader) *AuthorizationService {
	return &AuthorizationService{memberships: memberships}
}

// IsClubManager checks if the user holds an approved lead or co_lead
// membership in the club.
func (s *AuthorizationService) IsClubManager(ctx context.Context, clubID, userID int64) (bool, error) {
	m, err := s.memberships.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembershipNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error checking club manager")
		return false, fmt.Errorf("failed to check club membership: %w", err)
	}
	return m.Status == models.MembershipApproved && models.IsManagerRole(m.Role), nil
}

// ValidateClubManager fails with ErrPermissionDenied unless the actor is an
// admin or manages the club.
func (s *AuthorizationService) ValidateClubManager(ctx context.Context, clubID, userID int64, role models.UserRole) error {
	if RoleAllowed(role, models.RoleAdmin) {
		return nil
	}
	isManager, err := s.IsClubManager(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !isManager {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// IsApprovedMember checks if the user holds an approved membership in the club
func (s *AuthorizationService) IsApprovedMember(ctx context.Context, clubID, userID int64) (bool, error) {
	m, err := s.memberships.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembershipNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check club membership: %w", err)
	}
	return m.Status == models.MembershipApproved, nil
}
