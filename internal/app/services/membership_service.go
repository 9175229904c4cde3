package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// MembershipService defines the interface for club membership operations
type MembershipService interface {
	RequestJoin(ctx context.Context, clubID int64, actor Principal) (*dto.MembershipResponse, error)
	ListPending(ctx context.Context, clubID int64, actor Principal) ([]dto.MembershipResponse, error)
	ListMembers(ctx context.Context, clubID int64) ([]dto.MembershipResponse, error)
	Decide(ctx context.Context, membershipID int64, approve bool, actor Principal) (*dto.MembershipResponse, error)
	Leave(ctx context.Context, clubID int64, actor Principal) error
	ListMine(ctx context.Context, userID int64) ([]dto.MembershipResponse, error)
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	memberships MembershipStore
	clubs       ClubStore
	authz       *auth.AuthorizationService
	notifier    Notifier
	logger      zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	memberships MembershipStore,
	clubs ClubStore,
	authz *auth.AuthorizationService,
	notifier Notifier,
	logger zerolog.Logger,
) MembershipService {
	return &membershipServiceImpl{
		memberships: memberships,
		clubs:       clubs,
		authz:       authz,
		notifier:    notifier,
		logger:      logger,
	}
}

// RequestJoin moves the (user, club) pair to pending. A rejected row is
// reused for the re-request; the unique constraint on the table resolves
// concurrent first-time requests in favor of exactly one row.
func (s *membershipServiceImpl) RequestJoin(ctx context.Context, clubID int64, actor Principal) (*dto.MembershipResponse, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.Status != models.ClubActive {
		return nil, apperrors.NewBadRequestError("club is not active")
	}

	existing, err := s.memberships.GetByClubAndUser(ctx, clubID, actor.ID)
	switch {
	case err == nil:
		switch existing.Status {
		case models.MembershipApproved:
			return nil, apperrors.ErrAlreadyMember
		case models.MembershipPending:
			return nil, apperrors.ErrRequestPending
		case models.MembershipRejected:
			if err := s.memberships.SetStatus(ctx, existing.ID, models.MembershipPending); err != nil {
				return nil, err
			}
			existing.Status = models.MembershipPending
			s.notifyManagers(ctx, clubID, club.Name)
			resp := dto.ToMembershipResponse(existing)
			return &resp, nil
		}
		return nil, apperrors.ErrConflict
	case errors.Is(err, apperrors.ErrMembershipNotFound):
		// No row yet, fall through to create one
	default:
		return nil, err
	}

	membership := &models.Membership{
		ClubID: clubID,
		UserID: actor.ID,
		Role:   models.MemberRoleMember,
		Status: models.MembershipPending,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyMember) {
			// Lost a race against a concurrent request for the same pair
			return nil, apperrors.ErrRequestPending
		}
		return nil, err
	}

	s.notifyManagers(ctx, clubID, club.Name)

	resp := dto.ToMembershipResponse(membership)
	return &resp, nil
}

func (s *membershipServiceImpl) notifyManagers(ctx context.Context, clubID int64, clubName string) {
	managerIDs, err := s.memberships.ListManagerIDs(ctx, clubID)
	if err != nil {
		s.logger.Error().Err(err).Int64("clubID", clubID).Msg("Failed to list club managers for fan-out")
		return
	}
	s.notifier.Notify(ctx, managerIDs, models.NotificationMembershipRequest,
		"New join request",
		fmt.Sprintf("A new member wants to join %s", clubName))
}

// ListPending lists a club's pending join requests, manager only
func (s *membershipServiceImpl) ListPending(ctx context.Context, clubID int64, actor Principal) ([]dto.MembershipResponse, error) {
	if err := s.authz.ValidateClubManager(ctx, clubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	memberships, err := s.memberships.ListByClub(ctx, clubID, models.MembershipPending)
	if err != nil {
		return nil, err
	}
	return toMembershipResponses(memberships), nil
}

// ListMembers lists a club's approved members
func (s *membershipServiceImpl) ListMembers(ctx context.Context, clubID int64) ([]dto.MembershipResponse, error) {
	memberships, err := s.memberships.ListByClub(ctx, clubID, models.MembershipApproved)
	if err != nil {
		return nil, err
	}
	return toMembershipResponses(memberships), nil
}

// Decide approves or rejects a pending join request
func (s *membershipServiceImpl) Decide(ctx context.Context, membershipID int64, approve bool, actor Principal) (*dto.MembershipResponse, error) {
	membership, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, membership.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	if membership.Status != models.MembershipPending {
		return nil, apperrors.NewBadRequestError("membership request is not pending")
	}

	newStatus := models.MembershipRejected
	notifType := models.NotificationMembershipRejected
	message := "Your join request was rejected"
	if approve {
		newStatus = models.MembershipApproved
		notifType = models.NotificationMembershipApproved
		message = "Your join request was approved"
	}

	if err := s.memberships.SetStatus(ctx, membershipID, newStatus); err != nil {
		return nil, err
	}
	membership.Status = newStatus

	if approve {
		if err := s.clubs.RefreshMemberCount(ctx, membership.ClubID); err != nil {
			s.logger.Error().Err(err).Int64("clubID", membership.ClubID).Msg("Failed to refresh member count")
		}
	}

	s.notifier.Notify(ctx, []int64{membership.UserID}, notifType, "Join request decision", message)

	resp := dto.ToMembershipResponse(membership)
	return &resp, nil
}

// Leave deletes the actor's membership row. Leaving a club the actor is
// not part of is a no-op.
func (s *membershipServiceImpl) Leave(ctx context.Context, clubID int64, actor Principal) error {
	if err := s.memberships.Delete(ctx, clubID, actor.ID); err != nil {
		return err
	}
	if err := s.clubs.RefreshMemberCount(ctx, clubID); err != nil {
		s.logger.Error().Err(err).Int64("clubID", clubID).Msg("Failed to refresh member count")
	}
	return nil
}

// ListMine lists the actor's memberships across all clubs
func (s *membershipServiceImpl) ListMine(ctx context.Context, userID int64) ([]dto.MembershipResponse, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toMembershipResponses(memberships), nil
}

func toMembershipResponses(memberships []models.Membership) []dto.MembershipResponse {
	responses := make([]dto.MembershipResponse, 0, len(memberships))
	for i := range memberships {
		responses = append(responses, dto.ToMembershipResponse(&memberships[i]))
	}
	return responses
}
