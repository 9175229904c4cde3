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

// ClubService defines the interface for club operations
type ClubService interface {
	List(ctx context.Context, filter *dto.ClubFilterRequest) ([]dto.ClubResponse, error)
	Get(ctx context.Context, clubID, viewerID int64) (*dto.ClubResponse, error)
	Create(ctx context.Context, req *dto.CreateClubRequest, actor Principal) (*dto.ClubResponse, error)
	Update(ctx context.Context, clubID int64, req *dto.UpdateClubRequest, actor Principal) (*dto.ClubResponse, error)
	Approve(ctx context.Context, clubID int64, approve bool, actor Principal) (*dto.ClubResponse, error)
	Broadcast(ctx context.Context, clubID int64, req *dto.BroadcastRequest, actor Principal) error
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubs       ClubStore
	memberships MembershipStore
	users       UserStore
	authz       *auth.AuthorizationService
	notifier    Notifier
	logger      zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubs ClubStore,
	memberships MembershipStore,
	users UserStore,
	authz *auth.AuthorizationService,
	notifier Notifier,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubs:       clubs,
		memberships: memberships,
		users:       users,
		authz:       authz,
		notifier:    notifier,
		logger:      logger,
	}
}

// List retrieves clubs matching the filter
func (s *clubServiceImpl) List(ctx context.Context, filter *dto.ClubFilterRequest) ([]dto.ClubResponse, error) {
	clubs, err := s.clubs.GetAll(ctx, filter.Category, filter.Status, filter.Search)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, dto.ToClubResponse(&clubs[i]))
	}
	return responses, nil
}

// Get retrieves a single club. A non-zero viewerID attaches the viewer's
// own membership to the response.
func (s *clubServiceImpl) Get(ctx context.Context, clubID, viewerID int64) (*dto.ClubResponse, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToClubResponse(club)
	if viewerID > 0 {
		membership, err := s.memberships.GetByClubAndUser(ctx, clubID, viewerID)
		if err == nil {
			m := dto.ToMembershipResponse(membership)
			resp.ViewerMembership = &m
		} else if !errors.Is(err, apperrors.ErrMembershipNotFound) {
			return nil, err
		}
	}
	return &resp, nil
}

// Create creates a club. The creator gets an approved lead membership in
// the same transaction. Admin-created clubs activate immediately; others
// await approval.
func (s *clubServiceImpl) Create(ctx context.Context, req *dto.CreateClubRequest, actor Principal) (*dto.ClubResponse, error) {
	status := models.ClubPending
	if actor.IsAdmin() {
		status = models.ClubActive
	}

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Logo:        req.Logo,
		Status:      status,
		CreatedBy:   actor.ID,
	}
	if err := s.clubs.CreateWithLead(ctx, club); err != nil {
		return nil, err
	}
	club.MemberCount = 1

	// Pending clubs wait on an admin, so let the admins know
	if club.Status == models.ClubPending {
		adminIDs, err := s.users.ListAdminIDs(ctx)
		if err != nil {
			s.logger.Error().Err(err).Int64("clubID", club.ID).Msg("Failed to list admins for fan-out")
		} else {
			s.notifier.Notify(ctx, adminIDs, models.NotificationClubRequest,
				"New club request", fmt.Sprintf("%s is awaiting approval", club.Name))
		}
	}

	resp := dto.ToClubResponse(club)
	return &resp, nil
}

// Update edits a club's details, manager only
func (s *clubServiceImpl) Update(ctx context.Context, clubID int64, req *dto.UpdateClubRequest, actor Principal) (*dto.ClubResponse, error) {
	if err := s.authz.ValidateClubManager(ctx, clubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	if err := s.clubs.Update(ctx, clubID, req.Name, req.Description, req.Category, req.Logo); err != nil {
		return nil, err
	}
	return s.Get(ctx, clubID, 0)
}

// Approve activates or deactivates a pending club, admin only
func (s *clubServiceImpl) Approve(ctx context.Context, clubID int64, approve bool, actor Principal) (*dto.ClubResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.Status != models.ClubPending {
		return nil, apperrors.NewBadRequestError("club is not pending approval")
	}

	status := models.ClubInactive
	if approve {
		status = models.ClubActive
	}
	if err := s.clubs.SetStatus(ctx, clubID, status); err != nil {
		return nil, err
	}
	club.Status = status

	if approve {
		s.notifier.Notify(ctx, []int64{club.CreatedBy}, models.NotificationClubApproved,
			"Club approved", fmt.Sprintf("%s is now active", club.Name))
	}

	resp := dto.ToClubResponse(club)
	return &resp, nil
}

// Broadcast fans a notification out to every approved member of the club
func (s *clubServiceImpl) Broadcast(ctx context.Context, clubID int64, req *dto.BroadcastRequest, actor Principal) error {
	if err := s.authz.ValidateClubManager(ctx, clubID, actor.ID, actor.Role); err != nil {
		return err
	}
	memberIDs, err := s.memberships.ListApprovedMemberIDs(ctx, clubID)
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, memberIDs, models.NotificationClubBroadcast, req.Title, req.Message)
	return nil
}
