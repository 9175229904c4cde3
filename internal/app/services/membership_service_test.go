package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

type membershipFixture struct {
	svc         MembershipService
	clubSvc     ClubService
	memberships *fakeMembershipStore
	clubs       *fakeClubStore
	notifier    *fakeNotifier
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	memberships := newFakeMembershipStore()
	clubs := newFakeClubStore(memberships)
	notifier := &fakeNotifier{}
	authz := auth.NewAuthorizationService(memberships)

	return &membershipFixture{
		svc:         NewMembershipService(memberships, clubs, authz, notifier, zerolog.Nop()),
		clubSvc:     NewClubService(clubs, memberships, newFakeUserStore(), authz, notifier, zerolog.Nop()),
		memberships: memberships,
		clubs:       clubs,
		notifier:    notifier,
	}
}

func (f *membershipFixture) activeClub(t *testing.T, creator Principal) *dto.ClubResponse {
	t.Helper()
	club, err := f.clubSvc.Create(context.Background(), &dto.CreateClubRequest{
		Name:     "Robotics Club",
		Category: "tech",
	}, creator)
	require.NoError(t, err)
	if club.Status != string(models.ClubActive) {
		require.NoError(t, f.clubs.SetStatus(context.Background(), club.ID, models.ClubActive))
	}
	return club
}

func TestClubService_CreatorGetsLeadMembershipImmediately(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	creator := Principal{ID: 5, Role: models.RoleStudent}

	club, err := f.clubSvc.Create(context.Background(), &dto.CreateClubRequest{
		Name:     "Chess Club",
		Category: "games",
	}, creator)
	require.NoError(t, err)

	// Non-admin creation leaves the club pending approval
	assert.Equal(t, string(models.ClubPending), club.Status)

	// The lead row exists before any admin action
	m, err := f.memberships.GetByClubAndUser(context.Background(), club.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberRoleLead, m.Role)
	assert.Equal(t, models.MembershipApproved, m.Status)
}

func TestMembershipService_RequestJoin_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	club := f.activeClub(t, Principal{ID: 1, Role: models.RoleStudent})
	joiner := Principal{ID: 2, Role: models.RoleStudent}
	ctx := context.Background()

	_, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)

	_, err = f.svc.RequestJoin(ctx, club.ID, joiner)
	assert.ErrorIs(t, err, apperrors.ErrRequestPending)

	// Still exactly one row for the pair
	rows, err := f.memberships.ListByClub(ctx, club.ID, models.MembershipPending)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMembershipService_RequestJoin_InactiveClubRejected(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	club, err := f.clubSvc.Create(context.Background(), &dto.CreateClubRequest{
		Name:     "Pending Club",
		Category: "misc",
	}, Principal{ID: 1, Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = f.svc.RequestJoin(context.Background(), club.ID, Principal{ID: 2, Role: models.RoleStudent})
	assert.Error(t, err)
}

func TestMembershipService_DecideApprove(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	lead := Principal{ID: 1, Role: models.RoleStudent}
	club := f.activeClub(t, lead)
	joiner := Principal{ID: 2, Role: models.RoleStudent}
	ctx := context.Background()

	requested, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)

	// Join request notified the lead
	sent := f.notifier.sentOfType(models.NotificationMembershipRequest)
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[0].UserIDs, lead.ID)

	decided, err := f.svc.Decide(ctx, requested.ID, true, lead)
	require.NoError(t, err)
	assert.Equal(t, string(models.MembershipApproved), decided.Status)

	// The member count cache follows the approval
	clubAfter, err := f.clubs.GetByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, clubAfter.MemberCount)

	// The affected user was notified
	approvals := f.notifier.sentOfType(models.NotificationMembershipApproved)
	require.Len(t, approvals, 1)
	assert.Equal(t, []int64{joiner.ID}, approvals[0].UserIDs)
}

func TestMembershipService_Decide_RequiresManager(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	club := f.activeClub(t, Principal{ID: 1, Role: models.RoleStudent})
	ctx := context.Background()

	requested, err := f.svc.RequestJoin(ctx, club.ID, Principal{ID: 2, Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, requested.ID, true, Principal{ID: 3, Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Global admin may decide without membership
	_, err = f.svc.Decide(ctx, requested.ID, true, Principal{ID: 99, Role: models.RoleAdmin})
	assert.NoError(t, err)
}

func TestMembershipService_RejectedCanRequestAgain(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	lead := Principal{ID: 1, Role: models.RoleStudent}
	club := f.activeClub(t, lead)
	joiner := Principal{ID: 2, Role: models.RoleStudent}
	ctx := context.Background()

	requested, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, requested.ID, false, lead)
	require.NoError(t, err)

	// Re-request reuses the rejected row
	again, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)
	assert.Equal(t, requested.ID, again.ID)
	assert.Equal(t, string(models.MembershipPending), again.Status)
}

func TestMembershipService_ApprovedMemberCannotRequestAgain(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	lead := Principal{ID: 1, Role: models.RoleStudent}
	club := f.activeClub(t, lead)
	joiner := Principal{ID: 2, Role: models.RoleStudent}
	ctx := context.Background()

	requested, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, requested.ID, true, lead)
	require.NoError(t, err)

	_, err = f.svc.RequestJoin(ctx, club.ID, joiner)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
}

func TestMembershipService_Leave_Idempotent(t *testing.T) {
	t.Parallel()

	f := newMembershipFixture(t)
	lead := Principal{ID: 1, Role: models.RoleStudent}
	club := f.activeClub(t, lead)
	joiner := Principal{ID: 2, Role: models.RoleStudent}
	ctx := context.Background()

	requested, err := f.svc.RequestJoin(ctx, club.ID, joiner)
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, requested.ID, true, lead)
	require.NoError(t, err)

	require.NoError(t, f.svc.Leave(ctx, club.ID, joiner))

	// The row is gone and leaving again is still fine
	_, err = f.memberships.GetByClubAndUser(ctx, club.ID, joiner.ID)
	assert.ErrorIs(t, err, apperrors.ErrMembershipNotFound)
	require.NoError(t, f.svc.Leave(ctx, club.ID, joiner))

	// And the pair may request anew through the normal flow
	_, err = f.svc.RequestJoin(ctx, club.ID, joiner)
	assert.NoError(t, err)
}
