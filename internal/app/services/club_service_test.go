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
)

type clubFixture struct {
	svc         ClubService
	clubs       *fakeClubStore
	memberships *fakeMembershipStore
	users       *fakeUserStore
	notifier    *fakeNotifier
}

func newClubFixture(t *testing.T) *clubFixture {
	t.Helper()
	memberships := newFakeMembershipStore()
	f := &clubFixture{
		clubs:       newFakeClubStore(memberships),
		memberships: memberships,
		users:       newFakeUserStore(),
		notifier:    &fakeNotifier{},
	}
	f.svc = NewClubService(
		f.clubs, memberships, f.users,
		auth.NewAuthorizationService(memberships),
		f.notifier, zerolog.Nop())
	return f
}

func (f *clubFixture) addUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "User", Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestClubService_Create_NotifiesAdminsOnPending(t *testing.T) {
	t.Parallel()

	f := newClubFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "lead@campus.edu", models.RoleStudent)
	adminA := f.addUser(t, "admin-a@campus.edu", models.RoleAdmin)
	adminB := f.addUser(t, "admin-b@campus.edu", models.RoleAdmin)

	club, err := f.svc.Create(ctx, &dto.CreateClubRequest{
		Name:     "Robotics Club",
		Category: "technical",
	}, Principal{ID: creator.ID, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, string(models.ClubPending), club.Status)

	sent := f.notifier.sentOfType(models.NotificationClubRequest)
	require.Len(t, sent, 1)
	assert.ElementsMatch(t, []int64{adminA.ID, adminB.ID}, sent[0].UserIDs)
}

func TestClubService_Create_AdminActivatesImmediately(t *testing.T) {
	t.Parallel()

	f := newClubFixture(t)
	admin := f.addUser(t, "admin@campus.edu", models.RoleAdmin)

	club, err := f.svc.Create(context.Background(), &dto.CreateClubRequest{
		Name:     "Chess Club",
		Category: "cultural",
	}, Principal{ID: admin.ID, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, string(models.ClubActive), club.Status)

	// Active clubs need no approval, so no request fan-out
	assert.Empty(t, f.notifier.sentOfType(models.NotificationClubRequest))
}

func TestClubService_Get_ViewerMembership(t *testing.T) {
	t.Parallel()

	f := newClubFixture(t)
	ctx := context.Background()
	creator := f.addUser(t, "lead@campus.edu", models.RoleStudent)

	club, err := f.svc.Create(ctx, &dto.CreateClubRequest{
		Name:     "Film Society",
		Category: "cultural",
	}, Principal{ID: creator.ID, Role: models.RoleStudent})
	require.NoError(t, err)

	// Anonymous lookups carry no membership state
	anon, err := f.svc.Get(ctx, club.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, anon.ViewerMembership)

	// The creator sees their own lead membership
	got, err := f.svc.Get(ctx, club.ID, creator.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ViewerMembership)
	assert.Equal(t, string(models.MemberRoleLead), got.ViewerMembership.Role)
	assert.Equal(t, string(models.MembershipApproved), got.ViewerMembership.Status)

	// A signed-in stranger sees none, not an error
	stranger, err := f.svc.Get(ctx, club.ID, 999)
	require.NoError(t, err)
	assert.Nil(t, stranger.ViewerMembership)
}
