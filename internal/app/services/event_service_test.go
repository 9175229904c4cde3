package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/otp"
)

type eventFixture struct {
	svc           EventService
	events        *fakeEventStore
	registrations *fakeRegistrationStore
	memberships   *fakeMembershipStore
	notifier      *fakeNotifier
	codes         *otp.MemoryStore
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	memberships := newFakeMembershipStore()
	notifier := &fakeNotifier{}
	codes := otp.NewMemoryStore(time.Hour)
	t.Cleanup(codes.Close)

	f := &eventFixture{
		events:        newFakeEventStore(),
		registrations: newFakeRegistrationStore(),
		memberships:   memberships,
		notifier:      notifier,
		codes:         codes,
	}
	f.svc = NewEventService(
		f.events, f.registrations, memberships,
		auth.NewAuthorizationService(memberships),
		notifier, codes, zerolog.Nop())
	return f
}

func (f *eventFixture) addEvent(t *testing.T, maxParticipants int, status models.EventStatus) *models.Event {
	t.Helper()
	event := &models.Event{
		ClubID:          1,
		Title:           "Hack Night",
		EventDate:       time.Now().Add(48 * time.Hour),
		EventType:       "workshop",
		MaxParticipants: maxParticipants,
		Status:          status,
		CreatedBy:       1,
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func TestEventService_Register_CapacityNeverExceededUnderRace(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	const capacity = 5
	event := f.addEvent(t, capacity, models.EventUpcoming)

	// Many more contenders than slots, all racing the admission decision
	const contenders = 40
	var wg sync.WaitGroup
	var admitted, rejected int64
	var mu sync.Mutex
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := f.svc.Register(context.Background(), event.ID, Principal{ID: userID, Role: models.RoleStudent})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if errors.Is(err, apperrors.ErrEventFull) {
				rejected++
			}
		}(int64(100 + i))
	}
	wg.Wait()

	assert.EqualValues(t, capacity, admitted)
	assert.EqualValues(t, contenders-capacity, rejected)

	count, err := f.registrations.CountActive(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)
}

func TestEventService_Register_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	actor := Principal{ID: 7, Role: models.RoleStudent}

	_, err := f.svc.Register(context.Background(), event.ID, actor)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), event.ID, actor)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
}

func TestEventService_RegisterCancelRegister_ReusesRow(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	actor := Principal{ID: 7, Role: models.RoleStudent}
	ctx := context.Background()

	first, err := f.svc.Register(ctx, event.ID, actor)
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, actor))

	second, err := f.svc.Register(ctx, event.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-registration must reuse the original row")

	count, err := f.registrations.CountActive(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEventService_Register_LastSlotHandoff(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 1, models.EventUpcoming)
	ctx := context.Background()
	userA := Principal{ID: 1, Role: models.RoleStudent}
	userB := Principal{ID: 2, Role: models.RoleStudent}

	_, err := f.svc.Register(ctx, event.ID, userA)
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, event.ID, userB)
	assert.ErrorIs(t, err, apperrors.ErrEventFull)

	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, userA))

	_, err = f.svc.Register(ctx, event.ID, userB)
	assert.NoError(t, err, "freed slot must be admittable again")
}

func TestEventService_Register_TerminalEventRejected(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	cancelled := f.addEvent(t, 10, models.EventCancelled)
	completed := f.addEvent(t, 10, models.EventCompleted)
	actor := Principal{ID: 7, Role: models.RoleStudent}

	_, err := f.svc.Register(context.Background(), cancelled.ID, actor)
	assert.ErrorIs(t, err, apperrors.ErrEventCancelled)

	_, err = f.svc.Register(context.Background(), completed.ID, actor)
	assert.ErrorIs(t, err, apperrors.ErrEventCompleted)
}

func TestEventService_CancelRegistration_Idempotent(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	actor := Principal{ID: 7, Role: models.RoleStudent}
	ctx := context.Background()

	_, err := f.svc.Register(ctx, event.ID, actor)
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, actor))
	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, actor))

	// Cancelling without ever registering is also a no-op
	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, Principal{ID: 99, Role: models.RoleStudent}))
}

func TestEventService_CheckIn_SelfWithCode(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	ctx := context.Background()
	lead := Principal{ID: 1, Role: models.RoleStudent}
	attendee := Principal{ID: 7, Role: models.RoleStudent}

	require.NoError(t, f.memberships.Create(ctx, &models.Membership{
		ClubID: 1, UserID: 1, Role: models.MemberRoleLead, Status: models.MembershipApproved,
	}))

	_, err := f.svc.Register(ctx, event.ID, attendee)
	require.NoError(t, err)

	codeResp, err := f.svc.GenerateCheckInCode(ctx, event.ID, lead)
	require.NoError(t, err)
	require.NotEmpty(t, codeResp.Code)

	// Wrong code fails, right code succeeds
	err = f.svc.CheckIn(ctx, event.ID, &dto.CheckInRequest{Code: "000000"}, attendee)
	assert.ErrorIs(t, err, apperrors.ErrCodeMismatch)
	require.NoError(t, f.svc.CheckIn(ctx, event.ID, &dto.CheckInRequest{Code: codeResp.Code}, attendee))

	status, err := f.svc.CheckInStatus(ctx, event.ID, attendee.ID)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.NotNil(t, status.CheckedInAt)
}

func TestEventService_CheckIn_StaffForAttendee(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	ctx := context.Background()
	attendee := Principal{ID: 7, Role: models.RoleStudent}

	require.NoError(t, f.memberships.Create(ctx, &models.Membership{
		ClubID: 1, UserID: 2, Role: models.MemberRoleCoLead, Status: models.MembershipApproved,
	}))

	_, err := f.svc.Register(ctx, event.ID, attendee)
	require.NoError(t, err)

	// A co_lead checks the attendee in without a code
	staff := Principal{ID: 2, Role: models.RoleStudent}
	require.NoError(t, f.svc.CheckIn(ctx, event.ID, &dto.CheckInRequest{UserID: attendee.ID}, staff))

	// An outsider may not
	outsider := Principal{ID: 50, Role: models.RoleStudent}
	err = f.svc.CheckIn(ctx, event.ID, &dto.CheckInRequest{UserID: attendee.ID}, outsider)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEventService_CheckIn_ManagerSelfWithoutCode(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	ctx := context.Background()
	lead := Principal{ID: 1, Role: models.RoleStudent}

	require.NoError(t, f.memberships.Create(ctx, &models.Membership{
		ClubID: 1, UserID: 1, Role: models.MemberRoleLead, Status: models.MembershipApproved,
	}))

	_, err := f.svc.Register(ctx, event.ID, lead)
	require.NoError(t, err)

	// The lead checks themselves in with no code published at all
	require.NoError(t, f.svc.CheckIn(ctx, event.ID, &dto.CheckInRequest{}, lead))

	status, err := f.svc.CheckInStatus(ctx, event.ID, lead.ID)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
}

func TestEventService_Get_ViewerState(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	ctx := context.Background()
	viewer := Principal{ID: 7, Role: models.RoleStudent}

	// Anonymous lookups carry no viewer state
	anon, err := f.svc.Get(ctx, event.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, anon.Viewer)

	_, err = f.svc.Register(ctx, event.ID, viewer)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, event.ID, viewer.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Viewer)
	assert.True(t, got.Viewer.Registered)
	assert.False(t, got.Viewer.CheckedIn)

	// A signed-in stranger sees an empty state, not an error
	stranger, err := f.svc.Get(ctx, event.ID, 99)
	require.NoError(t, err)
	require.NotNil(t, stranger.Viewer)
	assert.False(t, stranger.Viewer.Registered)
}

func TestEventService_RemindEvent_NotifiesRegistered(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	event := f.addEvent(t, 10, models.EventUpcoming)
	ctx := context.Background()
	admin := Principal{ID: 1, Role: models.RoleAdmin}

	for _, userID := range []int64{10, 11, 12} {
		_, err := f.svc.Register(ctx, event.ID, Principal{ID: userID, Role: models.RoleStudent})
		require.NoError(t, err)
	}
	// A cancelled registrant must not be reminded
	require.NoError(t, f.svc.CancelRegistration(ctx, event.ID, Principal{ID: 12, Role: models.RoleStudent}))

	result, err := f.svc.RemindEvent(ctx, event.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)

	sent := f.notifier.sentOfType(models.NotificationEventReminder)
	require.Len(t, sent, 1)
	assert.ElementsMatch(t, []int64{10, 11}, sent[0].UserIDs)

	// Students may not trigger reminders
	_, err = f.svc.RemindEvent(ctx, event.ID, Principal{ID: 10, Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEventService_Create_RequiresManager(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	ctx := context.Background()
	req := &dto.CreateEventRequest{
		ClubID:          1,
		Title:           "Tech Talk",
		EventDate:       time.Now().Add(24 * time.Hour),
		EventType:       "talk",
		MaxParticipants: 50,
	}

	_, err := f.svc.Create(ctx, req, Principal{ID: 9, Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Admin bypasses membership
	created, err := f.svc.Create(ctx, req, Principal{ID: 9, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, string(models.EventUpcoming), created.Status)
}

func TestEventService_Create_NotifiesApprovedMembers(t *testing.T) {
	t.Parallel()

	f := newEventFixture(t)
	ctx := context.Background()
	for _, userID := range []int64{10, 11} {
		require.NoError(t, f.memberships.Create(ctx, &models.Membership{
			ClubID: 1, UserID: userID, Role: models.MemberRoleMember, Status: models.MembershipApproved,
		}))
	}
	// A pending member must not be notified
	require.NoError(t, f.memberships.Create(ctx, &models.Membership{
		ClubID: 1, UserID: 12, Role: models.MemberRoleMember, Status: models.MembershipPending,
	}))

	_, err := f.svc.Create(ctx, &dto.CreateEventRequest{
		ClubID:          1,
		Title:           "Demo Day",
		EventDate:       time.Now().Add(24 * time.Hour),
		EventType:       "demo",
		MaxParticipants: 100,
	}, Principal{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	sent := f.notifier.sentOfType(models.NotificationNewEvent)
	require.Len(t, sent, 1)
	assert.ElementsMatch(t, []int64{10, 11}, sent[0].UserIDs)
}
