package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

type certificateFixture struct {
	svc           CertificateService
	events        *fakeEventStore
	registrations *fakeRegistrationStore
	certificates  *fakeCertificateStore
	notifier      *fakeNotifier
}

func newCertificateFixture(t *testing.T) *certificateFixture {
	t.Helper()
	memberships := newFakeMembershipStore()
	certificates := newFakeCertificateStore()
	registrations := newFakeRegistrationStore()
	registrations.certificates = certificates
	notifier := &fakeNotifier{}

	f := &certificateFixture{
		events:        newFakeEventStore(),
		registrations: registrations,
		certificates:  certificates,
		notifier:      notifier,
	}
	f.svc = NewCertificateService(
		certificates, registrations, f.events,
		auth.NewAuthorizationService(memberships),
		notifier, zerolog.Nop())
	return f
}

func (f *certificateFixture) addEventWithAttendees(t *testing.T, attendees, registeredOnly []int64) *models.Event {
	t.Helper()
	ctx := context.Background()
	event := &models.Event{
		ClubID:          1,
		Title:           "AI Summit",
		EventDate:       time.Now().Add(-24 * time.Hour),
		EventType:       "conference",
		MaxParticipants: 100,
		Status:          models.EventCompleted,
		CreatedBy:       1,
	}
	require.NoError(t, f.events.Create(ctx, event))

	for _, userID := range attendees {
		reg := &models.Registration{EventID: event.ID, UserID: userID, Status: models.RegistrationRegistered}
		require.NoError(t, f.registrations.Create(ctx, reg))
		require.NoError(t, f.registrations.CheckIn(ctx, event.ID, userID, time.Now()))
	}
	for _, userID := range registeredOnly {
		reg := &models.Registration{EventID: event.ID, UserID: userID, Status: models.RegistrationRegistered}
		require.NoError(t, f.registrations.Create(ctx, reg))
	}
	return event
}

var verificationCodePattern = regexp.MustCompile(`^CH-[0-9A-F]{16}$`)

func TestCertificateService_Issue(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	event := f.addEventWithAttendees(t, []int64{7}, nil)
	admin := Principal{ID: 1, Role: models.RoleAdmin}

	cert, err := f.svc.Issue(context.Background(), event.ID, 7, "", admin)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCertificateType, cert.CertificateType)
	assert.Regexp(t, verificationCodePattern, cert.VerificationCode)

	sent := f.notifier.sentOfType(models.NotificationCertificateReady)
	require.NotEmpty(t, sent)
	assert.Equal(t, []int64{7}, sent[0].UserIDs)
}

func TestCertificateService_Issue_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	event := f.addEventWithAttendees(t, []int64{7}, nil)
	admin := Principal{ID: 1, Role: models.RoleAdmin}
	ctx := context.Background()

	_, err := f.svc.Issue(ctx, event.ID, 7, "", admin)
	require.NoError(t, err)

	_, err = f.svc.Issue(ctx, event.ID, 7, "", admin)
	assert.ErrorIs(t, err, apperrors.ErrCertificateExists)

	// Exactly one stored certificate
	certs, err := f.certificates.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestCertificateService_Issue_RequiresAttendance(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	event := f.addEventWithAttendees(t, nil, []int64{8})
	admin := Principal{ID: 1, Role: models.RoleAdmin}
	ctx := context.Background()

	// Registered but never checked in
	_, err := f.svc.Issue(ctx, event.ID, 8, "", admin)
	assert.ErrorIs(t, err, apperrors.ErrNotAttended)

	// Never registered at all
	_, err = f.svc.Issue(ctx, event.ID, 99, "", admin)
	assert.ErrorIs(t, err, apperrors.ErrNotAttended)
}

func TestCertificateService_Issue_RequiresManager(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	event := f.addEventWithAttendees(t, []int64{7}, nil)

	_, err := f.svc.Issue(context.Background(), event.ID, 7, "", Principal{ID: 50, Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCertificateService_BulkIssue_SkipsCertified(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	// Five attendees, two already certified
	event := f.addEventWithAttendees(t, []int64{1, 2, 3, 4, 5}, nil)
	admin := Principal{ID: 9, Role: models.RoleAdmin}
	ctx := context.Background()

	for _, userID := range []int64{1, 2} {
		_, err := f.svc.Issue(ctx, event.ID, userID, "", admin)
		require.NoError(t, err)
	}

	result, err := f.svc.BulkIssue(ctx, event.ID, "", admin)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 2, result.Skipped)

	// A second run has nothing left to generate
	again, err := f.svc.BulkIssue(ctx, event.ID, "", admin)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Generated)
	assert.Equal(t, 5, again.Skipped)
}

func TestCertificateService_Verify(t *testing.T) {
	t.Parallel()

	f := newCertificateFixture(t)
	event := f.addEventWithAttendees(t, []int64{7}, nil)
	admin := Principal{ID: 1, Role: models.RoleAdmin}
	ctx := context.Background()

	cert, err := f.svc.Issue(ctx, event.ID, 7, "achievement", admin)
	require.NoError(t, err)

	verified, err := f.svc.Verify(ctx, cert.VerificationCode)
	require.NoError(t, err)
	assert.Equal(t, "achievement", verified.CertificateType)

	_, err = f.svc.Verify(ctx, "CH-DOESNOTEXIST0000")
	assert.ErrorIs(t, err, apperrors.ErrCertificateNotFound)
}
