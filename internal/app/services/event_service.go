package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/otp"
)

// checkInCodeTTL bounds how long a self check-in code stays valid
const checkInCodeTTL = 15 * time.Minute

// EventService defines the interface for event lifecycle operations
type EventService interface {
	List(ctx context.Context, filter *dto.EventFilterRequest) ([]dto.EventResponse, error)
	Get(ctx context.Context, eventID, viewerID int64) (*dto.EventResponse, error)
	RemindEvent(ctx context.Context, eventID int64, actor Principal) (*dto.ReminderResponse, error)
	Create(ctx context.Context, req *dto.CreateEventRequest, actor Principal) (*dto.EventResponse, error)
	Update(ctx context.Context, eventID int64, req *dto.UpdateEventRequest, actor Principal) (*dto.EventResponse, error)
	SetStatus(ctx context.Context, eventID int64, status models.EventStatus, actor Principal) error
	Register(ctx context.Context, eventID int64, actor Principal) (*dto.RegistrationResponse, error)
	CancelRegistration(ctx context.Context, eventID int64, actor Principal) error
	CheckIn(ctx context.Context, eventID int64, req *dto.CheckInRequest, actor Principal) error
	CheckInStatus(ctx context.Context, eventID, userID int64) (*dto.CheckInStatusResponse, error)
	GenerateCheckInCode(ctx context.Context, eventID int64, actor Principal) (*dto.CheckInCodeResponse, error)
	ListRegistrations(ctx context.Context, eventID int64, actor Principal) ([]dto.RegistrationResponse, error)
	ListMine(ctx context.Context, userID int64) ([]dto.RegistrationResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	events        EventStore
	registrations RegistrationStore
	memberships   MembershipStore
	authz         *auth.AuthorizationService
	notifier      Notifier
	codes         otp.Store
	admission     *keyedMutex
	logger        zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	events EventStore,
	registrations RegistrationStore,
	memberships MembershipStore,
	authz *auth.AuthorizationService,
	notifier Notifier,
	codes otp.Store,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		events:        events,
		registrations: registrations,
		memberships:   memberships,
		authz:         authz,
		notifier:      notifier,
		codes:         codes,
		admission:     newKeyedMutex(),
		logger:        logger,
	}
}

// List retrieves events matching the filter
func (s *eventServiceImpl) List(ctx context.Context, filter *dto.EventFilterRequest) ([]dto.EventResponse, error) {
	events, err := s.events.GetAll(ctx, filter.ClubID, filter.EventType, filter.Status, filter.Search, filter.Upcoming)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.ToEventResponse(&events[i]))
	}
	return responses, nil
}

// Get retrieves a single event. A non-zero viewerID attaches the
// viewer's own registration state to the response.
func (s *eventServiceImpl) Get(ctx context.Context, eventID, viewerID int64) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToEventResponse(event)
	if viewerID > 0 {
		viewer, err := s.CheckInStatus(ctx, eventID, viewerID)
		if err != nil {
			return nil, err
		}
		resp.Viewer = viewer
	}
	return &resp, nil
}

// RemindEvent fans an event reminder out to everyone still registered,
// manager only. Reports how many registrants were notified.
func (s *eventServiceImpl) RemindEvent(ctx context.Context, eventID int64, actor Principal) (*dto.ReminderResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	if event.Status != models.EventUpcoming {
		return nil, apperrors.NewBadRequestError("only upcoming events can send reminders")
	}

	registrations, err := s.registrations.ListByEvent(ctx, eventID, models.RegistrationRegistered)
	if err != nil {
		return nil, err
	}
	userIDs := make([]int64, 0, len(registrations))
	for _, reg := range registrations {
		userIDs = append(userIDs, reg.UserID)
	}
	s.notifier.Notify(ctx, userIDs, models.NotificationEventReminder,
		"Event reminder", fmt.Sprintf("Reminder: %s is on %s", event.Title, event.EventDate.Format("Jan 2, 2006")))

	return &dto.ReminderResponse{Sent: len(userIDs)}, nil
}

// Create creates an event and fans out a notification to the club's
// approved members. Only club managers and admins may create events.
func (s *eventServiceImpl) Create(ctx context.Context, req *dto.CreateEventRequest, actor Principal) (*dto.EventResponse, error) {
	if err := s.authz.ValidateClubManager(ctx, req.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}

	event := &models.Event{
		ClubID:               req.ClubID,
		Title:                req.Title,
		Description:          req.Description,
		EventDate:            req.EventDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Venue:                req.Venue,
		EventType:            req.EventType,
		MaxParticipants:      req.MaxParticipants,
		Price:                req.Price,
		RegistrationDeadline: req.RegistrationDeadline,
		Status:               models.EventUpcoming,
		CreatedBy:            actor.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	memberIDs, err := s.memberships.ListApprovedMemberIDs(ctx, req.ClubID)
	if err != nil {
		s.logger.Error().Err(err).Int64("clubID", req.ClubID).Msg("Failed to list members for fan-out")
	} else {
		s.notifier.Notify(ctx, memberIDs, models.NotificationNewEvent,
			"New event", fmt.Sprintf("New event: %s", event.Title))
	}

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// Update edits an upcoming event's details
func (s *eventServiceImpl) Update(ctx context.Context, eventID int64, req *dto.UpdateEventRequest, actor Principal) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	if event.Status != models.EventUpcoming {
		return nil, apperrors.NewBadRequestError("only upcoming events can be edited")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Venue != nil {
		event.Venue = req.Venue
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = *req.MaxParticipants
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// SetStatus moves an event to cancelled or completed
func (s *eventServiceImpl) SetStatus(ctx context.Context, eventID int64, status models.EventStatus, actor Principal) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return err
	}
	if status != models.EventCancelled && status != models.EventCompleted {
		return apperrors.NewBadRequestError("status must be cancelled or completed")
	}
	return s.events.SetStatus(ctx, eventID, status)
}

// Register admits the actor to the event. The capacity check and the row
// write run under a per-event mutex so two requests racing the last slot
// cannot both be admitted.
func (s *eventServiceImpl) Register(ctx context.Context, eventID int64, actor Principal) (*dto.RegistrationResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	switch event.Status {
	case models.EventCancelled:
		return nil, apperrors.ErrEventCancelled
	case models.EventCompleted:
		return nil, apperrors.ErrEventCompleted
	}
	if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
		return nil, apperrors.NewBadRequestError("registration deadline has passed")
	}

	s.admission.Lock(eventID)
	defer s.admission.Unlock(eventID)

	existing, err := s.registrations.GetByEventAndUser(ctx, eventID, actor.ID)
	switch {
	case err == nil && existing.Status != models.RegistrationCancelled:
		return nil, apperrors.ErrAlreadyRegistered
	case err != nil && !errors.Is(err, apperrors.ErrRegistrationNotFound):
		return nil, err
	}

	count, err := s.registrations.CountActive(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if count >= event.MaxParticipants {
		return nil, apperrors.ErrEventFull
	}

	var registration *models.Registration
	if existing != nil {
		// Cancelled row exists, reuse it
		if err := s.registrations.Reactivate(ctx, existing.ID); err != nil {
			return nil, err
		}
		existing.Status = models.RegistrationRegistered
		existing.CheckedInAt = nil
		registration = existing
	} else {
		registration = &models.Registration{
			EventID: eventID,
			UserID:  actor.ID,
			Status:  models.RegistrationRegistered,
		}
		if err := s.registrations.Create(ctx, registration); err != nil {
			return nil, err
		}
	}

	s.notifier.Notify(ctx, []int64{actor.ID}, models.NotificationEventRegistered,
		"Registration confirmed", fmt.Sprintf("You are registered for %s", event.Title))

	resp := dto.ToRegistrationResponse(registration)
	return &resp, nil
}

// CancelRegistration flips the actor's registration to cancelled.
// Cancelling twice is a no-op.
func (s *eventServiceImpl) CancelRegistration(ctx context.Context, eventID int64, actor Principal) error {
	return s.registrations.Cancel(ctx, eventID, actor.ID)
}

// CheckIn marks an attendee as attended. Attendees checking themselves
// in need the event's current code; club managers and admins need no
// code, whether checking in themselves or someone else.
func (s *eventServiceImpl) CheckIn(ctx context.Context, eventID int64, req *dto.CheckInRequest, actor Principal) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	targetID := actor.ID
	if req.UserID != 0 {
		targetID = req.UserID
	}
	staffErr := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role)
	if targetID != actor.ID {
		// Checking in someone else is a staff action
		if staffErr != nil {
			return staffErr
		}
	} else if staffErr != nil {
		if err := s.verifyCheckInCode(eventID, req.Code); err != nil {
			return err
		}
	}

	if err := s.registrations.CheckIn(ctx, eventID, targetID, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrRegistrationNotFound) {
			return apperrors.NewBadRequestError("no active registration to check in")
		}
		return err
	}

	s.notifier.Notify(ctx, []int64{targetID}, models.NotificationCheckedIn,
		"Checked in", fmt.Sprintf("You are checked in to %s", event.Title))
	return nil
}

func (s *eventServiceImpl) verifyCheckInCode(eventID int64, code string) error {
	if code == "" {
		return apperrors.NewBadRequestError("check-in code is required")
	}
	entry, ok := s.codes.Get(checkInCodeKey(eventID))
	if !ok {
		return apperrors.ErrCodeNotFound
	}
	if entry.Expired(time.Now()) {
		s.codes.Delete(checkInCodeKey(eventID))
		return apperrors.ErrCodeExpired
	}
	if entry.Code != code {
		return apperrors.ErrCodeMismatch
	}
	return nil
}

// CheckInStatus reports a user's registration and check-in state
func (s *eventServiceImpl) CheckInStatus(ctx context.Context, eventID, userID int64) (*dto.CheckInStatusResponse, error) {
	registration, err := s.registrations.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRegistrationNotFound) {
			return &dto.CheckInStatusResponse{}, nil
		}
		return nil, err
	}
	return &dto.CheckInStatusResponse{
		Registered:  registration.Status != models.RegistrationCancelled,
		CheckedIn:   registration.Status == models.RegistrationAttended,
		CheckedInAt: registration.CheckedInAt,
	}, nil
}

// GenerateCheckInCode issues a short-lived self check-in code for an event.
// The code overwrites any previous one for the same event.
func (s *eventServiceImpl) GenerateCheckInCode(ctx context.Context, eventID int64, actor Principal) (*dto.CheckInCodeResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expiresAt := now.Add(checkInCodeTTL)
	s.codes.Put(checkInCodeKey(eventID), otp.Entry{Code: code, CreatedAt: now, ExpiresAt: expiresAt})

	return &dto.CheckInCodeResponse{Code: code, ExpiresAt: expiresAt}, nil
}

func checkInCodeKey(eventID int64) string {
	return fmt.Sprintf("checkin:%d", eventID)
}

// ListRegistrations lists an event's registrations, manager only
func (s *eventServiceImpl) ListRegistrations(ctx context.Context, eventID int64, actor Principal) ([]dto.RegistrationResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}
	registrations, err := s.registrations.ListByEvent(ctx, eventID, "")
	if err != nil {
		return nil, err
	}
	return toRegistrationResponses(registrations), nil
}

// ListMine lists the actor's registrations across all events
func (s *eventServiceImpl) ListMine(ctx context.Context, userID int64) ([]dto.RegistrationResponse, error) {
	registrations, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toRegistrationResponses(registrations), nil
}

func toRegistrationResponses(registrations []models.Registration) []dto.RegistrationResponse {
	responses := make([]dto.RegistrationResponse, 0, len(registrations))
	for i := range registrations {
		responses = append(responses, dto.ToRegistrationResponse(&registrations[i]))
	}
	return responses
}
