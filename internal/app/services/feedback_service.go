package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// FeedbackService defines the interface for event feedback operations
type FeedbackService interface {
	Submit(ctx context.Context, eventID int64, req *dto.SubmitFeedbackRequest, actor Principal) (*dto.FeedbackResponse, error)
	ListForEvent(ctx context.Context, eventID int64) (*dto.EventFeedbackResponse, error)
}

// feedbackServiceImpl implements FeedbackService
type feedbackServiceImpl struct {
	feedback      FeedbackStore
	registrations RegistrationStore
	events        EventStore
	clubs         ClubStore
	logger        zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(
	feedback FeedbackStore,
	registrations RegistrationStore,
	events EventStore,
	clubs ClubStore,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackServiceImpl{
		feedback:      feedback,
		registrations: registrations,
		events:        events,
		clubs:         clubs,
		logger:        logger,
	}
}

// Submit records the actor's rating for an event. Only registrants may
// rate; resubmitting replaces the earlier rating.
func (s *feedbackServiceImpl) Submit(ctx context.Context, eventID int64, req *dto.SubmitFeedbackRequest, actor Principal) (*dto.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("rating must be between 1 and 5")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registration, err := s.registrations.GetByEventAndUser(ctx, eventID, actor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRegistrationNotFound) {
			return nil, apperrors.NewBadRequestError("only registrants can rate an event")
		}
		return nil, err
	}
	if registration.Status == models.RegistrationCancelled {
		return nil, apperrors.NewBadRequestError("only registrants can rate an event")
	}

	feedback := &models.Feedback{
		EventID: eventID,
		UserID:  actor.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.feedback.Upsert(ctx, feedback); err != nil {
		return nil, err
	}

	// The club's cached rating trails feedback; refresh is best effort
	if err := s.clubs.RefreshRating(ctx, event.ClubID); err != nil {
		s.logger.Error().Err(err).Int64("clubID", event.ClubID).Msg("Failed to refresh club rating")
	}

	resp := dto.ToFeedbackResponse(feedback)
	return &resp, nil
}

// ListForEvent retrieves an event's feedback with its average rating
func (s *feedbackServiceImpl) ListForEvent(ctx context.Context, eventID int64) (*dto.EventFeedbackResponse, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	feedback, err := s.feedback.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	average, err := s.feedback.AverageByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FeedbackResponse, 0, len(feedback))
	for i := range feedback {
		responses = append(responses, dto.ToFeedbackResponse(&feedback[i]))
	}
	return &dto.EventFeedbackResponse{
		AverageRating: average,
		Count:         len(responses),
		Feedback:      responses,
	}, nil
}
