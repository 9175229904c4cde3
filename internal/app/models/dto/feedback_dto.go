package dto

import (
	"time"

	"github.com/arda/campushub/internal/app/models"
)

// SubmitFeedbackRequest submits or updates an event rating
type SubmitFeedbackRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// FeedbackResponse represents a single feedback row
type FeedbackResponse struct {
	ID          int64         `json:"id"`
	EventID     int64         `json:"eventId"`
	UserID      int64         `json:"userId"`
	Rating      int           `json:"rating"`
	Comment     *string       `json:"comment,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
	User        *UserResponse `json:"user,omitempty"`
}

// EventFeedbackResponse aggregates feedback for one event
type EventFeedbackResponse struct {
	AverageRating float64            `json:"averageRating"`
	Count         int                `json:"count"`
	Feedback      []FeedbackResponse `json:"feedback"`
}

// ToFeedbackResponse maps a feedback model to its response shape
func ToFeedbackResponse(f *models.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:          f.ID,
		EventID:     f.EventID,
		UserID:      f.UserID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		SubmittedAt: f.SubmittedAt,
	}
	if f.User != nil {
		user := ToUserResponse(f.User)
		resp.User = &user
	}
	return resp
}
