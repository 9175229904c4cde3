package dto

import (
	"time"

	"github.com/arda/campushub/internal/app/models"
)

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	ClubID               int64      `json:"clubId" binding:"required,min=1"`
	Title                string     `json:"title" binding:"required,min=3,max=200"`
	Description          *string    `json:"description,omitempty"`
	EventDate            time.Time  `json:"eventDate" binding:"required"`
	StartTime            string     `json:"startTime,omitempty"`
	EndTime              string     `json:"endTime,omitempty"`
	Venue                *string    `json:"venue,omitempty"`
	EventType            string     `json:"eventType" binding:"required"`
	MaxParticipants      int        `json:"maxParticipants" binding:"required,min=1"`
	Price                float64    `json:"price" binding:"omitempty,min=0"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// UpdateEventRequest represents an event update request
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description          *string    `json:"description,omitempty"`
	EventDate            *time.Time `json:"eventDate,omitempty"`
	StartTime            *string    `json:"startTime,omitempty"`
	EndTime              *string    `json:"endTime,omitempty"`
	Venue                *string    `json:"venue,omitempty"`
	MaxParticipants      *int       `json:"maxParticipants,omitempty" binding:"omitempty,min=1"`
	Price                *float64   `json:"price,omitempty" binding:"omitempty,min=0"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// SetEventStatusRequest moves an event to a terminal status
type SetEventStatusRequest struct {
	Status models.EventStatus `json:"status" binding:"required,oneof=cancelled completed"`
}

// EventFilterRequest represents event listing filters
type EventFilterRequest struct {
	ClubID    int64  `form:"clubId"`
	EventType string `form:"eventType"`
	Status    string `form:"status"`
	Search    string `form:"search"`
	Upcoming  bool   `form:"upcoming"`
}

// EventResponse represents event information
type EventResponse struct {
	ID                   int64      `json:"id"`
	ClubID               int64      `json:"clubId"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	EventDate            time.Time  `json:"eventDate"`
	StartTime            string     `json:"startTime,omitempty"`
	EndTime              string     `json:"endTime,omitempty"`
	Venue                *string    `json:"venue,omitempty"`
	EventType            string     `json:"eventType"`
	MaxParticipants      int        `json:"maxParticipants"`
	RegisteredCount      int        `json:"registeredCount"`
	Price                float64    `json:"price"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Status               string     `json:"status"`
	CreatedBy            int64      `json:"createdBy"`
	CreatedAt            time.Time  `json:"createdAt"`

	// Set only on detail views for signed-in callers
	Viewer *CheckInStatusResponse `json:"viewer,omitempty"`
}

// RegistrationResponse represents an event registration row
type RegistrationResponse struct {
	ID           int64          `json:"id"`
	EventID      int64          `json:"eventId"`
	UserID       int64          `json:"userId"`
	Status       string         `json:"status"`
	RegisteredAt time.Time      `json:"registeredAt"`
	CheckedInAt  *time.Time     `json:"checkedInAt,omitempty"`
	User         *UserResponse  `json:"user,omitempty"`
	Event        *EventResponse `json:"event,omitempty"`
}

// CheckInRequest performs a check-in for an attendee
type CheckInRequest struct {
	UserID int64  `json:"userId,omitempty"`
	Code   string `json:"code,omitempty"`
}

// CheckInCodeResponse carries a short-lived self check-in code
type CheckInCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReminderResponse reports how many registrants a reminder reached
type ReminderResponse struct {
	Sent int `json:"sent"`
}

// CheckInStatusResponse reports a user's check-in state for an event
type CheckInStatusResponse struct {
	Registered  bool       `json:"registered"`
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
}

// ToEventResponse maps an event model to its response shape
func ToEventResponse(event *models.Event) EventResponse {
	return EventResponse{
		ID:                   event.ID,
		ClubID:               event.ClubID,
		Title:                event.Title,
		Description:          event.Description,
		EventDate:            event.EventDate,
		StartTime:            event.StartTime,
		EndTime:              event.EndTime,
		Venue:                event.Venue,
		EventType:            event.EventType,
		MaxParticipants:      event.MaxParticipants,
		RegisteredCount:      event.RegisteredCount,
		Price:                event.Price,
		RegistrationDeadline: event.RegistrationDeadline,
		Status:               string(event.Status),
		CreatedBy:            event.CreatedBy,
		CreatedAt:            event.CreatedAt,
	}
}

// ToRegistrationResponse maps a registration model to its response shape
func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:           r.ID,
		EventID:      r.EventID,
		UserID:       r.UserID,
		Status:       string(r.Status),
		RegisteredAt: r.RegisteredAt,
		CheckedInAt:  r.CheckedInAt,
	}
	if r.User != nil {
		user := ToUserResponse(r.User)
		resp.User = &user
	}
	if r.Event != nil {
		event := ToEventResponse(r.Event)
		resp.Event = &event
	}
	return resp
}
