package models

import "time"

// EventStatus is the lifecycle status of an event.
// Cancelled and completed are terminal.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Event represents a club event
type Event struct {
	ID                   int64       `json:"id" db:"id"`
	ClubID               int64       `json:"clubId" db:"club_id"`
	Title                string      `json:"title" db:"title"`
	Description          *string     `json:"description,omitempty" db:"description"`
	EventDate            time.Time   `json:"eventDate" db:"event_date"`
	StartTime            string      `json:"startTime" db:"start_time"`
	EndTime              string      `json:"endTime" db:"end_time"`
	Venue                *string     `json:"venue,omitempty" db:"venue"`
	EventType            string      `json:"eventType" db:"event_type"`
	MaxParticipants      int         `json:"maxParticipants" db:"max_participants"`
	Price                float64     `json:"price" db:"price"`
	RegistrationDeadline *time.Time  `json:"registrationDeadline,omitempty" db:"registration_deadline"`
	Status               EventStatus `json:"status" db:"status"`
	CreatedBy            int64       `json:"createdBy" db:"created_by"`
	CreatedAt            time.Time   `json:"createdAt" db:"created_at"`

	// RegisteredCount is the number of non-cancelled registrations,
	// computed at query time rather than stored.
	RegisteredCount int `json:"registeredCount" db:"-"`

	// Related entities
	Club *Club `json:"club,omitempty"`
}

// RegistrationStatus is the state of a single event registration
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
	RegistrationAttended   RegistrationStatus = "attended"
)

// Registration represents an (event, user) registration row.
// Cancelled rows are retained and reused on re-registration.
type Registration struct {
	ID           int64              `json:"id" db:"id"`
	EventID      int64              `json:"eventId" db:"event_id"`
	UserID       int64              `json:"userId" db:"user_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	RegisteredAt time.Time          `json:"registeredAt" db:"registered_at"`
	CheckedInAt  *time.Time         `json:"checkedInAt,omitempty" db:"checked_in_at"`

	// Related entities
	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}
