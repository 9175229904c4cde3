package models

import "time"

// Feedback represents a user's rating for an event.
// At most one row per (user, event); resubmission updates in place.
type Feedback struct {
	ID          int64     `json:"id" db:"id"`
	EventID     int64     `json:"eventId" db:"event_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Rating      int       `json:"rating" db:"rating"`
	Comment     *string   `json:"comment,omitempty" db:"comment"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
