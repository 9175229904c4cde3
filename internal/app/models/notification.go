package models

import "time"

// Notification types produced by state transitions in other components
const (
	NotificationWelcome            = "welcome"
	NotificationClubRequest        = "club_request"
	NotificationClubApproved       = "club_approved"
	NotificationClubBroadcast      = "club_broadcast"
	NotificationMembershipRequest  = "membership_request"
	NotificationMembershipApproved = "membership_approved"
	NotificationMembershipRejected = "membership_rejected"
	NotificationNewEvent           = "new_event"
	NotificationEventRegistered    = "event_registered"
	NotificationEventReminder      = "event_reminder"
	NotificationCheckedIn          = "checked_in"
	NotificationCertificateReady   = "certificate_ready"
)

// Notification represents an in-app notification owned by one user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
