package models

import "time"

// ChatMessage represents a message in a club channel.
// Delivery is by polling; there is no push transport.
type ChatMessage struct {
	ID          int64     `json:"id" db:"id"`
	ClubID      int64     `json:"clubId" db:"club_id"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	Message     string    `json:"message" db:"message"`
	MessageType string    `json:"messageType" db:"message_type"`
	SentAt      time.Time `json:"sentAt" db:"sent_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
