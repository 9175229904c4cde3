package models

import "time"

// Certificate represents an issued certificate for an attended event.
// At most one certificate exists per (user, event).
type Certificate struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"`
	EventID          int64     `json:"eventId" db:"event_id"`
	CertificateType  string    `json:"certificateType" db:"certificate_type"`
	VerificationCode string    `json:"verificationCode" db:"verification_code"`
	IssuedAt         time.Time `json:"issuedAt" db:"issued_at"`

	// Related entities
	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}

// DefaultCertificateType is used when the caller does not specify one
const DefaultCertificateType = "participation"
