package dto

import (
	"time"

	"github.com/arda/campushub/internal/app/models"
)

// IssueCertificateRequest issues a certificate for an attendee
type IssueCertificateRequest struct {
	UserID          int64  `json:"userId" binding:"required,min=1"`
	CertificateType string `json:"certificateType,omitempty"`
}

// BulkIssueRequest issues certificates to every uncertified attendee
type BulkIssueRequest struct {
	CertificateType string `json:"certificateType,omitempty"`
}

// BulkIssueResponse reports how many certificates were generated vs skipped
type BulkIssueResponse struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

// CertificateResponse represents a certificate record
type CertificateResponse struct {
	ID               int64          `json:"id"`
	UserID           int64          `json:"userId"`
	EventID          int64          `json:"eventId"`
	CertificateType  string         `json:"certificateType"`
	VerificationCode string         `json:"verificationCode"`
	IssuedAt         time.Time      `json:"issuedAt"`
	User             *UserResponse  `json:"user,omitempty"`
	Event            *EventResponse `json:"event,omitempty"`
}

// VerifyCertificateResponse is the public verification view of a certificate
type VerifyCertificateResponse struct {
	HolderName      string    `json:"holderName"`
	EventTitle      string    `json:"eventTitle"`
	EventDate       time.Time `json:"eventDate"`
	CertificateType string    `json:"certificateType"`
	IssuedAt        time.Time `json:"issuedAt"`
}

// ToCertificateResponse maps a certificate model to its response shape
func ToCertificateResponse(c *models.Certificate) CertificateResponse {
	resp := CertificateResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		EventID:          c.EventID,
		CertificateType:  c.CertificateType,
		VerificationCode: c.VerificationCode,
		IssuedAt:         c.IssuedAt,
	}
	if c.User != nil {
		user := ToUserResponse(c.User)
		resp.User = &user
	}
	if c.Event != nil {
		event := ToEventResponse(c.Event)
		resp.Event = &event
	}
	return resp
}
