package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// codeRetryLimit bounds retries on a verification code collision
const codeRetryLimit = 3

// CertificateService defines the interface for certificate operations
type CertificateService interface {
	Issue(ctx context.Context, eventID, userID int64, certType string, actor Principal) (*dto.CertificateResponse, error)
	BulkIssue(ctx context.Context, eventID int64, certType string, actor Principal) (*dto.BulkIssueResponse, error)
	Verify(ctx context.Context, code string) (*dto.VerifyCertificateResponse, error)
	ListMine(ctx context.Context, userID int64) ([]dto.CertificateResponse, error)
}

// certificateServiceImpl implements CertificateService
type certificateServiceImpl struct {
	certificates  CertificateStore
	registrations RegistrationStore
	events        EventStore
	authz         *auth.AuthorizationService
	notifier      Notifier
	logger        zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certificates CertificateStore,
	registrations RegistrationStore,
	events EventStore,
	authz *auth.AuthorizationService,
	notifier Notifier,
	logger zerolog.Logger,
) CertificateService {
	return &certificateServiceImpl{
		certificates:  certificates,
		registrations: registrations,
		events:        events,
		authz:         authz,
		notifier:      notifier,
		logger:        logger,
	}
}

// generateVerificationCode derives the public code from random bytes.
// The 64-bit space makes collisions negligible; the unique index on the
// column catches the rest.
func generateVerificationCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return "CH-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Issue creates a certificate for an attendee of the event
func (s *certificateServiceImpl) Issue(ctx context.Context, eventID, userID int64, certType string, actor Principal) (*dto.CertificateResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}

	cert, err := s.issueOne(ctx, eventID, userID, certType)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, []int64{userID}, models.NotificationCertificateReady,
		"Certificate issued", fmt.Sprintf("Your certificate for %s is ready", event.Title))

	resp := dto.ToCertificateResponse(cert)
	return &resp, nil
}

// issueOne performs the attendance check and the insert. The unique
// constraint on (user_id, event_id) makes a concurrent duplicate surface
// as ErrCertificateExists rather than a second row.
func (s *certificateServiceImpl) issueOne(ctx context.Context, eventID, userID int64, certType string) (*models.Certificate, error) {
	registration, err := s.registrations.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRegistrationNotFound) {
			return nil, apperrors.ErrNotAttended
		}
		return nil, err
	}
	if registration.Status != models.RegistrationAttended {
		return nil, apperrors.ErrNotAttended
	}

	if certType == "" {
		certType = models.DefaultCertificateType
	}

	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		code, err := generateVerificationCode()
		if err != nil {
			return nil, err
		}
		cert := &models.Certificate{
			UserID:           userID,
			EventID:          eventID,
			CertificateType:  certType,
			VerificationCode: code,
		}
		err = s.certificates.Create(ctx, cert)
		if err == nil {
			return cert, nil
		}
		if errors.Is(err, apperrors.ErrCertificateExists) {
			return nil, err
		}
		if errors.Is(err, apperrors.ErrConflict) {
			// Code collision, retry with a fresh one
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to generate a unique verification code after %d attempts", codeRetryLimit)
}

// BulkIssue certifies every attendee of the event not already certified.
// Already certified attendees are skipped, not failed.
func (s *certificateServiceImpl) BulkIssue(ctx context.Context, eventID int64, certType string, actor Principal) (*dto.BulkIssueResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateClubManager(ctx, event.ClubID, actor.ID, actor.Role); err != nil {
		return nil, err
	}

	attendees, err := s.registrations.ListByEvent(ctx, eventID, models.RegistrationAttended)
	if err != nil {
		return nil, err
	}
	uncertified, err := s.registrations.ListUncertifiedAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	result := &dto.BulkIssueResponse{Skipped: len(attendees) - len(uncertified)}
	generatedFor := make([]int64, 0, len(uncertified))
	for _, userID := range uncertified {
		if _, err := s.issueOne(ctx, eventID, userID, certType); err != nil {
			if errors.Is(err, apperrors.ErrCertificateExists) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Generated++
		generatedFor = append(generatedFor, userID)
	}

	s.notifier.Notify(ctx, generatedFor, models.NotificationCertificateReady,
		"Certificate issued", fmt.Sprintf("Your certificate for %s is ready", event.Title))

	return result, nil
}

// Verify is the public lookup of a certificate by its code. It returns
// nothing beyond the certificate's own fields.
func (s *certificateServiceImpl) Verify(ctx context.Context, code string) (*dto.VerifyCertificateResponse, error) {
	cert, err := s.certificates.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyCertificateResponse{
		HolderName:      cert.User.Name,
		EventTitle:      cert.Event.Title,
		EventDate:       cert.Event.EventDate,
		CertificateType: cert.CertificateType,
		IssuedAt:        cert.IssuedAt,
	}, nil
}

// ListMine lists the actor's certificates
func (s *certificateServiceImpl) ListMine(ctx context.Context, userID int64) ([]dto.CertificateResponse, error) {
	certificates, err := s.certificates.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CertificateResponse, 0, len(certificates))
	for i := range certificates {
		responses = append(responses, dto.ToCertificateResponse(&certificates[i]))
	}
	return responses, nil
}
