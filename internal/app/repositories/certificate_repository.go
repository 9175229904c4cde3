package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/dberrors"
)

// CertificateRepository handles database operations for certificates.
// The certificates table carries UNIQUE (user_id, event_id) and a unique
// index on verification_code.
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a new certificate.
// Returns apperrors.ErrCertificateExists on a duplicate (user, event) pair.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO certificates (user_id, event_id, certificate_type, verification_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, issued_at`,
		cert.UserID, cert.EventID, cert.CertificateType, cert.VerificationCode).
		Scan(&cert.ID, &cert.IssuedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "certificates_user_id_event_id_key") {
			return apperrors.ErrCertificateExists
		}
		if dberrors.IsUniqueViolation(err) {
			// Verification code collision, callers may retry with a new code
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error creating certificate: %w", err)
	}
	return nil
}

// GetByCode retrieves a certificate by its verification code, with the
// holder and event attached for the public verification view.
func (r *CertificateRepository) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	cert := &models.Certificate{User: &models.User{}, Event: &models.Event{}}
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.user_id, c.event_id, c.certificate_type, c.verification_code, c.issued_at,
		       u.name, e.title, e.event_date
		FROM certificates c
		JOIN users u ON u.id = c.user_id
		JOIN events e ON e.id = c.event_id
		WHERE c.verification_code = $1`,
		code).Scan(
		&cert.ID, &cert.UserID, &cert.EventID, &cert.CertificateType, &cert.VerificationCode, &cert.IssuedAt,
		&cert.User.Name, &cert.Event.Title, &cert.Event.EventDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error getting certificate: %w", err)
	}
	return cert, nil
}

// ExistsForUserAndEvent checks whether a certificate exists for (user, event)
func (r *CertificateRepository) ExistsForUserAndEvent(ctx context.Context, userID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM certificates WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking certificate: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves a user's certificates with event details attached
func (r *CertificateRepository) ListByUser(ctx context.Context, userID int64) ([]models.Certificate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.user_id, c.event_id, c.certificate_type, c.verification_code, c.issued_at,
		       e.id, e.club_id, e.title, e.description, e.event_date, e.start_time, e.end_time,
		       e.venue, e.event_type, e.max_participants, e.price, e.registration_deadline,
		       e.status, e.created_by, e.created_at
		FROM certificates c
		JOIN events e ON e.id = c.event_id
		WHERE c.user_id = $1
		ORDER BY c.issued_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	certificates := []models.Certificate{}
	for rows.Next() {
		var cert models.Certificate
		var e models.Event
		err := rows.Scan(
			&cert.ID, &cert.UserID, &cert.EventID, &cert.CertificateType, &cert.VerificationCode, &cert.IssuedAt,
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.EventDate, &e.StartTime, &e.EndTime,
			&e.Venue, &e.EventType, &e.MaxParticipants, &e.Price, &e.RegistrationDeadline,
			&e.Status, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate: %w", err)
		}
		cert.Event = &e
		certificates = append(certificates, cert)
	}
	return certificates, rows.Err()
}

// CountByEvent counts certificates issued for an event
func (r *CertificateRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM certificates WHERE event_id = $1`,
		eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting certificates: %w", err)
	}
	return count, nil
}
