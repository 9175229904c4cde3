package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/dberrors"
)

// RegistrationRepository handles database operations for event registrations.
// The event_registrations table carries a UNIQUE (event_id, user_id)
// constraint; cancelled rows are kept and reused on re-registration.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a new registration row.
// Returns apperrors.ErrAlreadyRegistered when a row already exists.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_registrations (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at`,
		reg.EventID, reg.UserID, reg.Status).
		Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyRegistered
		}
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

// GetByEventAndUser retrieves the registration row for an (event, user) pair
func (r *RegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Registration, error) {
	reg := &models.Registration{}
	err := r.db.QueryRow(ctx, `
		SELECT id, event_id, user_id, status, registered_at, checked_in_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.CheckedInAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error getting registration: %w", err)
	}
	return reg, nil
}

// Reactivate flips a cancelled row back to registered, reusing the row.
// The status guard keeps a concurrent reactivation from double-counting.
func (r *RegistrationRepository) Reactivate(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE event_registrations
		SET status = 'registered', registered_at = NOW(), checked_in_at = NULL
		WHERE id = $1 AND status = 'cancelled'`,
		id)
	if err != nil {
		return fmt.Errorf("error reactivating registration: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyRegistered
	}
	return nil
}

// Cancel flips a registration to cancelled. Cancelling an already
// cancelled row is a no-op.
func (r *RegistrationRepository) Cancel(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE event_registrations
		SET status = 'cancelled'
		WHERE event_id = $1 AND user_id = $2 AND status != 'cancelled'`,
		eventID, userID)
	if err != nil {
		return fmt.Errorf("error cancelling registration: %w", err)
	}
	return nil
}

// CheckIn flips a registration to attended and stamps the check-in time
func (r *RegistrationRepository) CheckIn(ctx context.Context, eventID, userID int64, at time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE event_registrations
		SET status = 'attended', checked_in_at = $1
		WHERE event_id = $2 AND user_id = $3 AND status = 'registered'`,
		at, eventID, userID)
	if err != nil {
		return fmt.Errorf("error checking in: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	return nil
}

// CountActive counts non-cancelled registrations for an event
func (r *RegistrationRepository) CountActive(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_registrations
		WHERE event_id = $1 AND status != 'cancelled'`,
		eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// ListByEvent retrieves registrations for an event, optionally filtered by
// status, with the registrant's user profile attached.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64, status models.RegistrationStatus) ([]models.Registration, error) {
	query := `
		SELECT reg.id, reg.event_id, reg.user_id, reg.status, reg.registered_at, reg.checked_in_at,
		       u.id, u.email, u.name, u.department, u.year, u.college_id, u.profile_image, u.role
		FROM event_registrations reg
		JOIN users u ON u.id = reg.user_id
		WHERE reg.event_id = $1`
	args := []interface{}{eventID}
	if status != "" {
		query += " AND reg.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY reg.registered_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	registrations := []models.Registration{}
	for rows.Next() {
		var reg models.Registration
		var u models.User
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.CheckedInAt,
			&u.ID, &u.Email, &u.Name, &u.Department, &u.Year, &u.CollegeID, &u.ProfileImage, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		reg.User = &u
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

// ListByUser retrieves a user's registrations with event details attached
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Registration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reg.id, reg.event_id, reg.user_id, reg.status, reg.registered_at, reg.checked_in_at,
		       e.id, e.club_id, e.title, e.description, e.event_date, e.start_time, e.end_time,
		       e.venue, e.event_type, e.max_participants, e.price, e.registration_deadline,
		       e.status, e.created_by, e.created_at
		FROM event_registrations reg
		JOIN events e ON e.id = reg.event_id
		WHERE reg.user_id = $1
		ORDER BY reg.registered_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user registrations: %w", err)
	}
	defer rows.Close()

	registrations := []models.Registration{}
	for rows.Next() {
		var reg models.Registration
		var e models.Event
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.CheckedInAt,
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.EventDate, &e.StartTime, &e.EndTime,
			&e.Venue, &e.EventType, &e.MaxParticipants, &e.Price, &e.RegistrationDeadline,
			&e.Status, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		reg.Event = &e
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

// ListUncertifiedAttendees returns attendee user IDs without a certificate
// for the given event.
func (r *RegistrationRepository) ListUncertifiedAttendees(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reg.user_id
		FROM event_registrations reg
		WHERE reg.event_id = $1 AND reg.status = 'attended'
		AND NOT EXISTS (
			SELECT 1 FROM certificates c
			WHERE c.event_id = reg.event_id AND c.user_id = reg.user_id
		)`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing uncertified attendees: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning attendee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
