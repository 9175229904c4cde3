package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// registeredCountExpr counts non-cancelled registrations for the event row
const registeredCountExpr = `(SELECT COUNT(*) FROM event_registrations r
	WHERE r.event_id = e.id AND r.status != 'cancelled')`

// Create inserts a new event and sets its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (club_id, title, description, event_date, start_time, end_time,
			venue, event_type, max_participants, price, registration_deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`,
		event.ClubID, event.Title, event.Description, event.EventDate, event.StartTime, event.EndTime,
		event.Venue, event.EventType, event.MaxParticipants, event.Price, event.RegistrationDeadline,
		event.Status, event.CreatedBy).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event with its live registration count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	err := r.db.QueryRow(ctx, `
		SELECT e.id, e.club_id, e.title, e.description, e.event_date, e.start_time, e.end_time,
		       e.venue, e.event_type, e.max_participants, e.price, e.registration_deadline,
		       e.status, e.created_by, e.created_at, `+registeredCountExpr+`
		FROM events e
		WHERE e.id = $1`,
		id).Scan(
		&event.ID, &event.ClubID, &event.Title, &event.Description, &event.EventDate,
		&event.StartTime, &event.EndTime, &event.Venue, &event.EventType, &event.MaxParticipants,
		&event.Price, &event.RegistrationDeadline, &event.Status, &event.CreatedBy,
		&event.CreatedAt, &event.RegisteredCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return event, nil
}

// GetAll retrieves events matching the given filters
func (r *EventRepository) GetAll(ctx context.Context, clubID int64, eventType, status, search string, upcomingOnly bool) ([]models.Event, error) {
	query := squirrel.Select(
		"e.id", "e.club_id", "e.title", "e.description", "e.event_date", "e.start_time", "e.end_time",
		"e.venue", "e.event_type", "e.max_participants", "e.price", "e.registration_deadline",
		"e.status", "e.created_by", "e.created_at", registeredCountExpr,
	).
		From("events e").
		OrderBy("e.event_date").
		PlaceholderFormat(squirrel.Dollar)

	if clubID > 0 {
		query = query.Where("e.club_id = ?", clubID)
	}
	if eventType != "" {
		query = query.Where("e.event_type = ?", eventType)
	}
	if status != "" {
		query = query.Where("e.status = ?", status)
	}
	if search != "" {
		query = query.Where("e.title ILIKE ?", "%"+search+"%")
	}
	if upcomingOnly {
		query = query.Where("e.status = 'upcoming' AND e.event_date >= NOW()")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.ClubID, &event.Title, &event.Description, &event.EventDate,
			&event.StartTime, &event.EndTime, &event.Venue, &event.EventType, &event.MaxParticipants,
			&event.Price, &event.RegistrationDeadline, &event.Status, &event.CreatedBy,
			&event.CreatedAt, &event.RegisteredCount)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Update updates the mutable fields of an event. Nil fields are left unchanged.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, start_time = $4, end_time = $5,
		    venue = $6, max_participants = $7, price = $8, registration_deadline = $9
		WHERE id = $10`,
		event.Title, event.Description, event.EventDate, event.StartTime, event.EndTime,
		event.Venue, event.MaxParticipants, event.Price, event.RegistrationDeadline, event.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// SetStatus moves an event to a terminal status. Transitions out of a
// terminal status are rejected at the query level.
func (r *EventRepository) SetStatus(ctx context.Context, eventID int64, status models.EventStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE events SET status = $1 WHERE id = $2 AND status = 'upcoming'`,
		status, eventID)
	if err != nil {
		return fmt.Errorf("error updating event status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewBadRequestError("event is not in upcoming state")
	}
	return nil
}
