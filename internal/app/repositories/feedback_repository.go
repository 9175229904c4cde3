package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda/campushub/internal/app/models"
)

// FeedbackRepository handles database operations for event feedback.
// Resubmission by the same user updates the existing row.
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Upsert inserts feedback or replaces the rating and comment on conflict
func (r *FeedbackRepository) Upsert(ctx context.Context, f *models.Feedback) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_feedback (event_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, submitted_at = NOW()
		RETURNING id, submitted_at`,
		f.EventID, f.UserID, f.Rating, f.Comment).
		Scan(&f.ID, &f.SubmittedAt)
	if err != nil {
		return fmt.Errorf("error upserting feedback: %w", err)
	}
	return nil
}

// ListByEvent retrieves feedback for an event with author profiles attached
func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.event_id, f.user_id, f.rating, f.comment, f.submitted_at,
		       u.id, u.email, u.name, u.department, u.year, u.college_id, u.profile_image, u.role
		FROM event_feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.event_id = $1
		ORDER BY f.submitted_at DESC`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	feedback := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		var u models.User
		err := rows.Scan(
			&f.ID, &f.EventID, &f.UserID, &f.Rating, &f.Comment, &f.SubmittedAt,
			&u.ID, &u.Email, &u.Name, &u.Department, &u.Year, &u.CollegeID, &u.ProfileImage, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning feedback: %w", err)
		}
		f.User = &u
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

// AverageByEvent returns the average rating for an event, zero if none
func (r *FeedbackRepository) AverageByEvent(ctx context.Context, eventID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0) FROM event_feedback WHERE event_id = $1`,
		eventID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("error averaging feedback: %w", err)
	}
	return avg, nil
}
