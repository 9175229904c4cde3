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

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

// clubColumns are the columns selected for a full club row
var clubColumns = []string{
	"id", "name", "description", "objectives", "category", "logo",
	"status", "member_count", "rating", "created_by", "created_at", "updated_at",
}

func scanClub(row pgx.Row) (*models.Club, error) {
	club := &models.Club{}
	err := row.Scan(
		&club.ID, &club.Name, &club.Description, &club.Objectives, &club.Category,
		&club.Logo, &club.Status, &club.MemberCount, &club.Rating,
		&club.CreatedBy, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return club, nil
}

// CreateWithLead inserts a club and its creator's lead membership in one
// transaction so the creator never observes a club without their row.
func (r *ClubRepository) CreateWithLead(ctx context.Context, club *models.Club) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO clubs (name, description, objectives, category, logo, status, member_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
		RETURNING id, created_at, updated_at`,
		club.Name, club.Description, club.Objectives, club.Category, club.Logo, club.Status, club.CreatedBy).
		Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating club: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO club_memberships (club_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)`,
		club.ID, club.CreatedBy, models.MemberRoleLead, models.MembershipApproved)
	if err != nil {
		return fmt.Errorf("error creating lead membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error getting club: %w", err)
	}
	return club, nil
}

// GetAll retrieves clubs matching the given filters
func (r *ClubRepository) GetAll(ctx context.Context, category, status, search string) ([]models.Club, error) {
	query := squirrel.Select(clubColumns...).
		From("clubs").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning club: %w", err)
		}
		clubs = append(clubs, *club)
	}
	return clubs, rows.Err()
}

// Update updates the mutable fields of a club. Nil fields are left unchanged.
func (r *ClubRepository) Update(ctx context.Context, clubID int64, name, description, category, logo *string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE clubs
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    category = COALESCE($3, category),
		    logo = COALESCE($4, logo),
		    updated_at = NOW()
		WHERE id = $5`,
		name, description, category, logo, clubID)
	if err != nil {
		return fmt.Errorf("error updating club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// SetStatus sets a club's lifecycle status
func (r *ClubRepository) SetStatus(ctx context.Context, clubID int64, status models.ClubStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE clubs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, clubID)
	if err != nil {
		return fmt.Errorf("error updating club status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// RefreshMemberCount recomputes the cached member_count from approved rows
func (r *ClubRepository) RefreshMemberCount(ctx context.Context, clubID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clubs
		SET member_count = (
			SELECT COUNT(*) FROM club_memberships
			WHERE club_id = $1 AND status = 'approved'
		)
		WHERE id = $1`,
		clubID)
	if err != nil {
		return fmt.Errorf("error refreshing member count: %w", err)
	}
	return nil
}

// RefreshRating recomputes the cached rating from event feedback
func (r *ClubRepository) RefreshRating(ctx context.Context, clubID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clubs
		SET rating = COALESCE((
			SELECT AVG(f.rating)
			FROM event_feedback f
			JOIN events e ON e.id = f.event_id
			WHERE e.club_id = $1
		), 0)
		WHERE id = $1`,
		clubID)
	if err != nil {
		return fmt.Errorf("error refreshing club rating: %w", err)
	}
	return nil
}
