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

// MembershipRepository handles database operations for club memberships.
// The club_memberships table carries a UNIQUE (club_id, user_id) constraint,
// which is what makes concurrent join requests safe.
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a new membership row.
// Returns apperrors.ErrAlreadyMember when a row for (club, user) already exists.
func (r *MembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO club_memberships (club_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at`,
		m.ClubID, m.UserID, m.Role, m.Status).
		Scan(&m.ID, &m.JoinedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMember
		}
		return fmt.Errorf("error creating membership: %w", err)
	}
	return nil
}

// GetByID retrieves a membership by ID
func (r *MembershipRepository) GetByID(ctx context.Context, id int64) (*models.Membership, error) {
	m := &models.Membership{}
	err := r.db.QueryRow(ctx, `
		SELECT id, club_id, user_id, role, status, joined_at
		FROM club_memberships
		WHERE id = $1`,
		id).Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("error getting membership: %w", err)
	}
	return m, nil
}

// GetByClubAndUser retrieves the membership row for a (club, user) pair
func (r *MembershipRepository) GetByClubAndUser(ctx context.Context, clubID, userID int64) (*models.Membership, error) {
	m := &models.Membership{}
	err := r.db.QueryRow(ctx, `
		SELECT id, club_id, user_id, role, status, joined_at
		FROM club_memberships
		WHERE club_id = $1 AND user_id = $2`,
		clubID, userID).Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("error getting membership: %w", err)
	}
	return m, nil
}

// SetStatus transitions a membership's approval status
func (r *MembershipRepository) SetStatus(ctx context.Context, id int64, status models.MembershipStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE club_memberships SET status = $1 WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating membership status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

// Delete removes the membership row for (club, user).
// Deleting an absent row is not an error.
func (r *MembershipRepository) Delete(ctx context.Context, clubID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM club_memberships WHERE club_id = $1 AND user_id = $2`,
		clubID, userID)
	if err != nil {
		return fmt.Errorf("error deleting membership: %w", err)
	}
	return nil
}

// ListByClub retrieves memberships of a club, optionally filtered by status,
// with the member's user profile attached.
func (r *MembershipRepository) ListByClub(ctx context.Context, clubID int64, status models.MembershipStatus) ([]models.Membership, error) {
	query := `
		SELECT m.id, m.club_id, m.user_id, m.role, m.status, m.joined_at,
		       u.id, u.email, u.name, u.department, u.year, u.college_id, u.profile_image, u.role
		FROM club_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.club_id = $1`
	args := []interface{}{clubID}
	if status != "" {
		query += " AND m.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY m.joined_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing memberships: %w", err)
	}
	defer rows.Close()

	memberships := []models.Membership{}
	for rows.Next() {
		var m models.Membership
		var u models.User
		err := rows.Scan(
			&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt,
			&u.ID, &u.Email, &u.Name, &u.Department, &u.Year, &u.CollegeID, &u.ProfileImage, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning membership: %w", err)
		}
		m.User = &u
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// ListByUser retrieves a user's memberships with club details attached
func (r *MembershipRepository) ListByUser(ctx context.Context, userID int64) ([]models.Membership, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.club_id, m.user_id, m.role, m.status, m.joined_at,
		       c.id, c.name, c.description, c.objectives, c.category, c.logo,
		       c.status, c.member_count, c.rating, c.created_by, c.created_at, c.updated_at
		FROM club_memberships m
		JOIN clubs c ON c.id = m.club_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user memberships: %w", err)
	}
	defer rows.Close()

	memberships := []models.Membership{}
	for rows.Next() {
		var m models.Membership
		var c models.Club
		err := rows.Scan(
			&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt,
			&c.ID, &c.Name, &c.Description, &c.Objectives, &c.Category, &c.Logo,
			&c.Status, &c.MemberCount, &c.Rating, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning membership: %w", err)
		}
		m.Club = &c
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// ListManagerIDs returns the user IDs holding lead or co_lead roles in a club
func (r *MembershipRepository) ListManagerIDs(ctx context.Context, clubID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM club_memberships
		WHERE club_id = $1 AND role IN ('lead', 'co_lead') AND status = 'approved'`,
		clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing club managers: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning manager id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListApprovedMemberIDs returns the user IDs of all approved members of a club
func (r *MembershipRepository) ListApprovedMemberIDs(ctx context.Context, clubID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM club_memberships
		WHERE club_id = $1 AND status = 'approved'`,
		clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing approved members: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
