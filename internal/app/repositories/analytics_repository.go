package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository runs the read-only rollup queries behind the
// analytics endpoints. Nothing here mutates state.
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// OverviewCounts holds the platform-wide totals
type OverviewCounts struct {
	TotalUsers             int
	TotalClubs             int
	ActiveClubs            int
	TotalEvents            int
	UpcomingEvents         int
	TotalRegistrations     int
	TotalCertificates      int
	AverageRating          float64
	RegistrationsLast7Days int
	NewMembersThisMonth    int
	EventsByType           map[string]int
	ClubsByCategory        map[string]int
}

// Overview computes the platform-wide rollup
func (r *AnalyticsRepository) Overview(ctx context.Context) (*OverviewCounts, error) {
	counts := &OverviewCounts{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM clubs),
			(SELECT COUNT(*) FROM clubs WHERE status = 'active'),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE status = 'upcoming'),
			(SELECT COUNT(*) FROM event_registrations WHERE status != 'cancelled'),
			(SELECT COUNT(*) FROM certificates),
			(SELECT COALESCE(AVG(rating), 0) FROM event_feedback),
			(SELECT COUNT(*) FROM event_registrations
				WHERE status != 'cancelled' AND registered_at >= NOW() - INTERVAL '7 days'),
			(SELECT COUNT(*) FROM club_memberships
				WHERE status = 'approved' AND joined_at >= date_trunc('month', NOW()))`).
		Scan(
			&counts.TotalUsers, &counts.TotalClubs, &counts.ActiveClubs,
			&counts.TotalEvents, &counts.UpcomingEvents, &counts.TotalRegistrations,
			&counts.TotalCertificates, &counts.AverageRating,
			&counts.RegistrationsLast7Days, &counts.NewMembersThisMonth)
	if err != nil {
		return nil, fmt.Errorf("error computing overview: %w", err)
	}

	counts.EventsByType, err = r.groupedCount(ctx, `SELECT event_type, COUNT(*) FROM events GROUP BY event_type`)
	if err != nil {
		return nil, err
	}
	counts.ClubsByCategory, err = r.groupedCount(ctx, `SELECT category, COUNT(*) FROM clubs GROUP BY category`)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *AnalyticsRepository) groupedCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error computing breakdown: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning breakdown row: %w", err)
		}
		out[key] = count
	}
	return out, rows.Err()
}

// UserActivityCounts holds one user's activity totals
type UserActivityCounts struct {
	ClubsJoined        int
	EventsRegistered   int
	EventsAttended     int
	Certificates       int
	FeedbackGiven      int
	AverageRatingGiven float64
}

// UserActivity computes one user's activity totals
func (r *AnalyticsRepository) UserActivity(ctx context.Context, userID int64) (*UserActivityCounts, error) {
	counts := &UserActivityCounts{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM club_memberships WHERE user_id = $1 AND status = 'approved'),
			(SELECT COUNT(*) FROM event_registrations WHERE user_id = $1 AND status != 'cancelled'),
			(SELECT COUNT(*) FROM event_registrations WHERE user_id = $1 AND status = 'attended'),
			(SELECT COUNT(*) FROM certificates WHERE user_id = $1),
			(SELECT COUNT(*) FROM event_feedback WHERE user_id = $1),
			(SELECT COALESCE(AVG(rating), 0) FROM event_feedback WHERE user_id = $1)`,
		userID).
		Scan(
			&counts.ClubsJoined, &counts.EventsRegistered, &counts.EventsAttended,
			&counts.Certificates, &counts.FeedbackGiven, &counts.AverageRatingGiven)
	if err != nil {
		return nil, fmt.Errorf("error computing user activity: %w", err)
	}
	return counts, nil
}

// LeaderboardRow is one user's aggregate standing
type LeaderboardRow struct {
	UserID         int64
	Name           string
	EventsAttended int
	Certificates   int
	ClubsJoined    int
}

// Leaderboard returns per-user activity aggregates ordered by the
// leaderboard weights. The service layer computes the display score with
// the same weights but does not reorder.
func (r *AnalyticsRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name,
			(SELECT COUNT(*) FROM event_registrations WHERE user_id = u.id AND status = 'attended'),
			(SELECT COUNT(*) FROM certificates WHERE user_id = u.id),
			(SELECT COUNT(*) FROM club_memberships WHERE user_id = u.id AND status = 'approved')
		FROM users u
		ORDER BY
			(SELECT COUNT(*) FROM event_registrations WHERE user_id = u.id AND status = 'attended') * 10
			+ (SELECT COUNT(*) FROM certificates WHERE user_id = u.id) * 15
			+ (SELECT COUNT(*) FROM club_memberships WHERE user_id = u.id AND status = 'approved') * 5 DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("error computing leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardRow{}
	for rows.Next() {
		var row LeaderboardRow
		err := rows.Scan(&row.UserID, &row.Name, &row.EventsAttended, &row.Certificates, &row.ClubsJoined)
		if err != nil {
			return nil, fmt.Errorf("error scanning leaderboard row: %w", err)
		}
		entries = append(entries, row)
	}
	return entries, rows.Err()
}

// ClubStats holds one club's activity totals
type ClubStats struct {
	MemberCount       int
	PendingRequests   int
	EventCount        int
	UpcomingEvents    int
	TotalAttendance   int
	AverageRating     float64
	CertificatesGiven int
}

// StatsForClub computes one club's activity totals
func (r *AnalyticsRepository) StatsForClub(ctx context.Context, clubID int64) (*ClubStats, error) {
	stats := &ClubStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM club_memberships WHERE club_id = $1 AND status = 'approved'),
			(SELECT COUNT(*) FROM club_memberships WHERE club_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM events WHERE club_id = $1),
			(SELECT COUNT(*) FROM events WHERE club_id = $1 AND status = 'upcoming'),
			(SELECT COUNT(*) FROM event_registrations r JOIN events e ON e.id = r.event_id
				WHERE e.club_id = $1 AND r.status = 'attended'),
			(SELECT COALESCE(AVG(f.rating), 0) FROM event_feedback f JOIN events e ON e.id = f.event_id
				WHERE e.club_id = $1),
			(SELECT COUNT(*) FROM certificates c JOIN events e ON e.id = c.event_id
				WHERE e.club_id = $1)`,
		clubID).
		Scan(
			&stats.MemberCount, &stats.PendingRequests, &stats.EventCount, &stats.UpcomingEvents,
			&stats.TotalAttendance, &stats.AverageRating, &stats.CertificatesGiven)
	if err != nil {
		return nil, fmt.Errorf("error computing club stats: %w", err)
	}
	return stats, nil
}
