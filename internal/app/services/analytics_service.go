package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/models/dto"
)

// leaderboardSize caps how many users the leaderboard shows
const leaderboardSize = 20

// AnalyticsService defines the read-only reporting operations. Missing
// related records contribute zero defaults rather than failing a report.
type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
	UserInsights(ctx context.Context, userID int64) (*dto.UserInsightsResponse, error)
	Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error)
	ClubStats(ctx context.Context, clubID int64) (*dto.ClubStatsResponse, error)
}

// analyticsServiceImpl implements AnalyticsService
type analyticsServiceImpl struct {
	analytics AnalyticsStore
	logger    zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analytics AnalyticsStore, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{analytics: analytics, logger: logger}
}

// Overview returns the platform-wide rollup
func (s *analyticsServiceImpl) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	counts, err := s.analytics.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OverviewResponse{
		TotalUsers:             counts.TotalUsers,
		TotalClubs:             counts.TotalClubs,
		ActiveClubs:            counts.ActiveClubs,
		TotalEvents:            counts.TotalEvents,
		UpcomingEvents:         counts.UpcomingEvents,
		TotalRegistrations:     counts.TotalRegistrations,
		TotalCertificates:      counts.TotalCertificates,
		AverageRating:          counts.AverageRating,
		RegistrationsLast7Days: counts.RegistrationsLast7Days,
		NewMembersThisMonth:    counts.NewMembersThisMonth,
		EventsByType:           counts.EventsByType,
		ClubsByCategory:        counts.ClubsByCategory,
	}, nil
}

// AttendanceRate is the share of non-cancelled registrations that ended
// in attendance, as a percentage. Zero registrations yield zero.
func AttendanceRate(attended, registered int) float64 {
	if registered == 0 {
		return 0
	}
	return float64(attended) / float64(registered) * 100
}

// ActivityScore folds a user's activity into a 0-100 score
func ActivityScore(clubs, attended, certificates, feedback int) int {
	score := clubs*10 + attended*8 + certificates*15 + feedback*5
	if score > 100 {
		score = 100
	}
	return score
}

// UserInsights summarizes one user's activity
func (s *analyticsServiceImpl) UserInsights(ctx context.Context, userID int64) (*dto.UserInsightsResponse, error) {
	counts, err := s.analytics.UserActivity(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserInsightsResponse{
		ClubsJoined:        counts.ClubsJoined,
		EventsRegistered:   counts.EventsRegistered,
		EventsAttended:     counts.EventsAttended,
		AttendanceRate:     AttendanceRate(counts.EventsAttended, counts.EventsRegistered),
		Certificates:       counts.Certificates,
		FeedbackGiven:      counts.FeedbackGiven,
		AverageRatingGiven: counts.AverageRatingGiven,
		ActivityScore:      ActivityScore(counts.ClubsJoined, counts.EventsAttended, counts.Certificates, counts.FeedbackGiven),
	}, nil
}

// LeaderboardScore weighs a user's standing for the campus leaderboard
func LeaderboardScore(attended, certificates, clubs int) int {
	return attended*10 + certificates*15 + clubs*5
}

// Leaderboard returns the top users ranked by leaderboard score. The
// store already orders rows by the same weights, so the order is kept.
func (s *analyticsServiceImpl) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	rows, err := s.analytics.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:         row.UserID,
			Name:           row.Name,
			EventsAttended: row.EventsAttended,
			Certificates:   row.Certificates,
			ClubsJoined:    row.ClubsJoined,
			Score:          LeaderboardScore(row.EventsAttended, row.Certificates, row.ClubsJoined),
		})
	}
	return entries, nil
}

// ClubStats summarizes one club's activity
func (s *analyticsServiceImpl) ClubStats(ctx context.Context, clubID int64) (*dto.ClubStatsResponse, error) {
	stats, err := s.analytics.StatsForClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return &dto.ClubStatsResponse{
		MemberCount:       stats.MemberCount,
		PendingRequests:   stats.PendingRequests,
		EventCount:        stats.EventCount,
		UpcomingEvents:    stats.UpcomingEvents,
		TotalAttendance:   stats.TotalAttendance,
		AverageRating:     stats.AverageRating,
		CertificatesGiven: stats.CertificatesGiven,
	}, nil
}
