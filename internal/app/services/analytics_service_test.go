package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arda/campushub/internal/app/repositories"
)

type fakeAnalyticsStore struct {
	activity    map[int64]repositories.UserActivityCounts
	leaderboard []repositories.LeaderboardRow
}

func (f *fakeAnalyticsStore) Overview(context.Context) (*repositories.OverviewCounts, error) {
	return &repositories.OverviewCounts{}, nil
}

func (f *fakeAnalyticsStore) UserActivity(_ context.Context, userID int64) (*repositories.UserActivityCounts, error) {
	counts := f.activity[userID]
	return &counts, nil
}

func (f *fakeAnalyticsStore) Leaderboard(_ context.Context, limit int) ([]repositories.LeaderboardRow, error) {
	if len(f.leaderboard) > limit {
		return f.leaderboard[:limit], nil
	}
	return f.leaderboard, nil
}

func (f *fakeAnalyticsStore) StatsForClub(context.Context, int64) (*repositories.ClubStats, error) {
	return &repositories.ClubStats{}, nil
}

func TestActivityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		clubs, attended, certs, feedback int
		want                             int
	}{
		{"no activity", 0, 0, 0, 0, 0},
		{"single club", 1, 0, 0, 0, 10},
		{"mixed", 2, 3, 1, 2, 69},
		{"exactly at cap", 2, 5, 2, 2, 100},
		{"capped", 10, 10, 10, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActivityScore(tt.clubs, tt.attended, tt.certs, tt.feedback))
		})
	}
}

func TestLeaderboardScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, LeaderboardScore(0, 0, 0))
	assert.Equal(t, 10+15+5, LeaderboardScore(1, 1, 1))
	// Unlike the activity score there is no cap
	assert.Equal(t, 300, LeaderboardScore(15, 10, 0))
}

func TestAttendanceRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float64(0), AttendanceRate(0, 0))
	assert.Equal(t, float64(60), AttendanceRate(3, 5))
	assert.Equal(t, float64(100), AttendanceRate(4, 4))
}

func TestAnalyticsService_UserInsights(t *testing.T) {
	t.Parallel()

	store := &fakeAnalyticsStore{activity: map[int64]repositories.UserActivityCounts{
		7: {ClubsJoined: 2, EventsRegistered: 5, EventsAttended: 3, Certificates: 1, FeedbackGiven: 2, AverageRatingGiven: 4.5},
	}}
	svc := NewAnalyticsService(store, zerolog.Nop())

	insights, err := svc.UserInsights(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, insights.EventsAttended)
	assert.Equal(t, float64(60), insights.AttendanceRate)
	assert.Equal(t, 4.5, insights.AverageRatingGiven)
	assert.Equal(t, ActivityScore(2, 3, 1, 2), insights.ActivityScore)

	// A user with no history gets zeroes, not an error
	empty, err := svc.UserInsights(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ActivityScore)
	assert.Equal(t, float64(0), empty.AttendanceRate)
}

func TestAnalyticsService_Leaderboard_ScoresAndOrder(t *testing.T) {
	t.Parallel()

	// The store returns rows already ordered by the leaderboard weights
	store := &fakeAnalyticsStore{leaderboard: []repositories.LeaderboardRow{
		{UserID: 2, Name: "High", EventsAttended: 2, Certificates: 3},
		{UserID: 3, Name: "Mid", EventsAttended: 3},
		{UserID: 1, Name: "Low", EventsAttended: 1},
	}}
	svc := NewAnalyticsService(store, zerolog.Nop())

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{entries[0].UserID, entries[1].UserID, entries[2].UserID})
	for _, e := range entries {
		assert.Equal(t, LeaderboardScore(e.EventsAttended, e.Certificates, e.ClubsJoined), e.Score)
	}
}
