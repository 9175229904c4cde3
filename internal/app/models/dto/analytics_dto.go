package dto

// OverviewResponse is the platform-wide analytics rollup
type OverviewResponse struct {
	TotalUsers             int            `json:"totalUsers"`
	TotalClubs             int            `json:"totalClubs"`
	ActiveClubs            int            `json:"activeClubs"`
	TotalEvents            int            `json:"totalEvents"`
	UpcomingEvents         int            `json:"upcomingEvents"`
	TotalRegistrations     int            `json:"totalRegistrations"`
	TotalCertificates      int            `json:"totalCertificates"`
	AverageRating          float64        `json:"averageRating"`
	RegistrationsLast7Days int            `json:"registrationsLast7Days"`
	NewMembersThisMonth    int            `json:"newMembersThisMonth"`
	EventsByType           map[string]int `json:"eventsByType"`
	ClubsByCategory        map[string]int `json:"clubsByCategory"`
}

// UserInsightsResponse summarizes one user's activity
type UserInsightsResponse struct {
	ClubsJoined        int     `json:"clubsJoined"`
	EventsRegistered   int     `json:"eventsRegistered"`
	EventsAttended     int     `json:"eventsAttended"`
	AttendanceRate     float64 `json:"attendanceRate"`
	Certificates       int     `json:"certificates"`
	FeedbackGiven      int     `json:"feedbackGiven"`
	AverageRatingGiven float64 `json:"averageRatingGiven"`
	ActivityScore      int     `json:"activityScore"`
}

// LeaderboardEntry is one row of the campus leaderboard
type LeaderboardEntry struct {
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	EventsAttended int    `json:"eventsAttended"`
	Certificates   int    `json:"certificates"`
	ClubsJoined    int    `json:"clubsJoined"`
	Score          int    `json:"score"`
}

// ClubStatsResponse summarizes one club's activity
type ClubStatsResponse struct {
	MemberCount       int     `json:"memberCount"`
	PendingRequests   int     `json:"pendingRequests"`
	EventCount        int     `json:"eventCount"`
	UpcomingEvents    int     `json:"upcomingEvents"`
	TotalAttendance   int     `json:"totalAttendance"`
	AverageRating     float64 `json:"averageRating"`
	CertificatesGiven int     `json:"certificatesGiven"`
}
