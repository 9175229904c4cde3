package services

import (
	"context"
	"time"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/repositories"
)

// The services depend on narrow store interfaces rather than concrete
// repositories so each one can be exercised against in-memory fakes.
// The pgx-backed repositories in the repositories package satisfy them.

// UserStore is the user persistence surface used by the services
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, name, department *string, year *int, profileImage *string) error
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

// ClubStore is the club persistence surface used by the services
type ClubStore interface {
	CreateWithLead(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetAll(ctx context.Context, category, status, search string) ([]models.Club, error)
	Update(ctx context.Context, clubID int64, name, description, category, logo *string) error
	SetStatus(ctx context.Context, clubID int64, status models.ClubStatus) error
	RefreshMemberCount(ctx context.Context, clubID int64) error
	RefreshRating(ctx context.Context, clubID int64) error
}

// MembershipStore is the membership persistence surface used by the services
type MembershipStore interface {
	Create(ctx context.Context, m *models.Membership) error
	GetByID(ctx context.Context, id int64) (*models.Membership, error)
	GetByClubAndUser(ctx context.Context, clubID, userID int64) (*models.Membership, error)
	SetStatus(ctx context.Context, id int64, status models.MembershipStatus) error
	Delete(ctx context.Context, clubID, userID int64) error
	ListByClub(ctx context.Context, clubID int64, status models.MembershipStatus) ([]models.Membership, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Membership, error)
	ListManagerIDs(ctx context.Context, clubID int64) ([]int64, error)
	ListApprovedMemberIDs(ctx context.Context, clubID int64) ([]int64, error)
}

// EventStore is the event persistence surface used by the services
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context, clubID int64, eventType, status, search string, upcomingOnly bool) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	SetStatus(ctx context.Context, eventID int64, status models.EventStatus) error
}

// RegistrationStore is the registration persistence surface used by the services
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Registration, error)
	Reactivate(ctx context.Context, id int64) error
	Cancel(ctx context.Context, eventID, userID int64) error
	CheckIn(ctx context.Context, eventID, userID int64, at time.Time) error
	CountActive(ctx context.Context, eventID int64) (int, error)
	ListByEvent(ctx context.Context, eventID int64, status models.RegistrationStatus) ([]models.Registration, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Registration, error)
	ListUncertifiedAttendees(ctx context.Context, eventID int64) ([]int64, error)
}

// CertificateStore is the certificate persistence surface used by the services
type CertificateStore interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByCode(ctx context.Context, code string) (*models.Certificate, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Certificate, error)
}

// FeedbackStore is the feedback persistence surface used by the services
type FeedbackStore interface {
	Upsert(ctx context.Context, f *models.Feedback) error
	ListByEvent(ctx context.Context, eventID int64) ([]models.Feedback, error)
	AverageByEvent(ctx context.Context, eventID int64) (float64, error)
}

// ChatStore is the chat persistence surface used by the services
type ChatStore interface {
	Insert(ctx context.Context, m *models.ChatMessage) error
	ListByClub(ctx context.Context, clubID int64, before *time.Time, limit int) ([]models.ChatMessage, error)
	ListChannelsForUser(ctx context.Context, userID int64) ([]repositories.ChannelSummary, error)
}

// AnalyticsStore is the rollup query surface used by the analytics service
type AnalyticsStore interface {
	Overview(ctx context.Context) (*repositories.OverviewCounts, error)
	UserActivity(ctx context.Context, userID int64) (*repositories.UserActivityCounts, error)
	Leaderboard(ctx context.Context, limit int) ([]repositories.LeaderboardRow, error)
	StatsForClub(ctx context.Context, clubID int64) (*repositories.ClubStats, error)
}
