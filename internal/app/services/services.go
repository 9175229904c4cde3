package services

import (
	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/auth"
	"github.com/arda/campushub/internal/app/repositories"
	pkgauth "github.com/arda/campushub/internal/pkg/auth"
	"github.com/arda/campushub/internal/pkg/email"
	"github.com/arda/campushub/internal/pkg/otp"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	ClubService         ClubService
	MembershipService   MembershipService
	EventService        EventService
	CertificateService  CertificateService
	NotificationService NotificationService
	FeedbackService     FeedbackService
	ChatService         ChatService
	AnalyticsService    AnalyticsService
}

// NewServices wires all services over the given repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *pkgauth.JWTService,
	codes otp.Store,
	mailer email.Service,
	otpPolicy OTPPolicy,
	logger zerolog.Logger,
) *Services {
	authz := auth.NewAuthorizationService(repos.MembershipRepository)
	notifications := NewNotificationService(repos.NotificationRepository, logger)

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, codes, mailer, notifications, otpPolicy, logger),
		ClubService: NewClubService(
			repos.ClubRepository, repos.MembershipRepository, repos.UserRepository, authz, notifications, logger),
		MembershipService: NewMembershipService(
			repos.MembershipRepository, repos.ClubRepository, authz, notifications, logger),
		EventService: NewEventService(
			repos.EventRepository, repos.RegistrationRepository, repos.MembershipRepository,
			authz, notifications, codes, logger),
		CertificateService: NewCertificateService(
			repos.CertificateRepository, repos.RegistrationRepository, repos.EventRepository,
			authz, notifications, logger),
		NotificationService: notifications,
		FeedbackService: NewFeedbackService(
			repos.FeedbackRepository, repos.RegistrationRepository, repos.EventRepository,
			repos.ClubRepository, logger),
		ChatService:      NewChatService(repos.ChatRepository, authz, logger),
		AnalyticsService: NewAnalyticsService(repos.AnalyticsRepository, logger),
	}
}
