package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/controllers"
	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	clubController *controllers.ClubController,
	membershipController *controllers.MembershipController,
	eventController *controllers.EventController,
	certificateController *controllers.CertificateController,
	notificationController *controllers.NotificationController,
	feedbackController *controllers.FeedbackController,
	chatController *controllers.ChatController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/otp/send", authController.SendOTP)
		auth.POST("/otp/verify", authController.VerifyOTP)
	}

	// Certificate verification is public so third parties can check codes
	v1.GET("/certificates/verify/:code", certificateController.VerifyCertificate)

	// Club and event catalogs are browsable without an account. Detail
	// views pick up the caller's own state when a token is supplied.
	v1.GET("/clubs", clubController.GetAllClubs)
	v1.GET("/clubs/:id", authMiddleware.OptionalAuth(), clubController.GetClubByID)
	v1.GET("/events", eventController.GetAllEvents)
	v1.GET("/events/:id", authMiddleware.OptionalAuth(), eventController.GetEventByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		users := authenticated.Group("/users/me")
		{
			users.GET("", authController.GetProfile)
			users.PUT("", authController.UpdateProfile)
			users.GET("/memberships", membershipController.GetMyMemberships)
			users.GET("/registrations", eventController.GetMyRegistrations)
			users.GET("/certificates", certificateController.GetMyCertificates)
		}

		// Clubs and memberships
		clubs := authenticated.Group("/clubs")
		{
			clubs.POST("", clubController.CreateClub)
			clubs.PUT("/:id", clubController.UpdateClub)
			clubs.POST("/:id/broadcast", clubController.BroadcastToClub)

			clubs.POST("/:id/join", membershipController.JoinClub)
			clubs.GET("/:id/members", membershipController.GetClubMembers)
			clubs.GET("/:id/requests", membershipController.GetPendingRequests)
			clubs.DELETE("/:id/membership", membershipController.LeaveClub)

			clubs.GET("/:id/messages", chatController.GetClubMessages)
			clubs.POST("/:id/messages", chatController.SendClubMessage)
			clubs.GET("/:id/stats", analyticsController.GetClubStats)

			// Club approval is an admin decision
			clubsAdmin := clubs.Group("")
			clubsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				clubsAdmin.POST("/:id/approve", clubController.ApproveClub)
			}
		}

		authenticated.POST("/memberships/:id/decide", membershipController.DecideMembership)

		// Events, registrations and attendance
		events := authenticated.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.POST("/:id/status", eventController.SetEventStatus)

			events.POST("/:id/remind", eventController.RemindEvent)

			events.POST("/:id/register", eventController.RegisterForEvent)
			events.DELETE("/:id/register", eventController.CancelRegistration)
			events.POST("/:id/checkin", eventController.CheckIn)
			events.GET("/:id/checkin/status", eventController.GetCheckInStatus)
			events.POST("/:id/checkin/code", eventController.GenerateCheckInCode)
			events.GET("/:id/registrations", eventController.GetEventRegistrations)

			events.POST("/:id/certificates", certificateController.IssueCertificate)
			events.POST("/:id/certificates/bulk", certificateController.BulkIssueCertificates)

			events.POST("/:id/feedback", feedbackController.SubmitFeedback)
			events.GET("/:id/feedback", feedbackController.GetEventFeedback)
		}

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetMyNotifications)
			notifications.POST("/:id/read", notificationController.MarkNotificationRead)
			notifications.POST("/read-all", notificationController.MarkAllNotificationsRead)
		}

		// Chat channel listing
		authenticated.GET("/chat/channels", chatController.GetMyChannels)

		// Analytics
		analytics := authenticated.Group("/analytics")
		{
			analytics.GET("/me", analyticsController.GetMyInsights)
			analytics.GET("/leaderboard", analyticsController.GetLeaderboard)

			analyticsAdmin := analytics.Group("")
			analyticsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				analyticsAdmin.GET("/overview", analyticsController.GetOverview)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
