package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arda/campushub/internal/app/controllers"
	appMigrations "github.com/arda/campushub/internal/app/migrations"
	appRepos "github.com/arda/campushub/internal/app/repositories"
	appRoutes "github.com/arda/campushub/internal/app/routes"
	appServices "github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/config"
	"github.com/arda/campushub/internal/db"
	appMiddleware "github.com/arda/campushub/internal/middleware"
	pkgAuth "github.com/arda/campushub/internal/pkg/auth"
	"github.com/arda/campushub/internal/pkg/email"
	"github.com/arda/campushub/internal/pkg/logger"
	"github.com/arda/campushub/internal/pkg/otp"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services

	AuthController         *appControllers.AuthController
	ClubController         *appControllers.ClubController
	MembershipController   *appControllers.MembershipController
	EventController        *appControllers.EventController
	CertificateController  *appControllers.CertificateController
	NotificationController *appControllers.NotificationController
	FeedbackController     *appControllers.FeedbackController
	ChatController         *appControllers.ChatController
	AnalyticsController    *appControllers.AnalyticsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	CodeStore      *otp.MemoryStore
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations applied")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    config.ParseDuration(cfg.JWT.TokenExpiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.CodeStore = otp.NewMemoryStore(config.ParseDuration(cfg.OTP.SweepInterval, 10*time.Minute))

	mailer := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	otpPolicy := appServices.OTPPolicy{
		TTL:            config.ParseDuration(cfg.OTP.TTL, 10*time.Minute),
		ResendInterval: config.ParseDuration(cfg.OTP.ResendInterval, time.Minute),
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.CodeStore, mailer, otpPolicy, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.ClubController = appControllers.NewClubController(deps.Services.ClubService)
	deps.MembershipController = appControllers.NewMembershipController(deps.Services.MembershipService)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService)
	deps.CertificateController = appControllers.NewCertificateController(deps.Services.CertificateService)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.NotificationService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.Services.FeedbackService)
	deps.ChatController = appControllers.NewChatController(deps.Services.ChatService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.Services.AnalyticsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClubController,
		deps.MembershipController,
		deps.EventController,
		deps.CertificateController,
		deps.NotificationController,
		deps.FeedbackController,
		deps.ChatController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
