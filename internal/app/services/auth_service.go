package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/pkg/apperrors"
	"github.com/arda/campushub/internal/pkg/auth"
	"github.com/arda/campushub/internal/pkg/email"
	"github.com/arda/campushub/internal/pkg/otp"
)

// OTPPolicy carries the timing rules for the verification code flow
type OTPPolicy struct {
	TTL            time.Duration
	ResendInterval time.Duration
}

// DefaultOTPPolicy matches the documented code lifecycle
var DefaultOTPPolicy = OTPPolicy{
	TTL:            10 * time.Minute,
	ResendInterval: 60 * time.Second,
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	SendOTP(ctx context.Context, emailAddr string) (*dto.SendOTPResponse, error)
	VerifyOTP(ctx context.Context, emailAddr, code string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users    UserStore
	jwt      *auth.JWTService
	codes    otp.Store
	mailer   email.Service
	notifier Notifier
	policy   OTPPolicy
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserStore,
	jwt *auth.JWTService,
	codes otp.Store,
	mailer email.Service,
	notifier Notifier,
	policy OTPPolicy,
	logger zerolog.Logger,
) AuthService {
	if policy.TTL <= 0 {
		policy.TTL = DefaultOTPPolicy.TTL
	}
	if policy.ResendInterval <= 0 {
		policy.ResendInterval = DefaultOTPPolicy.ResendInterval
	}
	return &authServiceImpl{
		users:    users,
		jwt:      jwt,
		codes:    codes,
		mailer:   mailer,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
	}
}

// Register creates a new user account and returns a signed token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role != models.RoleStudent && role != models.RoleClubLead {
		role = models.RoleStudent
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		Name:         req.Name,
		Department:   req.Department,
		Year:         req.Year,
		CollegeID:    req.CollegeID,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome side effects are best effort
	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name, string(user.Role)); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Welcome email not delivered")
	}
	s.notifier.Notify(ctx, []int64{user.ID}, models.NotificationWelcome,
		"Welcome to CampusHub", "Your account is ready. Explore clubs and events!")

	return s.buildAuthResponse(user)
}

// Login verifies credentials and returns a signed token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   s.jwt.TokenExpirySeconds(),
		},
		User: dto.ToUserResponse(user),
	}, nil
}

// Me returns the caller's own profile
func (s *authServiceImpl) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates the caller's profile fields
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := s.users.UpdateProfile(ctx, userID, req.Name, req.Department, req.Year, req.ProfileImage); err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

// SendOTP generates and mails a verification code for the email address.
// A resend inside the throttle window is rejected with ErrRateLimited.
// Delivery failure is non-fatal: the code stays usable and is handed back
// to the caller as a fallback.
func (s *authServiceImpl) SendOTP(ctx context.Context, emailAddr string) (*dto.SendOTPResponse, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	now := time.Now()

	if entry, ok := s.codes.Get(emailAddr); ok {
		if !entry.Expired(now) && now.Sub(entry.CreatedAt) < s.policy.ResendInterval {
			return nil, apperrors.ErrRateLimited
		}
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return nil, err
	}
	s.codes.Put(emailAddr, otp.Entry{
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.policy.TTL),
	})

	if err := s.mailer.SendVerificationCode(ctx, emailAddr, code); err != nil {
		s.logger.Warn().Err(err).Str("email", emailAddr).Msg("Verification code not delivered, returning fallback")
		return &dto.SendOTPResponse{
			Message:      "Email delivery failed, use the fallback code",
			FallbackCode: code,
		}, nil
	}

	return &dto.SendOTPResponse{Message: "Verification code sent"}, nil
}

// VerifyOTP checks a code against the stored entry. A correct code is
// single use: the entry is deleted on success. An expired entry is
// evicted on sight.
func (s *authServiceImpl) VerifyOTP(ctx context.Context, emailAddr, code string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	entry, ok := s.codes.Get(emailAddr)
	if !ok {
		return apperrors.ErrCodeNotFound
	}
	if entry.Expired(time.Now()) {
		s.codes.Delete(emailAddr)
		return apperrors.ErrCodeExpired
	}
	if entry.Code != code {
		return apperrors.ErrCodeMismatch
	}

	s.codes.Delete(emailAddr)
	return nil
}
