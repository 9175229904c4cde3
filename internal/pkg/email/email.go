package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
// Callers treat it like any other delivery failure.
var ErrNotConfigured = errors.New("smtp credentials not configured")

// sendTimeout bounds how long a single delivery attempt may take.
// Delivery failures and timeouts are non-fatal for callers.
const sendTimeout = 12 * time.Second

// Service defines the interface for email delivery
type Service interface {
	Send(ctx context.Context, toEmail, subject, htmlBody string) error
	SendVerificationCode(ctx context.Context, toEmail, code string) error
	SendWelcomeEmail(ctx context.Context, toEmail, toName, role string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// smtpService implements Service over net/smtp
type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new email Service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{config: config, logger: logger}
}

// SendVerificationCode sends a one-time verification code
func (s *smtpService) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	subject := "CampusHub - Verification Code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
				<h2 style="color: #333;">CampusHub Email Verification</h2>
				<p>Hi! Use this code to verify your email:</p>
				<div style="text-align: center; margin: 24px 0;">
					<span style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</span>
				</div>
				<p>This code expires in <strong>10 minutes</strong>.</p>
				<p>If you didn't request this, please ignore this email.</p>
			</div>
		</body>
		</html>
	`, code)

	return s.Send(ctx, toEmail, subject, body)
}

// SendWelcomeEmail sends a welcome email to a newly registered user
func (s *smtpService) SendWelcomeEmail(ctx context.Context, toEmail, toName, role string) error {
	subject := "Welcome to CampusHub!"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to CampusHub!</h2>
				<p>Hi <strong>%s</strong>,</p>
				<p>Your CampusHub account is ready! You're registered as a <strong>%s</strong>.</p>
				<p>Start exploring clubs, events, and more!</p>
			</div>
		</body>
		</html>
	`, toName, role)

	return s.Send(ctx, toEmail, subject, body)
}

// Send delivers an HTML email, bounded by sendTimeout. The SMTP dial has
// no context support, so a hung delivery is abandoned rather than awaited.
func (s *smtpService) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.deliver(toEmail, subject, htmlBody)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		}
		return err
	case <-ctx.Done():
		s.logger.Error().Str("toEmail", toEmail).Msg("Email delivery timed out")
		return ctx.Err()
	}
}

func (s *smtpService) deliver(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	headers += fmt.Sprintf("To: %s\r\n", toEmail)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=UTF-8\r\n"
	message := headers + "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
