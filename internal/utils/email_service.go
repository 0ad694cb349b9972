package utils

import (
	"fmt"
	"net/smtp"
	"time"

	"drivehub-backend/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendBookingConfirmation sends a booking confirmation to the user's email.
// Best effort: callers log failures and never fail the booking on one.
func (e *EmailService) SendBookingConfirmation(to string, start, end time.Time, totalPrice float64) error {
	subject := "Your DriveHub booking is confirmed"
	body := fmt.Sprintf(`
Hello,

Your booking is confirmed.

Pick-up:    %s
Return:     %s
Total:      %.2f

See you on the road!

Best regards,
%s
	`, FormatDate(start), FormatDate(end), totalPrice, e.config.FromName)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	// Compose message
	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		e.config.FromName, fromEmail, to, subject, body))

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
