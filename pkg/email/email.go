package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"strings"
)

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService relays contact messages via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      SendFunc
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
	SubmittedAt string
	ReferenceID string
}

// NewEmailService creates a new email relay from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		toEmail:   cfg.ContactEmailTo,
		send:      smtp.SendMail,
	}
}

// WithSender swaps the SMTP transport, used by tests
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #7c3aed; margin-top: 10px; white-space: pre-wrap; }
        .footer { color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>New Contact Form Submission</h1>
        <p><span class="label">Name:</span> {{.SenderName}}</p>
        <p><span class="label">Email:</span> {{.SenderEmail}}</p>
        <p class="label">Message:</p>
        <div class="message-box">{{.Message}}</div>
        <p class="footer">Submitted at {{.SubmittedAt}} (ref {{.ReferenceID}})</p>
    </div>
</body>
</html>`

func (s *EmailService) Name() string {
	return "email"
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

// Deliver renders the contact email and sends it with one SMTP call
func (s *EmailService) Deliver(ctx context.Context, msg *domain.ContactMessage) error {
	// net/smtp has no context support; honour cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.render(ContactEmailData{
		SenderName:  msg.Name,
		SenderEmail: msg.Email,
		Message:     msg.Message,
		SubmittedAt: msg.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
		ReferenceID: msg.ReferenceID,
	})
	if err != nil {
		return err
	}

	raw := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		sanitizeHeader(msg.Email),
		sanitizeHeader("Contact Form: "+msg.Name),
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) render(data ContactEmailData) (string, error) {
	tmpl, err := template.New("contact").Parse(contactEmailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// sanitizeHeader strips CR/LF so user input cannot inject extra headers
func sanitizeHeader(v string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, v)
}
