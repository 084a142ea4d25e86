package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"peer-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// WelcomeEmailData holds the data for the signup welcome email
type WelcomeEmailData struct {
	Username string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured reports whether SMTP credentials are present. When they are
// not, signup simply skips the welcome email.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Peer</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Welcome to Peer, {{.Username}}!</h2>
        <p>Your account has been created. Log in to complete your profile,
        share your first post and browse open roles.</p>
        <p>— The Peer team</p>
    </div>
</body>
</html>`

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeEmailTemplate))

// SendWelcome sends the post-signup welcome email.
func (s *EmailService) SendWelcome(toEmail, username string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, WelcomeEmailData{Username: username}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString("Subject: Welcome to Peer\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
