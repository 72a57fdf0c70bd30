package services

import (
	"fmt"
	"net/smtp"

	"github.com/veljkom/meetlite-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendMeetingInvite mails a join link to an invitee. The link itself is the
// only record of the meeting, so the mail is purely a delivery channel.
func (s *EmailService) SendMeetingInvite(to, hostName, joinURL string) error {
	subject := fmt.Sprintf("%s invited you to a video meeting", hostName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Meeting Invitation</h2>
			<p>Hi,</p>
			<p><strong>%s</strong> wants to meet with you.</p>
			<p><a href="%s">Click here to join the meeting</a></p>
			<p>Save this link if you need it later; it cannot be recovered once lost.</p>
		</body>
		</html>
	`, hostName, joinURL)

	return s.Send(to, subject, body)
}
