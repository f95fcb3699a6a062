// Package email sends operational notifications over SMTP. Sending is
// fire-and-forget: failures are logged and never affect request handling.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"inkwell/internal/domain/content"
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/logger"
)

type Mailer struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewMailer(cfg *config.EmailConfig, log logger.Interface) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log,
	}
}

// NotifyContact mails a new contact submission to the configured recipient.
// Callers run it in a goroutine; it only logs its outcome.
func (m *Mailer) NotifyContact(contact *content.Contact) {
	if m == nil || !m.cfg.Enabled || m.cfg.ContactTo == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", m.cfg.ContactTo)
	msg.SetHeader("Subject", fmt.Sprintf("New contact from %s", contact.Name))
	msg.SetHeader("Reply-To", contact.Email)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		contact.Name, contact.Email, contact.Phone, contact.Comments,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Errorw("failed to send contact notification",
			"contact_uuid", contact.UUID,
			"error", err)
		return
	}

	m.logger.Infow("contact notification sent", "contact_uuid", contact.UUID)
}
