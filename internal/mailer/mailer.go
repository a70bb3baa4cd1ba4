package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/confdesk/confreg-backend/internal/config"
)

// Mailer delivers registration confirmation email over SMTP. It is a
// best-effort collaborator: callers fire it asynchronously and only
// log failures.
type Mailer struct {
	addr      string
	host      string
	username  string
	password  string
	from      string
	fromName  string
	eventName string
	log       zerolog.Logger
}

// New creates a Mailer from the SMTP configuration.
func New(cfg *config.Config, log zerolog.Logger) *Mailer {
	return &Mailer{
		addr:      cfg.SMTPAddr,
		host:      cfg.SMTPHost,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		from:      cfg.MailFrom,
		fromName:  cfg.MailFromName,
		eventName: cfg.EventName,
		log:       log,
	}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.username != ""
}

// SendConfirmation sends the registration confirmation to recipient.
func (m *Mailer) SendConfirmation(firstName, lastName, recipient string) error {
	subject := "Registration Confirmation"
	body := confirmationBody(firstName, m.eventName)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.fromName, m.from, recipient, subject, body)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.from, []string{recipient}, []byte(msg)); err != nil {
		m.log.Warn().
			Err(err).
			Str("email", recipient).
			Msg("Confirmation email failed")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().
		Str("email", recipient).
		Msg("Confirmation email sent")
	return nil
}

func confirmationBody(firstName, eventName string) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for registering for %s. We have received your details and your spot is confirmed. "+
			"Further event information and updates will be shared with you shortly.\n\n"+
			"We look forward to seeing you.",
		firstName, eventName)
}
