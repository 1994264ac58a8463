package notification

import (
	"gopkg.in/gomail.v2"
)

// Message is a rendered notification ready for the outbound transport.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer is the outbound mail transport. Implementations are safe for
// concurrent use; the process constructs one and reuses it for its lifetime.
type Mailer interface {
	Send(msg Message) error
}

// SMTPConfig holds the sender credentials for the SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends mail through an SMTP server via gomail.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPMailer creates an SMTPMailer from the given credentials.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Send delivers a single message. Each call dials a fresh SMTP connection;
// the dispatcher serializes sends so connection churn stays low.
func (m *SMTPMailer) Send(msg Message) error {
	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.from, m.fromName)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(mail)
}
