package common

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/wneessen/go-mail"

	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/logging"
)

const smtpTimeout = 15 * time.Second

// Mailer delivers a plain-text message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer sends through a relay, with STARTTLS when offered and PLAIN auth
// when credentials are set.
type SMTPMailer struct {
	host   string
	from   string
	sender mailSender
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithTimeout(smtpTimeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port != "" {
		port, err := strconv.Atoi(cfg.Port)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp port %q: %w", cfg.Port, err)
		}
		opts = append(opts, mail.WithPort(port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{host: cfg.Host, from: cfg.From, sender: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(m.from, to, subject, body)
	if err != nil {
		return err
	}
	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.host, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// LogMailer writes messages to the structured log instead of sending them.
// Used in development so activation links can be followed from the console.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	logging.Info("Outgoing email", "to", to, "subject", subject, "body", body)
	return nil
}

// RecordingMailer keeps every message in memory. Err, when set, fails each send.
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []MailMessage
	Err      error
}

type MailMessage struct {
	To      string
	Subject string
	Body    string
}

func (m *RecordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, MailMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Last returns the most recent message, if any.
func (m *RecordingMailer) Last() (MailMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return MailMessage{}, false
	}
	return m.Messages[len(m.Messages)-1], true
}

// NewMailer picks SMTP when a relay is configured, otherwise the log mailer.
func NewMailer(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		logging.Warn("SMTP host not configured, emails will be logged")
		return LogMailer{}, nil
	}
	m, err := NewSMTPMailer(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}
