// Package mail delivers transactional email such as password reset codes.
package mail

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/electramart-api/internal/config"
)

// Message is one plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNoRecipients = errors.New("no recipients specified")

// New returns an SMTP sender when cfg names a host and a log-only sender
// otherwise.
func New(cfg config.MailConfig, log *logrus.Logger) Sender {
	if cfg.Host == "" {
		return &LogSender{Log: log}
	}
	return NewSMTPSender(cfg)
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send dials the relay for every message.  gomail has no context support,
// so ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.build(msg))
}

func (s *SMTPSender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}

// LogSender writes messages to the log instead of sending them.  Used in
// development when SMTP_HOST is unset.
type LogSender struct {
	Log *logrus.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	s.Log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
