package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/electramart-api/internal/config"
)

func TestNewPicksSender(t *testing.T) {
	log := logrus.New()
	_, ok := New(config.MailConfig{}, log).(*LogSender)
	assert.True(t, ok)

	_, ok = New(config.MailConfig{Host: "smtp.example.com", Port: 587, From: "a@example.com"}, log).(*SMTPSender)
	assert.True(t, ok)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	s := &LogSender{Log: log}
	require.NoError(t, s.Send(context.Background(), Message{To: []string{"ada@example.com"}, Subject: "code", Body: "123"}))
	assert.Contains(t, buf.String(), `"subject":"code"`)
	assert.Contains(t, buf.String(), "ada@example.com")

	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipients)
}

func TestSMTPSenderBuild(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{Host: "smtp.example.com", Port: 587, From: "shop@example.com"})
	m := s.build(Message{To: []string{"ada@example.com"}, Subject: "Reset", Body: "code 1"})

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "From: shop@example.com")
	assert.Contains(t, out, "To: ada@example.com")
	assert.True(t, strings.Contains(out, "Subject: Reset"))

	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipients)
}

func TestSMTPSenderHonoursCancelledContext(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{Host: "smtp.invalid", Port: 25, From: "shop@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@example.com"}}), context.Canceled)
}
