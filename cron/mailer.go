package cron

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"tourbook/config"
	"tourbook/utils"

	"go.uber.org/zap"
)

// Mailer delivers the rendered notification mails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes mails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	utils.GetLogger().Info("Mail", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail through an SMTP relay. Auth is only used
// when a username is configured.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send sendMailFunc
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	host = strings.TrimSpace(host)
	m := &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", host, strings.TrimSpace(port)),
		from: strings.TrimSpace(from),
		send: smtp.SendMail,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	if m.from == "" {
		m.from = username
	}
	return m
}

// NewMailer picks SMTP when a host and port are configured and falls back
// to LogMailer otherwise.
func NewMailer(cfg config.Config) Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" || strings.TrimSpace(cfg.SMTPPort) == "" {
		utils.GetLogger().Warn("SMTP not configured; mails will only be logged")
		return LogMailer{}
	}
	return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to = headerSafe(to)
	msg := buildMessage(m.from, to, subject, body)
	if err := m.send(m.addr, m.auth, envelopeAddress(m.from), []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// headerSafe strips line breaks so values cannot inject extra headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(strings.TrimSpace(s))
}

// envelopeAddress turns "Name <addr>" into addr for the SMTP envelope.
func envelopeAddress(from string) string {
	if i, j := strings.LastIndex(from, "<"), strings.LastIndex(from, ">"); i >= 0 && j > i {
		return from[i+1 : j]
	}
	return from
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		headerSafe(from), to, headerSafe(subject), body,
	)
}
