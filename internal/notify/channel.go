package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/project-moderation-api/internal/config"
	"github.com/rs/zerolog"
)

// smtpChannel delivers messages over plain SMTP
type smtpChannel struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPChannel creates a Channel backed by the configured SMTP relay
func NewSMTPChannel(cfg *config.SMTPConfig) Channel {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpChannel{
		addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

func (c *smtpChannel) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		c.from, to, subject, body)
	if err := smtp.SendMail(c.addr, c.auth, c.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// logChannel logs messages instead of sending them. Used when SMTP is not
// configured so local development still exercises the dispatch path.
type logChannel struct {
	log zerolog.Logger
}

// NewLogChannel creates a Channel that only logs
func NewLogChannel(log zerolog.Logger) Channel {
	return &logChannel{log: log.With().Str("component", "notify-log").Logger()}
}

func (c *logChannel) Send(ctx context.Context, to, subject, body string) error {
	c.log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("Notification (log only, SMTP disabled)")
	return nil
}

// NewChannel picks the SMTP channel when configured, the log channel
// otherwise
func NewChannel(cfg *config.SMTPConfig, log zerolog.Logger) Channel {
	if cfg.Enabled && cfg.Host != "" {
		return NewSMTPChannel(cfg)
	}
	return NewLogChannel(log)
}
