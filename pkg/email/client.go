// Package email relays messages over SMTP with gomail.
package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/polijecare/polijecare_web/config"
)

// Sender is what services depend on.
type Sender interface {
	Send(ctx context.Context, m Message) error
	Enabled() bool
}

type Client struct {
	cfg config.EmailConfig
}

func New(cfg config.EmailConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Enabled() bool { return c.cfg.Enabled }

func (c *Client) timeout() time.Duration {
	if c.cfg.SMTP.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.cfg.SMTP.TimeoutSeconds) * time.Second
}

// Send dials and delivers m. The SMTP exchange runs in its own goroutine so
// the caller's context and the configured timeout both bound the wait.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.cfg.Enabled {
		return ErrDisabled
	}

	msg, err := buildMessage(c.cfg.From, m)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(c.cfg.SMTP.Host, c.cfg.SMTP.Port, c.cfg.SMTP.Username, c.cfg.SMTP.Password)
	if c.cfg.SMTP.UseTLS {
		d.SSL = true
		d.TLSConfig = &tls.Config{ServerName: c.cfg.SMTP.Host, MinVersion: tls.VersionTLS12}
	}

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(msg) }()

	timer := time.NewTimer(c.timeout())
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return &SendError{Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return context.DeadlineExceeded
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, invalid("from is required")
	}
	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, invalid("at least one recipient is required")
	}
	subj := strings.TrimSpace(m.Subject)
	if subj == "" {
		return nil, invalid("subject is required")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subj)
	if rt := strings.TrimSpace(m.ReplyTo); rt != "" {
		msg.SetHeader("Reply-To", rt)
	}

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""
	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, invalid("a text or html body is required")
	}
	return msg, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
