package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig describes the outbound mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// CodeTTL is quoted in the message body.
	CodeTTL time.Duration
}

// SMTPNotifier sends HTML mail through an SMTP relay. Port 465 uses implicit
// TLS, any other port upgrades with STARTTLS when the server offers it.
type SMTPNotifier struct {
	cfg    SMTPConfig
	dialer net.Dialer
}

var (
	_ Notifier        = (*SMTPNotifier)(nil)
	_ WelcomeNotifier = (*SMTPNotifier)(nil)
)

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp: host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, errors.New("smtp: from address is required")
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

func (n *SMTPNotifier) DeliverCode(ctx context.Context, to, code string) error {
	body, err := render("code.html", codeData{
		Code:          code,
		ExpiryMinutes: int(n.cfg.CodeTTL / time.Minute),
	})
	if err != nil {
		return err
	}
	return n.send(ctx, to, codeSubject, body)
}

func (n *SMTPNotifier) DeliverWelcome(ctx context.Context, to, name string) error {
	body, err := render("welcome.html", welcomeData{Name: name})
	if err != nil {
		return err
	}
	return n.send(ctx, to, welcomeSubject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") {
		return errors.New("smtp: invalid recipient address")
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	conn, err := n.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer conn.Close()

	// net/smtp has no context support; the deadline bounds the whole exchange
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}
	if n.cfg.Port == 465 {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer client.Close()

	if n.cfg.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("failed to send email: starttls: %w", err)
			}
		}
	}

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to send email: auth: %w", err)
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if _, err := w.Write(buildMessage(n.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)
}
