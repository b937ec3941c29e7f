package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
)

const (
	smtpDialTimeout = 8 * time.Second
	smtpSendTimeout = 15 * time.Second
)

type smtpMailer struct {
	host     string
	addr     string
	username string
	password string
	sender   string
	from     string
}

// NewSMTPMailer delivers mail through an SMTP relay, upgrading with STARTTLS when offered.
func NewSMTPMailer(cfg config.SMTPConfig, sender, from string) service.Mailer {
	port := cfg.Port
	if port == 0 {
		port = 587
	}

	return &smtpMailer{
		host:     cfg.Host,
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		username: cfg.Username,
		password: cfg.Password,
		sender:   sender,
		from:     from,
	}
}

func (m *smtpMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return errors.Wrap(err, "smtp: dial failed")
	}

	deadline := time.Now().Add(smtpSendTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()

		return errors.Wrap(err, "smtp: handshake failed")
	}
	defer func() { _ = client.Quit() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return errors.Wrap(err, "smtp: starttls failed")
		}
	}
	if m.username != "" {
		if err := client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return errors.Wrap(err, "smtp: auth failed")
		}
	}

	if err := client.Mail(m.sender); err != nil {
		return errors.Wrap(err, "smtp: MAIL FROM rejected")
	}
	if err := client.Rcpt(recipient); err != nil {
		return errors.Wrap(err, "smtp: RCPT TO rejected")
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp: DATA rejected")
	}
	if _, err := w.Write(buildMessage(m.from, recipient, subject, htmlBody)); err != nil {
		_ = w.Close()

		return errors.Wrap(err, "smtp: write failed")
	}

	return errors.Wrap(w.Close(), "smtp: send failed")
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	return []byte(strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n"))
}
