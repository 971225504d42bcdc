package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPOptions configures an SMTPMailer.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// SMTPMailer sends messages through an SMTP relay using PLAIN auth. The connection is upgraded with
// STARTTLS whenever the server offers it.
type SMTPMailer struct {
	opts     SMTPOptions
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now      func() time.Time
}

// NewSMTPMailer creates a new SMTP transport
func NewSMTPMailer(opts SMTPOptions) *SMTPMailer {
	if opts.From == "" {
		opts.From = opts.Username
	}
	return &SMTPMailer{opts: opts, sendMail: smtp.SendMail, now: time.Now}
}

// Send implements Mailer.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mailer: smtp send aborted: %w", err)
	}

	addr := net.JoinHostPort(m.opts.Host, strconv.Itoa(m.opts.Port))

	var auth smtp.Auth
	if m.opts.Username != "" {
		auth = smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.Host)
	}

	if err := m.sendMail(addr, auth, m.opts.From, m.opts.To, m.compose(msg)); err != nil {
		return fmt.Errorf("mailer: smtp send to %s failed: %w", addr, err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.opts.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.opts.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
