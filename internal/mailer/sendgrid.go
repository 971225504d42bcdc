package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers messages through the SendGrid v3 mail API.
type SendGridMailer struct {
	client  sendGridClient
	from    string
	to      []string
	sandbox bool
}

// NewSendGridMailer creates a SendGrid transport. In sandbox mode SendGrid validates the request without delivering it.
func NewSendGridMailer(apiKey, from string, to []string, sandbox bool) *SendGridMailer {
	return &SendGridMailer{
		client:  sendgrid.NewSendClient(apiKey),
		from:    from,
		to:      to,
		sandbox: sandbox,
	}
}

// Send implements Mailer.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	resp, err := m.client.SendWithContext(ctx, m.build(msg))
	if err != nil {
		return fmt.Errorf("mailer: sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer: sendgrid rejected message: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *SendGridMailer) build(msg Message) *mail.SGMailV3 {
	v3 := mail.NewV3Mail()
	v3.SetFrom(mail.NewEmail("", m.from))
	v3.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, addr := range m.to {
		p.AddTos(mail.NewEmail("", addr))
	}
	v3.AddPersonalizations(p)
	v3.AddContent(mail.NewContent("text/plain", msg.Body))

	if m.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		v3.MailSettings = ms
	}
	return v3
}
