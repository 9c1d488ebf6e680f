package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const defaultSendTimeout = 10 * time.Second

// Mailgun delivers the account-lifecycle emails (verification codes, welcome,
// password reset) rendered by the worker.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{
		client:  mg.NewMailgun(domain, apiKey),
		sender:  sender,
		timeout: defaultSendTimeout,
	}
}

// Send delivers one message. The text body is required; html, when non-empty,
// is attached as the HTML alternative. A default timeout applies only when
// the caller's context carries no deadline.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	_, _, err := m.client.Send(ctx, msg)
	return err
}
