// Package notify wraps a best-effort outbound email trigger fired after a
// notification row is inserted. This package owns only the trigger point;
// SMTP transport, templates, and retry policy live with the provider.
package notify

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// Client fires single best-effort transactional emails. Callers must treat
// Send's error as non-fatal: log it at WARN and move on.
type Client struct {
	client *resend.Client
	from   string
}

// New constructs a Client. An empty apiKey yields a Client whose Send is a
// no-op, so environments without a Resend account still boot.
func New(apiKey, fromEmail string) *Client {
	if apiKey == "" {
		return &Client{client: nil, from: fromEmail}
	}
	return &Client{client: resend.NewClient(apiKey), from: fromEmail}
}

// Send fires a single plain-text email. It never blocks on retries and
// returns the first error resend-go reports, if any.
func (c *Client) Send(ctx context.Context, toEmail, subject, body string) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	})
	return err
}
