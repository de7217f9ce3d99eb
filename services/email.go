package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
	"github.com/rs/zerolog/log"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailChannel sends notifications through Resend.
type EmailChannel struct {
	client emailSender
	from   string
	to     []string
}

// NewEmailChannel sends from from (e.g. "Site <noreply@example.com>") to every address in to.
func NewEmailChannel(apiKey, from string, to []string) *EmailChannel {
	return &EmailChannel{client: resend.NewClient(apiKey).Emails, from: from, to: to}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	if len(c.to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	resp, err := c.client.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      c.to,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	log.Debug().Str("emailId", resp.Id).Int("recipients", len(c.to)).Msg("Sent email via Resend")
	return nil
}
