package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSChannel sends the short form of notifications through Twilio.
type SMSChannel struct {
	client messageCreator
	from   string
	to     []string
}

func NewSMSChannel(accountSID, authToken, from string, to []string) *SMSChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSChannel{client: client.Api, from: from, to: to}
}

func (c *SMSChannel) Name() string {
	return "sms"
}

// Send texts every recipient, continuing past failures.
func (c *SMSChannel) Send(ctx context.Context, msg Message) error {
	body := msg.Short
	if body == "" {
		body = Truncate(msg.Subject, smsLimit)
	}

	var failed []string
	for _, to := range c.to {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(c.from)
		params.SetBody(body)

		resp, err := c.client.CreateMessage(params)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s (%v)", to, err))
			continue
		}
		if resp.Sid != nil {
			log.Debug().Str("sid", *resp.Sid).Msg("Sent SMS via Twilio")
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("twilio: failed to text %s", strings.Join(failed, ", "))
	}
	return nil
}
