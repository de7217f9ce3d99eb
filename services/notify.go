package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Message is one outbound notification. Channels pick the body that suits them.
type Message struct {
	Subject string
	HTML    string
	Text    string
	Short   string
}

// Channel delivers messages to a fixed set of recipients.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// ContactNotifier tells the site owners about new contact messages on every configured channel.
type ContactNotifier struct {
	channels []Channel
	adminURL string
}

func NewContactNotifier(adminURL string, channels ...Channel) *ContactNotifier {
	return &ContactNotifier{channels: channels, adminURL: adminURL}
}

// NewContactNotifierFromConfig builds the channels whose settings are present.
// It returns nil when none are, so callers can skip notifications entirely.
//
// Email needs RESEND_API_KEY, RESEND_FROM_EMAIL and CONTACT_NOTIFY_EMAILS.
// SMS needs TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER and CONTACT_NOTIFY_PHONES.
func NewContactNotifierFromConfig(cfg map[string]string) *ContactNotifier {
	var channels []Channel

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	emails := config.GetList(cfg, "CONTACT_NOTIFY_EMAILS", nil)
	if apiKey != "" && from != "" && len(emails) > 0 {
		channels = append(channels, NewEmailChannel(apiKey, from, emails))
	} else if len(emails) > 0 {
		log.Warn().Msg("CONTACT_NOTIFY_EMAILS is set but RESEND_API_KEY or RESEND_FROM_EMAIL is missing; email notifications disabled")
	}

	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	number := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	phones := config.GetList(cfg, "CONTACT_NOTIFY_PHONES", nil)
	if sid != "" && token != "" && number != "" && len(phones) > 0 {
		channels = append(channels, NewSMSChannel(sid, token, number, phones))
	} else if len(phones) > 0 {
		log.Warn().Msg("CONTACT_NOTIFY_PHONES is set but Twilio credentials are incomplete; SMS notifications disabled")
	}

	if len(channels) == 0 {
		return nil
	}
	return NewContactNotifier(config.GetString(cfg, "ADMIN_BASE_URL", ""), channels...)
}

// NotifyContact sends on all channels concurrently. Every channel is attempted; the error
// names the ones that failed.
func (n *ContactNotifier) NotifyContact(ctx context.Context, contact *models.Contact) error {
	msg := ContactMessage(contact, BuildContactURL(n.adminURL, contact.ID.String()))

	var (
		mu        sync.Mutex
		failed    []string
		successes []string
	)
	var g errgroup.Group
	for _, ch := range n.channels {
		ch := ch
		g.Go(func() error {
			err := ch.Send(ctx, msg)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("channel", ch.Name()).Msg("Failed to send contact notification")
				failed = append(failed, fmt.Sprintf("%s: %v", ch.Name(), err))
				return nil
			}
			successes = append(successes, ch.Name())
			return nil
		})
	}
	_ = g.Wait()

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("contact_id", contact.ID.String()).Msg("Contact notification sent")
	}
	if len(failed) > 0 {
		return errs.NewPartialFailureError("contact notification", failed)
	}
	return nil
}
