package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v3"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func sampleContact() *models.Contact {
	subject := "Quote"
	return &models.Contact{
		ID:        uuid.MustParse("7d5c6a0e-8f8e-4b8a-9d54-0c6c2b1f4a11"),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   &subject,
		Content:   "Could you build <b>us</b> a site?",
	}
}

func TestContactMessage(t *testing.T) {
	msg := ContactMessage(sampleContact(), "https://example.com/dashboard/contacts/1")

	assert.Equal(t, "New contact message from Ada Lovelace: Quote", msg.Subject)
	assert.Contains(t, msg.HTML, "Could you build &lt;b&gt;us&lt;/b&gt; a site?")
	assert.Contains(t, msg.HTML, `href="https://example.com/dashboard/contacts/1"`)
	assert.Contains(t, msg.Text, "From: Ada Lovelace <ada@example.com>")
	assert.True(t, strings.HasPrefix(msg.Short, "Ada Lovelace <ada@example.com>: "))

	c := sampleContact()
	c.Subject = nil
	msg = ContactMessage(c, "")
	assert.Equal(t, "New contact message from Ada Lovelace", msg.Subject)
	assert.NotContains(t, msg.HTML, "Open in dashboard")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "hello...", Truncate("hello wonderful world", 12))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, 10, len([]rune(Truncate(strings.Repeat("é", 40), 10))))
}

func TestBuildContactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/dashboard/contacts/abc", BuildContactURL("https://example.com/", "abc"))
	assert.Empty(t, BuildContactURL("", "abc"))
}

type fakeChannel struct {
	name string
	err  error
	mu   sync.Mutex
	got  []Message
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, msg)
	return f.err
}

func TestNotifyContactAttemptsEveryChannel(t *testing.T) {
	email := &fakeChannel{name: "email", err: errors.New("bounced")}
	sms := &fakeChannel{name: "sms"}
	n := NewContactNotifier("https://example.com", email, sms)

	err := n.NotifyContact(context.Background(), sampleContact())
	require.Error(t, err)
	assert.True(t, errs.IsPartialFailureError(err))
	assert.Contains(t, err.Error(), "email: bounced")

	require.Len(t, sms.got, 1)
	assert.Contains(t, sms.got[0].Text, "https://example.com/dashboard/contacts/7d5c6a0e-8f8e-4b8a-9d54-0c6c2b1f4a11")
	require.Len(t, email.got, 1)

	email.err = nil
	assert.NoError(t, n.NotifyContact(context.Background(), sampleContact()))
}

func TestNewContactNotifierFromConfig(t *testing.T) {
	assert.Nil(t, NewContactNotifierFromConfig(map[string]string{}))
	assert.Nil(t, NewContactNotifierFromConfig(map[string]string{"CONTACT_NOTIFY_EMAILS": "a@b.co"}))

	n := NewContactNotifierFromConfig(map[string]string{
		"RESEND_API_KEY":        "re_test",
		"RESEND_FROM_EMAIL":     "Site <noreply@example.com>",
		"CONTACT_NOTIFY_EMAILS": "a@b.co, c@d.co",
		"TWILIO_ACCOUNT_SID":    "AC123",
		"TWILIO_AUTH_TOKEN":     "token",
		"TWILIO_FROM_NUMBER":    "+15550000000",
		"CONTACT_NOTIFY_PHONES": "+15551111111",
	})
	require.NotNil(t, n)
	require.Len(t, n.channels, 2)
	assert.Equal(t, "email", n.channels[0].Name())
	assert.Equal(t, []string{"a@b.co", "c@d.co"}, n.channels[0].(*EmailChannel).to)
	assert.Equal(t, "sms", n.channels[1].Name())
}

type fakeEmailSender struct {
	req *resend.SendEmailRequest
	err error
}

func (f *fakeEmailSender) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestEmailChannelSend(t *testing.T) {
	sender := &fakeEmailSender{}
	ch := &EmailChannel{client: sender, from: "Site <noreply@example.com>", to: []string{"owner@example.com"}}

	require.NoError(t, ch.Send(context.Background(), Message{Subject: "s", HTML: "<p>h</p>", Text: "t"}))
	assert.Equal(t, "Site <noreply@example.com>", sender.req.From)
	assert.Equal(t, []string{"owner@example.com"}, sender.req.To)
	assert.Equal(t, "<p>h</p>", sender.req.Html)

	sender.err = errors.New("unauthorized")
	assert.ErrorIs(t, ch.Send(context.Background(), Message{}), sender.err)

	empty := &EmailChannel{client: sender}
	assert.Error(t, empty.Send(context.Background(), Message{}))
}

type fakeMessageCreator struct {
	bodies []string
	fail   map[string]bool
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.fail[*params.To] {
		return nil, errors.New("invalid number")
	}
	f.bodies = append(f.bodies, *params.Body)
	sid := "SM" + *params.To
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSChannelSend(t *testing.T) {
	creator := &fakeMessageCreator{fail: map[string]bool{"+2": true}}
	ch := &SMSChannel{client: creator, from: "+1000", to: []string{"+1", "+2", "+3"}}

	err := ch.Send(context.Background(), Message{Subject: "subject", Short: "short body"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "+2")
	assert.Equal(t, []string{"short body", "short body"}, creator.bodies)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ch.Send(ctx, Message{Short: "x"}), context.Canceled)
}
